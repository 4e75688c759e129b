// Package ai wraps the generative-text collaborator used for clause
// drafting. It is best-effort: core document assembly never depends on it.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"google.golang.org/genai"
)

var (
	// ErrUnavailable reports a missing key or an unreachable service.
	ErrUnavailable = errors.New("clause drafting service unavailable")
	// ErrBusy reports that a draft request is already in flight.
	ErrBusy = errors.New("clause drafting request already in progress")
)

const draftSystemInstruction = `You are a legal assistant specializing in construction and engineering contracts in Taiwan (Republic of China).
Your task is to draft specific, professional, and legally sound contract clauses based on the user's request.
Focus on "Formwork Engineering" (模板工程).
Output ONLY the clause text in Traditional Chinese (繁體中文). Do not include explanations.`

const reviewSystemInstruction = `You are a senior construction project manager. Review the provided contract summary for potential risks for the sub-contractor.
Provide a bulleted list of 3-5 key risks or missing protections in Traditional Chinese. Keep it concise.`

// Drafter generates clause text through the Gemini API. At most one request
// is in flight at a time; concurrent triggers fail fast with ErrBusy.
type Drafter struct {
	client   *genai.Client
	model    string
	inFlight atomic.Bool
}

// NewDrafter builds a drafter, or a disabled one when apiKey is empty.
func NewDrafter(ctx context.Context, apiKey, model string) (*Drafter, error) {
	if model == "" {
		model = "gemini-2.5-flash"
	}
	if apiKey == "" {
		return &Drafter{model: model}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Drafter{client: client, model: model}, nil
}

// Enabled reports whether the collaborator is configured.
func (d *Drafter) Enabled() bool {
	return d.client != nil
}

// DraftClause turns a plain-language request into clause text.
func (d *Drafter) DraftClause(ctx context.Context, prompt string) (string, error) {
	return d.generate(ctx, draftSystemInstruction, prompt)
}

// ReviewRisks asks for a short risk assessment of a contract summary.
func (d *Drafter) ReviewRisks(ctx context.Context, contractText string) (string, error) {
	return d.generate(ctx, reviewSystemInstruction, contractText)
}

func (d *Drafter) generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	if d.client == nil {
		return "", ErrUnavailable
	}
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt is empty")
	}
	if !d.inFlight.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer d.inFlight.Store(false)

	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}
	result, err := d.client.Models.GenerateContent(ctx, d.model, contents, &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemInstruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0.7),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty completion", ErrUnavailable)
	}
	return text, nil
}
