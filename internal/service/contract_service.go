package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nurpe/formwork-contracts/internal/history"
	"github.com/nurpe/formwork-contracts/internal/model"
	"github.com/nurpe/formwork-contracts/internal/repository"
)

type PDFGenerator interface {
	Generate(contract model.Contract) ([]byte, error)
}

type ExcelGenerator interface {
	Generate(groups []history.CounterpartyHistory) ([]byte, error)
}

// deleteTokenTTL bounds how long the first deletion confirmation stays
// armed before the user must start over.
const deleteTokenTTL = 5 * time.Minute

type pendingDelete struct {
	token     string
	expiresAt time.Time
}

// ContractService orchestrates the contract collection, the party
// directories, and the export surfaces.
type ContractService struct {
	contracts *repository.ContractRepository
	parties   *repository.PartyRepository
	pdf       PDFGenerator
	excel     ExcelGenerator

	mu             sync.Mutex
	pendingDeletes map[uuid.UUID]pendingDelete
}

func NewContractService(
	contracts *repository.ContractRepository,
	parties *repository.PartyRepository,
	pdf PDFGenerator,
	excel ExcelGenerator,
) *ContractService {
	return &ContractService{
		contracts:      contracts,
		parties:        parties,
		pdf:            pdf,
		excel:          excel,
		pendingDeletes: make(map[uuid.UUID]pendingDelete),
	}
}

func (s *ContractService) ListContracts() []model.Contract {
	return s.contracts.List()
}

func (s *ContractService) GetContract(id uuid.UUID) (model.Contract, error) {
	contract, err := s.contracts.Get(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Contract{}, ErrNotFound
		}
		return model.Contract{}, err
	}
	return contract, nil
}

// NewContract returns a fresh editing skeleton. Nothing is persisted until
// the contract is saved.
func (s *ContractService) NewContract() model.Contract {
	return model.NewContract()
}

// SaveContract upserts the contract. The total is always recomputed from
// the items here, never trusted from the caller, and saving finalizes the
// document: the draft state exists only inside an editing session and
// there is no way back from finalized. Empty titles and empty item lists
// are allowed, drafts are not blocked from being saved.
func (s *ContractService) SaveContract(ctx context.Context, contract model.Contract) (model.Contract, error) {
	if contract.ID == uuid.Nil {
		return model.Contract{}, fmt.Errorf("%w: contract id is required", ErrInvalidInput)
	}
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = time.Now().UTC()
	}
	for _, clause := range contract.Clauses {
		if !model.ValidCategory(clause.Category) {
			return model.Contract{}, fmt.Errorf("%w: unknown clause category %q", ErrInvalidInput, clause.Category)
		}
	}
	for _, item := range contract.Items {
		if item.Price < 0 {
			return model.Contract{}, fmt.Errorf("%w: item price must not be negative", ErrInvalidInput)
		}
	}

	contract.RecomputeTotal()
	contract.Finalize()

	if err := s.contracts.Upsert(ctx, contract); err != nil {
		return model.Contract{}, err
	}
	return contract, nil
}

// RequestDelete is the first of the two confirmations required to delete a
// contract. It arms an expiring token; nothing is removed yet.
func (s *ContractService) RequestDelete(id uuid.UUID) (string, error) {
	if _, err := s.GetContract(id); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	token := uuid.NewString()
	s.pendingDeletes[id] = pendingDelete{
		token:     token,
		expiresAt: time.Now().Add(deleteTokenTTL),
	}
	return token, nil
}

// ConfirmDelete is the second confirmation. The token is one-shot: any
// attempt, matching or not, disarms it, so a failed confirmation forces the
// caller back to RequestDelete.
func (s *ContractService) ConfirmDelete(ctx context.Context, id uuid.UUID, token string) error {
	s.mu.Lock()
	pending, ok := s.pendingDeletes[id]
	delete(s.pendingDeletes, id)
	s.mu.Unlock()

	if !ok || pending.token != token || time.Now().After(pending.expiresAt) {
		return ErrDeleteNotConfirmed
	}

	if err := s.contracts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *ContractService) ListParties(dir repository.Directory) ([]model.PartyInfo, error) {
	parties, err := s.parties.List(dir)
	if err != nil {
		return nil, s.mapPartyError(err)
	}
	return parties, nil
}

func (s *ContractService) UpsertParty(ctx context.Context, dir repository.Directory, party model.PartyInfo) error {
	if err := s.parties.Upsert(ctx, dir, party); err != nil {
		return s.mapPartyError(err)
	}
	return nil
}

// DeleteParty removes one directory entry. One explicit confirmation is
// enough here; the destructive gate is the caller having to name the index.
func (s *ContractService) DeleteParty(ctx context.Context, dir repository.Directory, index int) error {
	if err := s.parties.Delete(ctx, dir, index); err != nil {
		return s.mapPartyError(err)
	}
	return nil
}

func (s *ContractService) mapPartyError(err error) error {
	switch {
	case errors.Is(err, repository.ErrEmptyCompanyName):
		return fmt.Errorf("%w: company name is required", ErrInvalidInput)
	case errors.Is(err, repository.ErrUnknownDirectory):
		return fmt.Errorf("%w: unknown party directory", ErrInvalidInput)
	case errors.Is(err, repository.ErrIndexOutOfRange):
		return ErrNotFound
	default:
		return err
	}
}

// PriceHistory recomputes the aggregation view from the full collection on
// every call; there is no cache to invalidate.
func (s *ContractService) PriceHistory() []history.CounterpartyHistory {
	return history.Build(s.contracts.List())
}

type ExportResult struct {
	FileName string
	Content  []byte
}

func (s *ContractService) RenderContractPDF(id uuid.UUID) (*ExportResult, error) {
	contract, err := s.GetContract(id)
	if err != nil {
		return nil, err
	}
	content, err := s.pdf.Generate(contract)
	if err != nil {
		return nil, err
	}
	name := sanitizeFileName(contract.Title)
	if name == "" {
		name = contract.ID.String()
	}
	return &ExportResult{
		FileName: fmt.Sprintf("contract-%s.pdf", name),
		Content:  content,
	}, nil
}

func (s *ContractService) ExportHistoryWorkbook() (*ExportResult, error) {
	content, err := s.excel.Generate(s.PriceHistory())
	if err != nil {
		return nil, err
	}
	return &ExportResult{
		FileName: fmt.Sprintf("price-history-%s.xlsx", time.Now().Format("20060102")),
		Content:  content,
	}, nil
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range input {
		switch {
		case r >= 'a' && r <= 'z':
			result = append(result, r)
		case r >= 'A' && r <= 'Z':
			result = append(result, r)
		case r >= '0' && r <= '9':
			result = append(result, r)
		case r == '-', r == '_':
			result = append(result, r)
		default:
			result = append(result, '-')
		}
	}
	return strings.Trim(string(result), "-")
}
