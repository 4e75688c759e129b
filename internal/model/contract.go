package model

import (
	"time"

	"github.com/google/uuid"
)

type ContractStatus string

const (
	ContractStatusDraft     ContractStatus = "draft"
	ContractStatusFinalized ContractStatus = "finalized"
)

// PartyInfo is one counterparty's identity. Contracts embed value copies,
// never references, so directory edits do not rewrite history.
type PartyInfo struct {
	CompanyName    string `json:"companyName"`
	TaxID          string `json:"taxId"`
	Representative string `json:"representative"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
}

// LineItem is one billable work item, scoped to a single contract.
type LineItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Unit     string    `json:"unit"`
	Price    float64   `json:"price"`
	Quantity float64   `json:"quantity"`
	Note     string    `json:"note,omitempty"`
}

func (i LineItem) LineTotal() float64 {
	return i.Price * i.Quantity
}

type Contract struct {
	ID              uuid.UUID      `json:"id"`
	Title           string         `json:"title"`
	CreatedAt       time.Time      `json:"createdAt"`
	Status          ContractStatus `json:"status"`
	PartyA          PartyInfo      `json:"partyA"`
	PartyB          PartyInfo      `json:"partyB"`
	Items           []LineItem     `json:"items"`
	Clauses         []Clause       `json:"clauses"`
	TotalAmount     float64        `json:"totalAmount"`
	ProjectLocation string         `json:"projectLocation"`
	StartDate       string         `json:"startDate"`
	EndDate         string         `json:"endDate"`
}

// NewContract returns the draft skeleton every editing session starts from:
// fresh id, current timestamp, empty items, preset-seeded clauses.
func NewContract() Contract {
	return Contract{
		ID:        uuid.New(),
		Title:     "新建工程模板合約",
		CreatedAt: time.Now().UTC(),
		Status:    ContractStatusDraft,
		Items:     []LineItem{},
		Clauses:   ClonePresetClauses(),
	}
}

// RecomputeTotal derives TotalAmount from the items. It is the only writer
// of that field; no rounding happens during accumulation.
func (c *Contract) RecomputeTotal() {
	total := 0.0
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	c.TotalAmount = total
}

// NewItem creates an empty line item, optionally pre-filled from a preset.
func NewItem(preset *ItemPreset) LineItem {
	item := LineItem{
		ID:       uuid.New(),
		Unit:     "m²",
		Quantity: 1,
	}
	if preset != nil {
		item.Name = preset.Name
		item.Unit = preset.Unit
		item.Price = preset.Price
	}
	return item
}

func (c *Contract) AddItem(item LineItem) {
	c.Items = append(c.Items, item)
	c.RecomputeTotal()
}

// RemoveItem deletes the item with the given id. Unknown ids are a no-op.
func (c *Contract) RemoveItem(id uuid.UUID) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	c.Items = kept
	c.RecomputeTotal()
}

func (c *Contract) Finalize() {
	c.Status = ContractStatusFinalized
}
