package model

import "github.com/google/uuid"

type ClauseCategory string

const (
	ClauseCategoryGeneral     ClauseCategory = "general"
	ClauseCategoryPayment     ClauseCategory = "payment"
	ClauseCategorySafety      ClauseCategory = "safety"
	ClauseCategoryEnvironment ClauseCategory = "environment"
	ClauseCategoryCustom      ClauseCategory = "custom"
)

// categoryLabels is the single source of presentation labels for clause
// categories; every surface (print, CSV, Excel) reads from here.
var categoryLabels = map[ClauseCategory]string{
	ClauseCategoryGeneral:     "一般條款",
	ClauseCategoryPayment:     "付款條件",
	ClauseCategorySafety:      "安全衛生",
	ClauseCategoryEnvironment: "環保清潔",
	ClauseCategoryCustom:      "特殊條款",
}

func CategoryLabel(category ClauseCategory) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return "其他條款"
}

func ValidCategory(category ClauseCategory) bool {
	_, ok := categoryLabels[category]
	return ok
}

// Clause is one contractual term. Order within Contract.Clauses is the
// print order; only selected clauses appear in exported output.
type Clause struct {
	ID       uuid.UUID      `json:"id"`
	Category ClauseCategory `json:"category"`
	Content  string         `json:"content"`
	IsCustom bool           `json:"isCustom"`
	Selected bool           `json:"selected"`
}

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// NewCustomClause creates a hand-authored clause, selected by default.
func NewCustomClause(content string) Clause {
	return Clause{
		ID:       uuid.New(),
		Category: ClauseCategoryCustom,
		Content:  content,
		IsCustom: true,
		Selected: true,
	}
}

func (c *Contract) AddClause(clause Clause) {
	c.Clauses = append(c.Clauses, clause)
}

// ToggleClause flips inclusion of the clause with the given id and reports
// whether it was found.
func (c *Contract) ToggleClause(id uuid.UUID) bool {
	for i := range c.Clauses {
		if c.Clauses[i].ID == id {
			c.Clauses[i].Selected = !c.Clauses[i].Selected
			return true
		}
	}
	return false
}

// UpdateClause edits content and category in place.
func (c *Contract) UpdateClause(id uuid.UUID, content string, category ClauseCategory) bool {
	for i := range c.Clauses {
		if c.Clauses[i].ID == id {
			c.Clauses[i].Content = content
			c.Clauses[i].Category = category
			return true
		}
	}
	return false
}

func (c *Contract) RemoveClause(id uuid.UUID) {
	kept := c.Clauses[:0]
	for _, clause := range c.Clauses {
		if clause.ID != id {
			kept = append(kept, clause)
		}
	}
	c.Clauses = kept
}

// MoveClause swaps the clause at index with its adjacent neighbour. Moving
// the first entry up or the last entry down is a no-op.
func (c *Contract) MoveClause(index int, direction MoveDirection) {
	if index < 0 || index >= len(c.Clauses) {
		return
	}
	target := index - 1
	if direction == MoveDown {
		target = index + 1
	}
	if target < 0 || target >= len(c.Clauses) {
		return
	}
	c.Clauses[index], c.Clauses[target] = c.Clauses[target], c.Clauses[index]
}

// SelectedClauses returns the clauses included in the final document, in
// display order.
func (c Contract) SelectedClauses() []Clause {
	selected := make([]Clause, 0, len(c.Clauses))
	for _, clause := range c.Clauses {
		if clause.Selected {
			selected = append(selected, clause)
		}
	}
	return selected
}
