package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clauseContents(clauses []Clause) []string {
	contents := make([]string, len(clauses))
	for i, clause := range clauses {
		contents[i] = clause.Content
	}
	return contents
}

func TestMoveClauseSwapsAdjacentEntries(t *testing.T) {
	contract := Contract{Clauses: []Clause{
		{ID: uuid.New(), Content: "一"},
		{ID: uuid.New(), Content: "二"},
		{ID: uuid.New(), Content: "三"},
	}}

	contract.MoveClause(1, MoveUp)
	assert.Equal(t, []string{"二", "一", "三"}, clauseContents(contract.Clauses))

	contract.MoveClause(0, MoveDown)
	assert.Equal(t, []string{"一", "二", "三"}, clauseContents(contract.Clauses))
}

func TestMoveClauseEdgesAreNoOps(t *testing.T) {
	contract := Contract{Clauses: []Clause{
		{ID: uuid.New(), Content: "一"},
		{ID: uuid.New(), Content: "二"},
	}}

	contract.MoveClause(0, MoveUp)
	assert.Equal(t, []string{"一", "二"}, clauseContents(contract.Clauses))

	contract.MoveClause(1, MoveDown)
	assert.Equal(t, []string{"一", "二"}, clauseContents(contract.Clauses))

	contract.MoveClause(-1, MoveDown)
	contract.MoveClause(5, MoveUp)
	assert.Equal(t, []string{"一", "二"}, clauseContents(contract.Clauses))
}

func TestClonePresetClausesIsDeepCopy(t *testing.T) {
	first := NewContract()
	second := NewContract()

	require.NotEmpty(t, first.Clauses)
	require.Len(t, second.Clauses, len(first.Clauses))

	// Fresh ids per contract.
	assert.NotEqual(t, first.Clauses[0].ID, second.Clauses[0].ID)

	// Editing one contract's clauses leaves the other untouched.
	first.Clauses[0].Content = "改寫過的條款"
	assert.NotEqual(t, first.Clauses[0].Content, second.Clauses[0].Content)
}

func TestNewContractSkeleton(t *testing.T) {
	contract := NewContract()

	assert.NotEqual(t, uuid.Nil, contract.ID)
	assert.Equal(t, ContractStatusDraft, contract.Status)
	assert.Empty(t, contract.Items)
	assert.Equal(t, 0.0, contract.TotalAmount)
	assert.False(t, contract.CreatedAt.IsZero())
}

func TestRecomputeTotal(t *testing.T) {
	contract := NewContract()
	contract.AddItem(LineItem{ID: uuid.New(), Price: 450, Quantity: 100})
	contract.AddItem(LineItem{ID: uuid.New(), Price: 5000, Quantity: 2})
	assert.Equal(t, 55000.0, contract.TotalAmount)

	removable := LineItem{ID: uuid.New(), Price: 1000, Quantity: 3}
	contract.AddItem(removable)
	assert.Equal(t, 58000.0, contract.TotalAmount)

	contract.RemoveItem(removable.ID)
	assert.Equal(t, 55000.0, contract.TotalAmount)
}

func TestToggleClause(t *testing.T) {
	contract := NewContract()
	id := contract.Clauses[0].ID
	wasSelected := contract.Clauses[0].Selected

	require.True(t, contract.ToggleClause(id))
	assert.Equal(t, !wasSelected, contract.Clauses[0].Selected)

	assert.False(t, contract.ToggleClause(uuid.New()))
}

func TestSelectedClausesPreserveDisplayOrder(t *testing.T) {
	contract := Contract{Clauses: []Clause{
		{ID: uuid.New(), Content: "一", Selected: true},
		{ID: uuid.New(), Content: "二", Selected: false},
		{ID: uuid.New(), Content: "三", Selected: true},
	}}

	selected := contract.SelectedClauses()
	assert.Equal(t, []string{"一", "三"}, clauseContents(selected))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "一般條款", CategoryLabel(ClauseCategoryGeneral))
	assert.Equal(t, "付款條件", CategoryLabel(ClauseCategoryPayment))
	assert.Equal(t, "特殊條款", CategoryLabel(ClauseCategoryCustom))
	assert.Equal(t, "其他條款", CategoryLabel(ClauseCategory("nonsense")))
}

func TestNewItemFromPreset(t *testing.T) {
	item := NewItem(&DefaultItems[0])
	assert.Equal(t, "普通模板 (Regular Formwork)", item.Name)
	assert.Equal(t, "m²", item.Unit)
	assert.Equal(t, 450.0, item.Price)
	assert.Equal(t, 1.0, item.Quantity)

	blank := NewItem(nil)
	assert.Empty(t, blank.Name)
	assert.Equal(t, 1.0, blank.Quantity)
}
