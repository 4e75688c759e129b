package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/formwork-contracts/internal/model"
)

func testContract(title string) model.Contract {
	contract := model.Contract{
		ID:        uuid.New(),
		Title:     title,
		CreatedAt: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC),
		Status:    model.ContractStatusFinalized,
		Items: []model.LineItem{
			{ID: uuid.New(), Name: "普通模板", Unit: "m²", Price: 450, Quantity: 10},
		},
		Clauses: model.ClonePresetClauses(),
	}
	contract.RecomputeTotal()
	return contract
}

func TestUpsertPrependsNewContracts(t *testing.T) {
	ctx := context.Background()
	repo, err := NewContractRepository(ctx, newFakeStore())
	require.NoError(t, err)

	first := testContract("第一份")
	second := testContract("第二份")
	require.NoError(t, repo.Upsert(ctx, first))
	require.NoError(t, repo.Upsert(ctx, second))

	contracts := repo.List()
	require.Len(t, contracts, 2)
	assert.Equal(t, second.ID, contracts[0].ID)
	assert.Equal(t, first.ID, contracts[1].ID)
}

func TestUpsertReplacesInPlace(t *testing.T) {
	ctx := context.Background()
	repo, err := NewContractRepository(ctx, newFakeStore())
	require.NoError(t, err)

	first := testContract("第一份")
	second := testContract("第二份")
	require.NoError(t, repo.Upsert(ctx, first))
	require.NoError(t, repo.Upsert(ctx, second))

	first.Title = "改名後"
	require.NoError(t, repo.Upsert(ctx, first))

	contracts := repo.List()
	require.Len(t, contracts, 2)
	// Position is preserved: re-saving does not move the contract.
	assert.Equal(t, second.ID, contracts[0].ID)
	assert.Equal(t, first.ID, contracts[1].ID)
	assert.Equal(t, "改名後", contracts[1].Title)
}

func TestGet(t *testing.T) {
	ctx := context.Background()
	repo, err := NewContractRepository(ctx, newFakeStore())
	require.NoError(t, err)

	contract := testContract("合約")
	require.NoError(t, repo.Upsert(ctx, contract))

	found, err := repo.Get(contract.ID)
	require.NoError(t, err)
	assert.Equal(t, contract.Title, found.Title)

	_, err = repo.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	repo, err := NewContractRepository(ctx, newFakeStore())
	require.NoError(t, err)

	contract := testContract("合約")
	require.NoError(t, repo.Upsert(ctx, contract))

	require.NoError(t, repo.Delete(ctx, contract.ID))
	assert.Empty(t, repo.List())

	assert.ErrorIs(t, repo.Delete(ctx, contract.ID), ErrNotFound)
}

func TestRoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	repo, err := NewContractRepository(ctx, store)
	require.NoError(t, err)

	contract := testContract("往返測試")
	contract.PartyA = model.PartyInfo{CompanyName: "甲公司", TaxID: "12345678", Representative: "王小明"}
	contract.PartyB = model.PartyInfo{CompanyName: "乙公司", Phone: "02-1234-5678"}
	require.NoError(t, repo.Upsert(ctx, contract))

	// A fresh repository hydrated from the same store sees an equal record,
	// items and clauses in original order included.
	reloaded, err := NewContractRepository(ctx, store)
	require.NoError(t, err)

	contracts := reloaded.List()
	require.Len(t, contracts, 1)
	require.Equal(t, contract, contracts[0])
}

func TestUpsertRollsBackWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	repo, err := NewContractRepository(ctx, store)
	require.NoError(t, err)

	contract := testContract("保留")
	require.NoError(t, repo.Upsert(ctx, contract))

	store.failSave = true
	intruder := testContract("寫入失敗")
	err = repo.Upsert(ctx, intruder)
	require.Error(t, err)

	// Prior state intact: the failed mutation is not visible.
	contracts := repo.List()
	require.Len(t, contracts, 1)
	assert.Equal(t, contract.ID, contracts[0].ID)
}

func TestDeleteRollsBackWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	repo, err := NewContractRepository(ctx, store)
	require.NoError(t, err)

	contract := testContract("保留")
	require.NoError(t, repo.Upsert(ctx, contract))

	store.failSave = true
	require.Error(t, repo.Delete(ctx, contract.ID))
	require.Len(t, repo.List(), 1)
}

func TestListReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo, err := NewContractRepository(ctx, newFakeStore())
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, testContract("原始")))

	contracts := repo.List()
	contracts[0].Title = "外部修改"

	assert.Equal(t, "原始", repo.List()[0].Title)
}
