package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/formwork-contracts/internal/model"
)

func TestUpsertPartyAppendsNewName(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPartyRepository(ctx, newFakeStore())
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, DirectoryCounterparties, model.PartyInfo{CompanyName: "Acme"}))
	require.NoError(t, repo.Upsert(ctx, DirectoryCounterparties, model.PartyInfo{CompanyName: "Beta"}))

	parties, err := repo.List(DirectoryCounterparties)
	require.NoError(t, err)
	require.Len(t, parties, 2)
	assert.Equal(t, "Acme", parties[0].CompanyName)
	assert.Equal(t, "Beta", parties[1].CompanyName)
}

func TestUpsertPartyReplacesMatchingName(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPartyRepository(ctx, newFakeStore())
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, DirectoryCounterparties, model.PartyInfo{CompanyName: "Acme", Phone: "舊電話"}))
	require.NoError(t, repo.Upsert(ctx, DirectoryCounterparties, model.PartyInfo{CompanyName: "Beta"}))
	require.NoError(t, repo.Upsert(ctx, DirectoryCounterparties, model.PartyInfo{CompanyName: "Acme", Phone: "新電話"}))

	parties, err := repo.List(DirectoryCounterparties)
	require.NoError(t, err)
	// Length unchanged, entry replaced in place.
	require.Len(t, parties, 2)
	assert.Equal(t, "Acme", parties[0].CompanyName)
	assert.Equal(t, "新電話", parties[0].Phone)
}

func TestUpsertPartyRejectsEmptyName(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPartyRepository(ctx, newFakeStore())
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, DirectoryOwnCompanies, model.PartyInfo{CompanyName: "甲公司"}))

	err = repo.Upsert(ctx, DirectoryOwnCompanies, model.PartyInfo{TaxID: "12345678"})
	assert.ErrorIs(t, err, ErrEmptyCompanyName)

	// Directory unchanged after the failed upsert.
	parties, err := repo.List(DirectoryOwnCompanies)
	require.NoError(t, err)
	require.Len(t, parties, 1)
}

func TestDirectoriesAreIndependent(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPartyRepository(ctx, newFakeStore())
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, DirectoryOwnCompanies, model.PartyInfo{CompanyName: "Acme"}))

	counterparties, err := repo.List(DirectoryCounterparties)
	require.NoError(t, err)
	assert.Empty(t, counterparties)
}

func TestDeleteParty(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPartyRepository(ctx, newFakeStore())
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, DirectoryCounterparties, model.PartyInfo{CompanyName: "Acme"}))
	require.NoError(t, repo.Upsert(ctx, DirectoryCounterparties, model.PartyInfo{CompanyName: "Beta"}))

	require.NoError(t, repo.Delete(ctx, DirectoryCounterparties, 0))

	parties, err := repo.List(DirectoryCounterparties)
	require.NoError(t, err)
	require.Len(t, parties, 1)
	assert.Equal(t, "Beta", parties[0].CompanyName)

	assert.ErrorIs(t, repo.Delete(ctx, DirectoryCounterparties, 5), ErrIndexOutOfRange)
}

func TestPartyRoundTripThroughStore(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	repo, err := NewPartyRepository(ctx, store)
	require.NoError(t, err)

	party := model.PartyInfo{CompanyName: "Acme", TaxID: "12345678", Representative: "王小明", Phone: "02-1234", Address: "台北市"}
	require.NoError(t, repo.Upsert(ctx, DirectoryCounterparties, party))

	reloaded, err := NewPartyRepository(ctx, store)
	require.NoError(t, err)

	parties, err := reloaded.List(DirectoryCounterparties)
	require.NoError(t, err)
	require.Len(t, parties, 1)
	assert.Equal(t, party, parties[0])
}

func TestUpsertPartyRollsBackWhenPersistFails(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()

	repo, err := NewPartyRepository(ctx, store)
	require.NoError(t, err)

	require.NoError(t, repo.Upsert(ctx, DirectoryCounterparties, model.PartyInfo{CompanyName: "Acme"}))

	store.failSave = true
	require.Error(t, repo.Upsert(ctx, DirectoryCounterparties, model.PartyInfo{CompanyName: "Beta"}))

	parties, err := repo.List(DirectoryCounterparties)
	require.NoError(t, err)
	require.Len(t, parties, 1)
}

func TestParseDirectory(t *testing.T) {
	dir, err := ParseDirectory("own")
	require.NoError(t, err)
	assert.Equal(t, DirectoryOwnCompanies, dir)

	dir, err = ParseDirectory("counterparty")
	require.NoError(t, err)
	assert.Equal(t, DirectoryCounterparties, dir)

	_, err = ParseDirectory("something-else")
	assert.ErrorIs(t, err, ErrUnknownDirectory)
}
