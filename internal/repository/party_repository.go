package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nurpe/formwork-contracts/internal/model"
)

// Directory names one of the two independent party lists.
type Directory string

const (
	DirectoryOwnCompanies   Directory = "own"
	DirectoryCounterparties Directory = "counterparty"
)

var directoryKeys = map[Directory]string{
	DirectoryOwnCompanies:   "formwork_my_companies",
	DirectoryCounterparties: "formwork_contractors",
}

// PartyRepository manages the own-company and counterparty directories.
// Entries are keyed by company name: upserting a matching name replaces the
// entry in place, a new name appends.
type PartyRepository struct {
	store Store

	mu          sync.Mutex
	directories map[Directory][]model.PartyInfo
}

func NewPartyRepository(ctx context.Context, store Store) (*PartyRepository, error) {
	repo := &PartyRepository{
		store:       store,
		directories: make(map[Directory][]model.PartyInfo, len(directoryKeys)),
	}

	for dir, key := range directoryKeys {
		payload, ok, err := store.Load(ctx, key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		var parties []model.PartyInfo
		if err := json.Unmarshal(payload, &parties); err != nil {
			return nil, fmt.Errorf("decode %s directory: %w", dir, err)
		}
		repo.directories[dir] = parties
	}
	return repo, nil
}

func (r *PartyRepository) List(dir Directory) ([]model.PartyInfo, error) {
	if _, ok := directoryKeys[dir]; !ok {
		return nil, ErrUnknownDirectory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	parties := make([]model.PartyInfo, len(r.directories[dir]))
	copy(parties, r.directories[dir])
	return parties, nil
}

// Upsert replaces the entry whose company name matches, or appends. An
// empty company name fails and leaves the directory unchanged.
func (r *PartyRepository) Upsert(ctx context.Context, dir Directory, party model.PartyInfo) error {
	if _, ok := directoryKeys[dir]; !ok {
		return ErrUnknownDirectory
	}
	if party.CompanyName == "" {
		return ErrEmptyCompanyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.directories[dir]

	next := make([]model.PartyInfo, len(previous), len(previous)+1)
	copy(next, previous)
	replaced := false
	for i := range next {
		if next[i].CompanyName == party.CompanyName {
			next[i] = party
			replaced = true
			break
		}
	}
	if !replaced {
		next = append(next, party)
	}

	r.directories[dir] = next
	if err := r.persist(ctx, dir); err != nil {
		r.directories[dir] = previous
		return err
	}
	return nil
}

// Delete removes the entry at index.
func (r *PartyRepository) Delete(ctx context.Context, dir Directory, index int) error {
	if _, ok := directoryKeys[dir]; !ok {
		return ErrUnknownDirectory
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.directories[dir]
	if index < 0 || index >= len(previous) {
		return ErrIndexOutOfRange
	}

	next := make([]model.PartyInfo, 0, len(previous)-1)
	next = append(next, previous[:index]...)
	next = append(next, previous[index+1:]...)

	r.directories[dir] = next
	if err := r.persist(ctx, dir); err != nil {
		r.directories[dir] = previous
		return err
	}
	return nil
}

func (r *PartyRepository) persist(ctx context.Context, dir Directory) error {
	parties := r.directories[dir]
	if parties == nil {
		parties = []model.PartyInfo{}
	}
	payload, err := json.Marshal(parties)
	if err != nil {
		return fmt.Errorf("encode %s directory: %w", dir, err)
	}
	return r.store.Save(ctx, directoryKeys[dir], payload)
}

// ParseDirectory maps the transport-level directory name.
func ParseDirectory(raw string) (Directory, error) {
	switch Directory(raw) {
	case DirectoryOwnCompanies:
		return DirectoryOwnCompanies, nil
	case DirectoryCounterparties:
		return DirectoryCounterparties, nil
	default:
		return "", ErrUnknownDirectory
	}
}
