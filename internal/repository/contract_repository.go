package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/nurpe/formwork-contracts/internal/model"
)

const contractsKey = "formwork_contracts"

// ContractRepository keeps the contract collection ordered newest-first by
// insertion: new contracts are prepended, re-saved contracts stay in place.
type ContractRepository struct {
	store Store

	mu        sync.Mutex
	contracts []model.Contract
}

func NewContractRepository(ctx context.Context, store Store) (*ContractRepository, error) {
	repo := &ContractRepository{store: store}

	payload, ok, err := store.Load(ctx, contractsKey)
	if err != nil {
		return nil, err
	}
	if ok {
		if err := json.Unmarshal(payload, &repo.contracts); err != nil {
			return nil, fmt.Errorf("decode contracts collection: %w", err)
		}
	}
	return repo, nil
}

// List returns a copy of the collection, newest-first.
func (r *ContractRepository) List() []model.Contract {
	r.mu.Lock()
	defer r.mu.Unlock()

	contracts := make([]model.Contract, len(r.contracts))
	copy(contracts, r.contracts)
	return contracts
}

func (r *ContractRepository) Get(id uuid.UUID) (model.Contract, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, contract := range r.contracts {
		if contract.ID == id {
			return contract, nil
		}
	}
	return model.Contract{}, ErrNotFound
}

// Upsert replaces the contract with the same id in place, or prepends a new
// one. If persisting fails the in-memory collection is rolled back so the
// caller observes the prior state intact.
func (r *ContractRepository) Upsert(ctx context.Context, contract model.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.contracts

	replaced := false
	next := make([]model.Contract, len(r.contracts), len(r.contracts)+1)
	copy(next, r.contracts)
	for i := range next {
		if next[i].ID == contract.ID {
			next[i] = contract
			replaced = true
			break
		}
	}
	if !replaced {
		next = append([]model.Contract{contract}, next...)
	}

	r.contracts = next
	if err := r.persist(ctx); err != nil {
		r.contracts = previous
		return err
	}
	return nil
}

// Delete removes the contract with the given id. The double-confirmation
// gate lives in the service layer; by the time this runs the user has
// affirmed twice.
func (r *ContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous := r.contracts

	next := make([]model.Contract, 0, len(r.contracts))
	found := false
	for _, contract := range r.contracts {
		if contract.ID == id {
			found = true
			continue
		}
		next = append(next, contract)
	}
	if !found {
		return ErrNotFound
	}

	r.contracts = next
	if err := r.persist(ctx); err != nil {
		r.contracts = previous
		return err
	}
	return nil
}

func (r *ContractRepository) persist(ctx context.Context) error {
	payload, err := json.Marshal(r.contracts)
	if err != nil {
		return fmt.Errorf("encode contracts collection: %w", err)
	}
	return r.store.Save(ctx, contractsKey, payload)
}
