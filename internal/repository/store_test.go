package repository

import (
	"context"
	"errors"
)

// fakeStore is an in-memory persistence collaborator for tests.
type fakeStore struct {
	data     map[string][]byte
	failSave bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: make(map[string][]byte)}
}

func (s *fakeStore) Load(_ context.Context, key string) ([]byte, bool, error) {
	payload, ok := s.data[key]
	return payload, ok, nil
}

func (s *fakeStore) Save(_ context.Context, key string, payload []byte) error {
	if s.failSave {
		return errors.New("storage quota exceeded")
	}
	s.data[key] = payload
	return nil
}
