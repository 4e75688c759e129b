// Package repository owns the three top-level collections: contracts and
// the two party directories. Collections live in memory, are hydrated from
// the store on startup, and are written back whole on every mutation.
package repository

import (
	"context"
	"errors"
)

// Store is the persistence collaborator: full-collection reads and writes
// of serialized records under named keys.
type Store interface {
	Load(ctx context.Context, key string) (payload []byte, ok bool, err error)
	Save(ctx context.Context, key string, payload []byte) error
}

var (
	ErrNotFound         = errors.New("record not found")
	ErrEmptyCompanyName = errors.New("company name is required")
	ErrUnknownDirectory = errors.New("unknown party directory")
	ErrIndexOutOfRange  = errors.New("index out of range")
)
