package db

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// CollectionStore persists whole serialized collections under named keys.
// There are no partial updates: every save rewrites the full payload.
type CollectionStore struct {
	db *gorm.DB
}

func NewCollectionStore(db *gorm.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

// Load returns the serialized collection for key. The second return value
// reports whether the key exists; a missing key is not an error.
func (s *CollectionStore) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var rows []string
	err := s.db.WithContext(ctx).Raw(`
		SELECT payload FROM collections WHERE key = ? LIMIT 1
	`, key).Scan(&rows).Error
	if err != nil {
		return nil, false, fmt.Errorf("load collection %q: %w", key, err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return []byte(rows[0]), true, nil
}

// Save replaces the serialized collection for key.
func (s *CollectionStore) Save(ctx context.Context, key string, payload []byte) error {
	err := s.db.WithContext(ctx).Exec(`
		INSERT INTO collections (key, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`, key, string(payload), time.Now().UTC()).Error
	if err != nil {
		return fmt.Errorf("save collection %q: %w", key, err)
	}
	return nil
}
