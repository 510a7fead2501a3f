// Package memory implements an in-memory store for development and testing.
package memory

import (
	"context"
	"sync"

	"bloodbank/internal/domain"
)

// DB implements an in-memory key-value store.
type DB struct {
	mu   sync.Mutex
	data map[string][]byte
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{data: make(map[string][]byte)}
}

// Ensure interfaces are met.
var _ domain.Store = (*DB)(nil)

// Load returns a copy of the payload saved under name, or nil.
func (db *DB) Load(ctx context.Context, name string) ([]byte, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.data[name]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

// Save replaces the payload under name.
func (db *DB) Save(ctx context.Context, name string, payload []byte) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	v := make([]byte, len(payload))
	copy(v, payload)
	db.data[name] = v
	return nil
}

// Delete removes name. Deleting a missing key is not an error.
func (db *DB) Delete(ctx context.Context, name string) error {
	db.mu.Lock()
	defer db.mu.Unlock()
	delete(db.data, name)
	return nil
}
