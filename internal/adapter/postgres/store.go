// Package postgres implements domain.Store on a PostgreSQL table keyed by
// collection name.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bloodbank/internal/domain"
)

var _ domain.Store = (*DB)(nil)

// Load returns the payload stored under name, or nil when absent.
func (d *DB) Load(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := d.sql.QueryRowContext(ctx,
		"SELECT payload FROM collections WHERE name = $1",
		name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Save upserts the payload under name.
func (d *DB) Save(ctx context.Context, name string, payload []byte) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO collections (name, payload, updated_at) VALUES ($1, $2, $3) ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at",
		name, payload, time.Now().UTC(),
	)
	return err
}

// Delete removes name.
func (d *DB) Delete(ctx context.Context, name string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM collections WHERE name = $1", name)
	return err
}
