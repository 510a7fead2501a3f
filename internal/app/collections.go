// Package app holds the application services and business logic.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"bloodbank/internal/domain"

	"go.uber.org/zap"
)

// Collections reads and writes the named record collections over a Store.
// Every write rewrites the whole collection. The mutex makes this process the
// single writer; other processes sharing the store still race.
type Collections struct {
	store domain.Store
	log   *zap.Logger
	now   func() time.Time
	mu    sync.Mutex
}

// NewCollections wraps store. A nil logger is replaced by a no-op logger.
func NewCollections(store domain.Store, log *zap.Logger) *Collections {
	if log == nil {
		log = zap.NewNop()
	}
	return &Collections{store: store, log: log, now: time.Now}
}

// SetClock replaces the time source used for created timestamps and
// donation day counts.
func (c *Collections) SetClock(now func() time.Time) {
	c.now = now
}

// Store returns the underlying store.
func (c *Collections) Store() domain.Store { return c.store }

// update runs fn while holding the writer lock.
func (c *Collections) update(fn func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn()
}

func (c *Collections) donors(ctx context.Context) ([]domain.Donor, error) {
	return load[domain.Donor](ctx, c, domain.CollectionDonors)
}

func (c *Collections) saveDonors(ctx context.Context, v []domain.Donor) error {
	return save(ctx, c, domain.CollectionDonors, v)
}

func (c *Collections) hospitals(ctx context.Context) ([]domain.Hospital, error) {
	return load[domain.Hospital](ctx, c, domain.CollectionHospitals)
}

func (c *Collections) saveHospitals(ctx context.Context, v []domain.Hospital) error {
	return save(ctx, c, domain.CollectionHospitals, v)
}

func (c *Collections) admins(ctx context.Context) ([]domain.Admin, error) {
	return load[domain.Admin](ctx, c, domain.CollectionAdmins)
}

func (c *Collections) saveAdmins(ctx context.Context, v []domain.Admin) error {
	return save(ctx, c, domain.CollectionAdmins, v)
}

func (c *Collections) requests(ctx context.Context) ([]domain.Request, error) {
	return load[domain.Request](ctx, c, domain.CollectionRequests)
}

func (c *Collections) saveRequests(ctx context.Context, v []domain.Request) error {
	return save(ctx, c, domain.CollectionRequests, v)
}

// load decodes a collection. A missing or undecodable payload is an empty
// collection; only store failures are returned as errors.
func load[T any](ctx context.Context, c *Collections, name string) ([]T, error) {
	payload, err := c.store.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if len(payload) == 0 {
		return []T{}, nil
	}
	var out []T
	if err := json.Unmarshal(payload, &out); err != nil {
		c.log.Warn("discarding malformed collection",
			zap.String("collection", name),
			zap.Int("bytes", len(payload)),
			zap.Error(err))
		return []T{}, nil
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func save[T any](ctx context.Context, c *Collections, name string, v []T) error {
	if v == nil {
		v = []T{}
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := c.store.Save(ctx, name, payload); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}
