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

// StoreSessions keeps session descriptors in the same Store as the record
// collections. The default slot is the "current" key; any other slot is
// stored under "current:<slot>". Slots holding an expiring descriptor are
// tracked in a separate index so lapsed ones can be swept.
type StoreSessions struct {
	store domain.Store
	log   *zap.Logger

	mu sync.Mutex // guards the slot index
}

var _ domain.SessionStore = (*StoreSessions)(nil)

// NewStoreSessions creates a SessionStore backed by store.
func NewStoreSessions(store domain.Store, log *zap.Logger) *StoreSessions {
	if log == nil {
		log = zap.NewNop()
	}
	return &StoreSessions{store: store, log: log}
}

// SlotKey returns the store key holding slot.
func SlotKey(slot string) string {
	if slot == "" {
		return domain.KeyCurrent
	}
	return domain.KeyCurrent + ":" + slot
}

// Get returns the descriptor in slot. An undecodable or unrecognised
// descriptor counts as no session.
func (s *StoreSessions) Get(ctx context.Context, slot string) (*domain.Session, error) {
	payload, err := s.store.Load(ctx, SlotKey(slot))
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if len(payload) == 0 {
		return nil, nil
	}
	var sess *domain.Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		s.log.Warn("discarding malformed session", zap.Error(err))
		return nil, nil
	}
	if sess == nil {
		return nil, nil
	}
	if _, ok := domain.ParsePortal(string(sess.Portal)); !ok {
		return nil, nil
	}
	return sess, nil
}

// Put replaces the descriptor in slot.
func (s *StoreSessions) Put(ctx context.Context, slot string, sess domain.Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, SlotKey(slot), payload); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := s.index(ctx)
	if err != nil {
		return err
	}
	if sess.ExpiresAt.IsZero() {
		if _, ok := index[slot]; !ok {
			return nil
		}
		delete(index, slot)
	} else {
		index[slot] = sess.ExpiresAt.UnixMilli()
	}
	return s.saveIndex(ctx, index)
}

// Clear removes the descriptor in slot.
func (s *StoreSessions) Clear(ctx context.Context, slot string) error {
	if err := s.store.Delete(ctx, SlotKey(slot)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := s.index(ctx)
	if err != nil {
		return err
	}
	if _, ok := index[slot]; !ok {
		return nil
	}
	delete(index, slot)
	return s.saveIndex(ctx, index)
}

// DeleteExpired removes every indexed descriptor whose expiry is at or
// before now.
func (s *StoreSessions) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index, err := s.index(ctx)
	if err != nil {
		return 0, err
	}
	cutoff := now.UnixMilli()
	removed := 0
	for slot, expires := range index {
		if expires > cutoff {
			continue
		}
		if err := s.store.Delete(ctx, SlotKey(slot)); err != nil {
			return removed, fmt.Errorf("delete expired session: %w", err)
		}
		delete(index, slot)
		removed++
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, s.saveIndex(ctx, index)
}

// index maps slot to expiry in Unix milliseconds.
func (s *StoreSessions) index(ctx context.Context) (map[string]int64, error) {
	payload, err := s.store.Load(ctx, domain.KeySessionIndex)
	if err != nil {
		return nil, fmt.Errorf("load session index: %w", err)
	}
	index := map[string]int64{}
	if len(payload) == 0 {
		return index, nil
	}
	if err := json.Unmarshal(payload, &index); err != nil || index == nil {
		s.log.Warn("discarding malformed session index", zap.Error(err))
		return map[string]int64{}, nil
	}
	return index, nil
}

func (s *StoreSessions) saveIndex(ctx context.Context, index map[string]int64) error {
	if len(index) == 0 {
		if err := s.store.Delete(ctx, domain.KeySessionIndex); err != nil {
			return fmt.Errorf("save session index: %w", err)
		}
		return nil
	}
	payload, err := json.Marshal(index)
	if err != nil {
		return err
	}
	if err := s.store.Save(ctx, domain.KeySessionIndex, payload); err != nil {
		return fmt.Errorf("save session index: %w", err)
	}
	return nil
}
