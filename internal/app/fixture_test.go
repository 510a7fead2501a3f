package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"bloodbank/internal/adapter/memory"
	"bloodbank/internal/app"
	"bloodbank/internal/domain"

	"go.uber.org/zap"
)

type mockStore struct {
	loadFn   func(ctx context.Context, name string) ([]byte, error)
	saveFn   func(ctx context.Context, name string, payload []byte) error
	deleteFn func(ctx context.Context, name string) error
}

func (m *mockStore) Load(ctx context.Context, name string) ([]byte, error) {
	if m.loadFn != nil {
		return m.loadFn(ctx, name)
	}
	return nil, nil
}

func (m *mockStore) Save(ctx context.Context, name string, payload []byte) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, name, payload)
	}
	return nil
}

func (m *mockStore) Delete(ctx context.Context, name string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, name)
	}
	return nil
}

var errStoreDown = errors.New("store down")

type fixture struct {
	store     *memory.DB
	c         *app.Collections
	now       time.Time
	donors    *app.DonorService
	hospitals *app.HospitalService
	requests  *app.RequestService
	admins    *app.AdminService
	auth      *app.AuthService
	stats     *app.StatsService
}

var fixedNow = time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	f := &fixture{store: store, now: fixedNow}
	f.c = app.NewCollections(store, zap.NewNop())
	f.c.SetClock(func() time.Time { return f.now })
	f.donors = app.NewDonorService(f.c)
	f.hospitals = app.NewHospitalService(f.c)
	f.requests = app.NewRequestService(f.c)
	f.admins = app.NewAdminService(f.c, nil)
	f.auth = app.NewAuthService(f.c, app.NewStoreSessions(store, zap.NewNop()), nil)
	f.stats = app.NewStatsService(f.c)
	return f
}

func validDonor() domain.DonorFields {
	return domain.DonorFields{
		Name:    "Asha Rao",
		Phone:   "9876543210",
		Email:   "asha@example.com",
		Age:     "29",
		Blood:   "O+",
		Days:    "120",
		Disease: "",
	}
}

func validHospital() domain.HospitalFields {
	return domain.HospitalFields{
		Name:    "City General",
		Phone:   "0123456789",
		Email:   "desk@citygeneral.org",
		License: "LIC-100",
		Address: "1 Main St",
	}
}

func hospitalSession(h domain.Hospital) domain.Session {
	return domain.Session{Portal: domain.PortalHospital, Email: h.Email, License: h.License}
}

func wantReason(t *testing.T, err error, want domain.RejectionReason) {
	t.Helper()
	got, ok := domain.ReasonOf(err)
	if !ok {
		t.Fatalf("expected rejection %s, got %v", want, err)
	}
	if got != want {
		t.Fatalf("expected rejection %s, got %s (%v)", want, got, err)
	}
}
