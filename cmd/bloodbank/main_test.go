package main

import (
	"context"
	"path/filepath"
	"testing"

	"bloodbank/internal/app"
	"bloodbank/internal/config"
	"bloodbank/internal/domain"

	"go.uber.org/zap"
)

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	for _, kind := range []string{config.StoreMemory, config.StoreSQLite} {
		t.Run(kind, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Store.Kind = kind
			cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "bb.db")

			store, closeStore, err := openStore(ctx, cfg)
			if err != nil {
				t.Fatalf("openStore: %v", err)
			}
			defer func() { _ = closeStore() }()

			svc := newServices(store, app.PlainCredentials{}, zap.NewNop())
			seeded, err := svc.Admins.SeedDefault(ctx)
			if err != nil || !seeded {
				t.Fatalf("SeedDefault = %v, %v", seeded, err)
			}
			if _, err := svc.Auth.Login(ctx, "t", domain.PortalAdmin, domain.SeedAdminEmail, domain.SeedAdminPassword); err != nil {
				t.Fatalf("admin login: %v", err)
			}
		})
	}

	cfg := &config.Config{}
	cfg.Store.Kind = "tape"
	if _, _, err := openStore(ctx, cfg); err == nil {
		t.Fatal("expected error for unknown store")
	}
}
