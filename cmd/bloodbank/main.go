package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	adapthttp "bloodbank/internal/adapter/http"
	"bloodbank/internal/adapter/kafka"
	"bloodbank/internal/adapter/memory"
	"bloodbank/internal/adapter/postgres"
	"bloodbank/internal/adapter/redis"
	"bloodbank/internal/adapter/sqlite"
	"bloodbank/internal/app"
	"bloodbank/internal/config"
	"bloodbank/internal/domain"
	"bloodbank/internal/logging"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, "bloodbank")
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("bloodbank stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Kind, err)
	}
	defer func() { _ = closeStore() }()
	log.Info("store ready", zap.String("kind", cfg.Store.Kind))

	creds, err := app.CredentialSchemeByName(cfg.CredentialScheme)
	if err != nil {
		return err
	}

	svc := newServices(store, creds, log)
	if len(cfg.Kafka.Brokers) > 0 {
		pub, err := kafka.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, nil)
		if err != nil {
			return err
		}
		defer func() { _ = pub.Close() }()
		svc.Hospitals.WithPublisher(pub)
		log.Info("publishing request events", zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	if _, err := svc.Admins.SeedDefault(ctx); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	oidcCfg, err := adapthttp.NewOIDCConfig(ctx, cfg.OIDC.Issuer, cfg.OIDC.ClientID, cfg.OIDC.ClientSecret, cfg.OIDC.RedirectURL)
	if err != nil {
		return err
	}

	srv := adapthttp.New(svc, oidcCfg, log, cfg.WebDir)
	if cfg.SecureCookies {
		srv = srv.WithSecureCookies()
	}

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go sweepSessions(ctx, svc.Auth, time.Hour, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.Bool("sso", oidcCfg.Enabled))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// sweepSessions removes expired sessions every interval until ctx ends.
func sweepSessions(ctx context.Context, auth *app.AuthService, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := auth.SweepSessions(ctx); err != nil {
				log.Warn("sweep sessions", zap.Error(err))
			}
		}
	}
}

func newServices(store domain.Store, creds domain.CredentialScheme, log *zap.Logger) adapthttp.Services {
	c := app.NewCollections(store, log)
	return adapthttp.Services{
		Donors:    app.NewDonorService(c),
		Hospitals: app.NewHospitalService(c),
		Requests:  app.NewRequestService(c),
		Admins:    app.NewAdminService(c, creds),
		Auth:      app.NewAuthService(c, app.NewStoreSessions(store, log), creds),
		Stats:     app.NewStatsService(c),
	}
}

func openStore(ctx context.Context, cfg *config.Config) (domain.Store, func() error, error) {
	switch cfg.Store.Kind {
	case config.StoreMemory:
		return memory.New(), func() error { return nil }, nil
	case config.StoreSQLite:
		s, err := sqlite.Open(cfg.Store.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StorePostgres:
		s, err := postgres.Open(cfg.Store.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.StoreRedis:
		s, err := redis.Open(ctx, redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", cfg.Store.Kind)
}
