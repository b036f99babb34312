package app

import (
	"fmt"
	"log/slog"
	"os"

	"discount24/internal/directory"
	"discount24/internal/services/auth"
	"discount24/internal/services/menu"
	"discount24/internal/services/vendor"
	"discount24/internal/session"
	"discount24/internal/store"
	"discount24/internal/telemetry"
	"discount24/internal/transport"
)

// Wire bundles all stores, services, and clients for the CLI.
type Wire struct {
	Tokens    *store.TokenFileStore
	Session   *session.Store
	Transport *transport.Client
	Metrics   *telemetry.Metrics

	Auth      *auth.Service
	Vendors   *vendor.Repository
	Menu      *menu.Repository
	Directory *directory.Engine
}

// NewWire constructs the dependency graph from cfg and restores any saved
// session.
func NewWire(cfg Config) (*Wire, error) {
	if cfg.Home == "" {
		home, err := DefaultHome()
		if err != nil {
			return nil, err
		}
		cfg.Home = home
	}
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, fmt.Errorf("create home: %w", err)
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}

	tokens := store.NewTokenFileStore(cfg.Home, cfg.Passphrase)
	sess := session.New(tokens, log)
	if err := sess.Hydrate(); err != nil {
		return nil, err
	}

	metrics := telemetry.NewMetrics("client")
	client := transport.New(transport.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.Timeout,
		HTTP:    cfg.HTTP,
		Logger:  log,
		Metrics: metrics,
	}, sess)

	menuRepo := menu.New(client, log)
	// The cached menu belongs to the signed-in vendor.
	client.OnAuthExpired(menuRepo.Reset)

	return &Wire{
		Tokens:    tokens,
		Session:   sess,
		Transport: client,
		Metrics:   metrics,
		Auth:      auth.New(client, sess, log),
		Vendors:   vendor.New(client, log),
		Menu:      menuRepo,
		Directory: &directory.Engine{},
	}, nil
}
