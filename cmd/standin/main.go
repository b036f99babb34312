// Command standin runs the in-memory marketplace backend for local
// development. See package discount24/internal/standin for the HTTP API.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"discount24/internal/standin"
	"discount24/internal/telemetry"
	"discount24/pkg/logging"
)

func main() {
	log, err := logging.Setup("")
	if err != nil {
		slog.Error("logging", "error", err)
		os.Exit(1)
	}

	cfg, err := standin.LoadConfig()
	if err != nil {
		log.Error("config", "error", err)
		os.Exit(1)
	}
	cfg.Logger = log

	shutdownTracing := telemetry.SetupTracing("standin")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	srv, err := standin.New(cfg)
	if err != nil {
		log.Error("start", "error", err)
		os.Exit(1)
	}
	if cfg.Seed {
		log.Info("demo account", "email", standin.DemoEmail, "password", standin.DemoPassword)
	}

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("standin listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("shutdown error", "error", err)
	}
}
