package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Bahjat/page-composer/backend/internal/api"
	"github.com/Bahjat/page-composer/backend/internal/generator"
	"github.com/Bahjat/page-composer/backend/internal/linkaudit"
	"github.com/Bahjat/page-composer/backend/internal/platform/config"
	"github.com/Bahjat/page-composer/backend/internal/platform/logger"
	"github.com/Bahjat/page-composer/backend/internal/platform/middleware"
	"github.com/Bahjat/page-composer/backend/internal/remote"
	"github.com/Bahjat/page-composer/backend/internal/render"
	"github.com/Bahjat/page-composer/backend/internal/synth"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	renderer, err := render.NewSet()
	if err != nil {
		return err
	}

	opts := []generator.Option{generator.WithMaxCandidates(cfg.MaxCandidates)}
	if cfg.RemoteEnabled() {
		opts = append(opts, generator.WithRemote(remote.NewClient(cfg.RemoteSynthURL, cfg.RemoteSynthTimeout)))
	}
	if cfg.LinkAudit {
		opts = append(opts, generator.WithLinkAudit(linkaudit.New(cfg.LinkCheckConcurrency)))
	}
	svc := generator.NewService(synth.Default(), log, opts...)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging(log))
	r.Use(chimw.Recoverer)
	api.NewTransport(svc, renderer, log).RegisterRoutes(r)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "remote_synthesis", cfg.RemoteEnabled(), "link_audit", cfg.LinkAudit)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
