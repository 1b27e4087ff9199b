package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adamivangrgic/subsonic-deezer-proxy/api"
	"github.com/adamivangrgic/subsonic-deezer-proxy/api/handler"
	"github.com/adamivangrgic/subsonic-deezer-proxy/backend"
	"github.com/adamivangrgic/subsonic-deezer-proxy/cache"
	"github.com/adamivangrgic/subsonic-deezer-proxy/config"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	store := cache.New(cfg.CacheTTL)
	defer store.Stop()

	navidrome := backend.NewNavidrome(cfg.NavidromeURL, cfg.MetadataTimeout, cfg.StreamTimeout)
	deezer := backend.NewDeezer(cfg.DeezerAPIURL, cfg.MetadataTimeout, cfg.StreamTimeout)
	deemix := backend.NewDeemix(cfg.DeemixURL, cfg.DeezerARL, cfg.MetadataTimeout)

	h := handler.New(cfg, navidrome, deezer, deemix, store)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           api.NewRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1 MiB
	}

	// Start server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("subsonic-deezer proxy listening",
			"addr", cfg.ListenAddr,
			"navidrome", cfg.NavidromeURL,
			"deemix_enabled", cfg.DeemixURL != "",
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt or SIGTERM (e.g. from container orchestration).
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}
	slog.Info("server stopped")
}
