// Command catalogd serves the song catalog file over HTTP and reloads it
// when the file changes on disk.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/davidpaquet/sekai-chart-browser/internal/config"
	"github.com/davidpaquet/sekai-chart-browser/internal/logging"
)

func main() {
	var configPath, addr, file string
	flag.StringVar(&configPath, "config", "", "Config file (default: $SEKAI_CONFIG or ./sekai.yaml)")
	flag.StringVar(&addr, "addr", "", "Listen address (overrides server.addr)")
	flag.StringVar(&file, "file", "", "Catalog file to serve (overrides server.catalog_file)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if file != "" {
		cfg.Server.CatalogFile = file
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: os.Stderr})

	metrics := NewMetrics()
	store := NewStore(cfg.Server.CatalogFile, metrics)
	if err := store.Reload(); err != nil {
		// keep serving; the watcher picks the file up once it is fixed
		logging.Error().Err(err).Str("path", cfg.Server.CatalogFile).Msg("Initial catalog load failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	watcher, err := NewWatcher(store)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to watch catalog file")
	}
	go watcher.Run(ctx)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           NewRouter(cfg.Server, store, metrics),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logging.Info().Str("addr", srv.Addr).Str("file", cfg.Server.CatalogFile).Msg("Catalog server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-ctx.Done()
	logging.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
