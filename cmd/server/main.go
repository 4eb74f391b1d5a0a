// server is the calculator API binary: six arithmetic endpoints with a
// browser interface, health checks and optional calculation history.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"calculator-service/internal/api"
	"calculator-service/internal/config"
	"calculator-service/internal/storage"
)

func main() {
	var (
		addr = flag.String("addr", "", "Listen address, overrides CALC_HOST/CALC_PORT")
	)
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	listenAddr := cfg.ListenAddr()
	if *addr != "" {
		listenAddr = *addr
	}

	history, err := openHistory(cfg)
	if err != nil {
		log.Fatalf("Failed to open calculation history: %v", err)
	}

	router := api.NewRouter(cfg, history)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := runHTTPServer(ctx, router.Handler(), listenAddr, cfg); err != nil {
		log.Printf("HTTP server failed: %v", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := router.Stop(shutdownCtx); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
}

// openHistory creates the history store when enabled, nil otherwise.
func openHistory(cfg *config.Config) (*storage.HistoryStore, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}

	if _, err := cfg.GetDataDir(); err != nil {
		return nil, err
	}

	return storage.NewHistoryStore(cfg.History.DatabasePath, cfg.History.MaxEntries)
}

// runHTTPServer serves until the context is cancelled, then shuts down
// gracefully.
func runHTTPServer(ctx context.Context, handler http.Handler, addr string, cfg *config.Config) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Calculator API listening on http://%s", addr)
		log.Printf("Web interface: http://%s/", addr)
		log.Printf("Health check: http://%s/health", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	// Fresh context: the parent is already cancelled.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return httpServer.Shutdown(shutdownCtx)
}
