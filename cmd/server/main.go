package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nkhatri/splitkaro/internal/auth"
	"github.com/nkhatri/splitkaro/internal/config"
	"github.com/nkhatri/splitkaro/internal/httpapi"
	"github.com/nkhatri/splitkaro/internal/middleware"
	"github.com/nkhatri/splitkaro/internal/service"
	"github.com/nkhatri/splitkaro/internal/storage"
	"github.com/nkhatri/splitkaro/internal/storage/postgres"
	"github.com/nkhatri/splitkaro/internal/storage/sqlite"
	"github.com/nkhatri/splitkaro/pkg/logging"
)

func main() {
	configPath := flag.String("config", "", "path to config file (optional)")
	flag.Parse()

	logging.Setup()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logging.SetupWithLevel(logging.ParseLevel(cfg.Log.Level))

	store, err := openStore(cfg)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Database.Driver)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL())
	authenticator := auth.NewPasswordAuthenticator(store)

	api := httpapi.New(
		service.NewAuthService(authenticator, jwtManager, store),
		service.NewGroupService(store),
		service.NewExpenseService(store),
		service.NewBalanceService(store),
		service.NewSettlementService(store),
	)

	mux := api.Routes(jwtManager)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Logging(middleware.CORS(middleware.Metrics(mux)))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server starting", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Forced shutdown", "error", err)
	}
	slog.Info("Server stopped")
}

// openStore picks the storage backend from config.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Database.Driver {
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return postgres.New(ctx, cfg.Database.DSN, int32(cfg.Database.PoolMaxConns))
	default:
		return sqlite.New(cfg.Database.Path)
	}
}
