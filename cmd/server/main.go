package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/apexautolab/leadapi/internal/auth"
	"github.com/apexautolab/leadapi/internal/config"
	"github.com/apexautolab/leadapi/internal/domain/lead"
	"github.com/apexautolab/leadapi/internal/notify"
	"github.com/apexautolab/leadapi/internal/postgres"
	"github.com/apexautolab/leadapi/internal/sqlite"
	"github.com/apexautolab/leadapi/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	repo, closeStore, err := openStore(cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	notifier := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if cfg.Telegram.BotToken == "" || cfg.Telegram.ChatID == "" {
		logger.Info("telegram notifications disabled")
	}

	issuer, verifier := buildAuth(cfg, logger)
	sessions := auth.NewService(cfg.Admin.User, cfg.Admin.Pass, issuer)
	leads := lead.NewService(repo, notifier, logger)

	router := transport.NewRouter(leads, sessions, verifier, cfg.CORS.Origins, logger)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

// openStore opens the persistence variant the config selects: a local sqlite
// file or a Postgres cluster. Only one variant runs per deployment.
func openStore(cfg config.Config, logger *slog.Logger) (lead.Repository, func(), error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(cfg.DB.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			return nil, nil, err
		}
		logger.Info("store ready", "driver", "postgres")
		return postgres.NewLeadRepository(db), func() { _ = db.Close() }, nil

	default:
		if err := ensureDBDir(cfg.DB.SQLitePath); err != nil {
			return nil, nil, err
		}
		db, err := sqlite.New(cfg.DB.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		if err := db.RunMigrations(); err != nil {
			return nil, nil, err
		}
		logger.Info("store ready", "driver", "sqlite", "path", cfg.DB.SQLitePath)
		return sqlite.NewLeadRepository(db), func() { _ = db.Close() }, nil
	}
}

// buildAuth picks the admin session strategy: stateless signed tokens when a
// signing secret is configured, otherwise a process-local token set whose
// sessions die with the process.
func buildAuth(cfg config.Config, logger *slog.Logger) (auth.Issuer, auth.Verifier) {
	if cfg.Auth.JWTSecret != "" {
		logger.Info("admin auth", "strategy", "signed-token")
		ts := auth.NewTokenService(cfg.Auth.JWTSecret)
		return ts, ts
	}
	logger.Info("admin auth", "strategy", "memory")
	ms := auth.NewMemoryStore()
	return ms, ms
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
