package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"github.com/dkrasnov/kopilka/internal/account"
	"github.com/dkrasnov/kopilka/internal/config"
	"github.com/dkrasnov/kopilka/internal/database"
	"github.com/dkrasnov/kopilka/internal/goal"
	kopilkaHttp "github.com/dkrasnov/kopilka/internal/http"
	accountHandler "github.com/dkrasnov/kopilka/internal/http/account"
	"github.com/dkrasnov/kopilka/internal/http/auth"
	goalHandler "github.com/dkrasnov/kopilka/internal/http/goal"
	importHandler "github.com/dkrasnov/kopilka/internal/http/importcsv"
	txHandler "github.com/dkrasnov/kopilka/internal/http/transaction"
	"github.com/dkrasnov/kopilka/internal/importer"
	"github.com/dkrasnov/kopilka/internal/store/memory"
	"github.com/dkrasnov/kopilka/internal/store/postgres"
	"github.com/dkrasnov/kopilka/internal/transaction"
)

// repositories is the full store contract: one store instance backs all
// three services.
type repositories interface {
	account.Repository
	transaction.Repository
	goal.Repository
}

func newStore(cfg *config.Config) (repositories, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return memory.New(), nil
	case "postgres":
		db, err := database.New(cfg.ConnectionString(), database.Pool{
			MaxOpenConns:    cfg.DB.MaxOpenConns,
			MaxIdleConns:    cfg.DB.MaxIdleConns,
			ConnMaxLifetime: cfg.DB.ConnMaxLifetime,
		})
		if err != nil {
			return nil, err
		}

		return postgres.New(db), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	store, err := newStore(cfg)
	if err != nil {
		slog.Error("failed to set up storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}

	var (
		accountService     = account.NewService(store)
		transactionService = transaction.NewService(store)
		goalService        = goal.NewService(store)
		importService      = importer.NewService()
	)

	issuer := auth.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL)

	var (
		accountH     = accountHandler.NewHandler(accountService, issuer)
		transactionH = txHandler.NewHandler(transactionService)
		goalH        = goalHandler.NewHandler(goalService)
		importH      = importHandler.NewHandler(importService, transactionService)
	)

	router := kopilkaHttp.New(issuer, accountH, transactionH, goalH, importH)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	slog.Info("starting server", "port", port, "storage", cfg.Storage.Backend)

	if err := http.ListenAndServe(port, router); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
