package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/stayvault/stayvault/internal/config"
	httphandler "github.com/stayvault/stayvault/internal/handler/http"
	"github.com/stayvault/stayvault/internal/logger"
	"github.com/stayvault/stayvault/internal/registry"
	"github.com/stayvault/stayvault/internal/server"
	"github.com/stayvault/stayvault/internal/service"
	"github.com/stayvault/stayvault/internal/store"
	"github.com/stayvault/stayvault/internal/token"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("stayvault-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, dialect, err := connectDatabase(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting database")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing database")
		}
	}()

	if err = db.Migrate(dialect); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	repositories := store.NewRepositories(db, log)
	ledger := token.NewLedger(log)

	reg := registry.New(registry.Config{
		Token:           ledger,
		PlatformAccount: cfg.App.PlatformAccount,
		Controller:      cfg.App.Controller,
		MirrorHook:      service.NewMirrorJournal(repositories.RegistryRepository, log),
		Logger:          log,
	})

	services := service.NewServices(service.Deps{
		Ledger:       ledger,
		Registry:     reg,
		Repositories: repositories,
	}, *cfg, log)

	handler := httphandler.NewHandler(services, log)

	srv, err := server.NewServer(handler, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

// connectDatabase opens the database selected by the DSN scheme. PostgreSQL
// DSNs pick the pgx driver, everything else falls back to a local SQLite file.
func connectDatabase(ctx context.Context, cfg config.DB, log *logger.Logger) (*store.DB, string, error) {
	if strings.HasPrefix(cfg.DSN, "postgres://") || strings.HasPrefix(cfg.DSN, "postgresql://") {
		db, err := store.NewConnectPostgres(ctx, cfg, log)
		return db, "postgres", err
	}

	if cfg.DSN == "" {
		cfg.DSN = "stayvault.db"
	}
	db, err := store.NewConnectSQLite(ctx, cfg, log)
	return db, "sqlite3", err
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
