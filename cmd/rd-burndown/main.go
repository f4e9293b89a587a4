package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/kiririmode/rd-burndown/internal/cli"
	"github.com/kiririmode/rd-burndown/internal/config"
	"github.com/kiririmode/rd-burndown/internal/db"
	"github.com/kiririmode/rd-burndown/internal/domain"
	"github.com/kiririmode/rd-burndown/internal/logging"
	"github.com/kiririmode/rd-burndown/internal/redmine"
	"github.com/kiririmode/rd-burndown/internal/repository"
	"github.com/kiririmode/rd-burndown/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Getenv("RD_BURNDOWN_CONFIG"))
	if err != nil {
		return err
	}

	log := logging.New(os.Stderr, logging.LogLevel(cfg.Logging.Level))

	// Disable styling when output is piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	database, err := db.OpenDB(cfg.Data.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	projectRepo := repository.NewSQLiteProjectRepo(database)
	ticketRepo := repository.NewSQLiteTicketRepo(database)
	journalRepo := repository.NewSQLiteJournalRepo(database)
	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	scopeRepo := repository.NewSQLiteScopeChangeRepo(database)
	stateRepo := repository.NewSQLiteSyncStateRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	tracker := redmine.NewClient(cfg.Redmine.URL, cfg.Redmine.APIKey, cfg.Redmine.Timeout, log)
	thresholds := domain.ImpactThresholds{
		High:   cfg.Scope.HighRatio,
		Medium: cfg.Scope.MediumRatio,
	}

	app := &cli.App{
		Sync:      service.NewSyncService(tracker, stateRepo, uow, thresholds, log),
		Timelines: service.NewTimelineService(projectRepo, snapshotRepo, scopeRepo, stateRepo),
		Cache:     service.NewCacheService(projectRepo, ticketRepo, journalRepo, snapshotRepo, scopeRepo, stateRepo, uow, log),
		Tracker:   tracker,
		Config:    cfg,
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
