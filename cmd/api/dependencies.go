package api

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/fintrack-ro/statement-ingest/internal/domain/categorization"
	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/parser"
	"github.com/fintrack-ro/statement-ingest/internal/domain/importer/pdftext"
	importrepo "github.com/fintrack-ro/statement-ingest/internal/domain/importer/repository"
	importservice "github.com/fintrack-ro/statement-ingest/internal/domain/importer/service"
	"github.com/fintrack-ro/statement-ingest/pkg/config"
	"github.com/fintrack-ro/statement-ingest/pkg/cron"
	"github.com/fintrack-ro/statement-ingest/pkg/db"
	"github.com/fintrack-ro/statement-ingest/pkg/metrics"
)

// Dependencies holds all application dependencies
type Dependencies struct {
	Config *config.Config
	DB     *db.DB
	Logger *slog.Logger

	// Repositories
	ImportRepo         *importrepo.Repository
	CategorizationRepo *categorization.Repository

	// Services
	CategorizationService *categorization.Service
	ImportService         *importservice.Service

	// Infrastructure
	ParserRegistry *parser.Registry
	Extractor      *pdftext.Extractor
	Metrics        *metrics.ImportMetrics
	Scheduler      *cron.Scheduler
}

// InitDependencies initializes all application dependencies
func InitDependencies(cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	if err := deps.initDatabase(); err != nil {
		return nil, fmt.Errorf("failed to init database: %w", err)
	}

	if err := deps.initRepositories(); err != nil {
		return nil, fmt.Errorf("failed to init repositories: %w", err)
	}

	if err := deps.initServices(); err != nil {
		return nil, fmt.Errorf("failed to init services: %w", err)
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// initDatabase initializes the database connection and runs migrations
func (d *Dependencies) initDatabase() error {
	database, err := db.New(db.Config{
		DSN:             d.Config.Database.DSN(),
		MaxConns:        25,
		MinConns:        5,
		MaxConnLifetime: 5 * time.Minute,
		MaxConnIdleTime: 10 * time.Minute,
	}, d.Logger)
	if err != nil {
		return err
	}
	d.DB = database

	if err := d.DB.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	d.Logger.Info("database connected and migrations completed successfully")
	return nil
}

// initRepositories initializes all repository layer dependencies
func (d *Dependencies) initRepositories() error {
	d.ImportRepo = importrepo.NewRepository(d.DB.Pool)
	d.CategorizationRepo = categorization.NewRepository(d.DB.Pool)

	d.Logger.Info("repositories initialized")
	return nil
}

// initServices initializes the service layer and background jobs
func (d *Dependencies) initServices() error {
	if d.Config.Observability.MetricsEnabled {
		d.Metrics = metrics.NewImportMetrics(prometheus.DefaultRegisterer)
	}

	d.ParserRegistry = parser.NewRegistry(parser.Options{
		ScanBound:      d.Config.Import.ScanBound,
		UnsignedPolicy: d.Config.Import.UnsignedPolicy,
		Logger:         d.Logger,
	})
	d.Extractor = pdftext.NewExtractor(d.Logger)

	engine := categorization.NewEngine(nil, nil)
	d.CategorizationService = categorization.NewService(engine, d.CategorizationRepo, d.Logger)

	d.ImportService = importservice.NewService(
		d.ImportRepo,
		d.Extractor,
		newCategorizationAdapter(d.CategorizationService),
		d.ParserRegistry,
		d.Metrics,
		d.Logger,
	)

	d.Scheduler = cron.NewScheduler(d.ImportRepo, d.Config.Import.RetentionDays, d.Logger)

	d.Logger.Info("services initialized")
	return nil
}

// Close releases held resources.
func (d *Dependencies) Close() {
	if d.Scheduler != nil {
		<-d.Scheduler.Stop().Done()
	}
	if d.DB != nil {
		d.DB.Close()
	}
}
