// Package cron provides scheduled background jobs using robfig/cron.
package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// BatchStore is the slice of the import repository the sweep needs.
type BatchStore interface {
	DeleteBatchesOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Scheduler manages background scheduled jobs using robfig/cron.
type Scheduler struct {
	cron          *cron.Cron
	batches       BatchStore
	retentionDays int
	logger        *slog.Logger
}

// NewScheduler creates a new job scheduler.
func NewScheduler(batches BatchStore, retentionDays int, logger *slog.Logger) *Scheduler {
	// Standard 5-field format, no seconds.
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &Scheduler{
		cron:          c,
		batches:       batches,
		retentionDays: retentionDays,
		logger:        logger,
	}
}

// Start begins scheduled jobs.
func (s *Scheduler) Start() error {
	// Import batch retention sweep: runs daily at 2:00 AM.
	_, err := s.cron.AddFunc("0 2 * * *", s.sweepExpiredBatches)
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("cron scheduler started",
		slog.Int("jobs", len(s.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops all scheduled jobs.
func (s *Scheduler) Stop() context.Context {
	s.logger.Info("cron scheduler stopping")
	return s.cron.Stop()
}

// RunNow manually triggers the retention sweep (for testing/admin).
func (s *Scheduler) RunNow() {
	go s.sweepExpiredBatches()
}

// sweepExpiredBatches deletes import batches past the retention window.
func (s *Scheduler) sweepExpiredBatches() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)
	s.logger.Info("starting import batch retention sweep",
		slog.Time("cutoff", cutoff),
	)

	deleted, err := s.batches.DeleteBatchesOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("retention sweep failed", slog.Any("error", err))
		return
	}

	s.logger.Info("retention sweep completed",
		slog.Int64("batches_deleted", deleted),
	)
}
