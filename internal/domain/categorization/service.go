package categorization

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// CategorySource lists the category records visible to an owner.
type CategorySource interface {
	ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]Category, error)
}

// Service combines the keyword engine with per-owner category resolution.
type Service struct {
	engine *Engine
	source CategorySource
	logger *slog.Logger
}

func NewService(engine *Engine, source CategorySource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{engine: engine, source: source, logger: logger}
}

// Session is a categorization view bound to one owner's category set,
// snapshotted once so a whole import batch resolves against consistent
// data without a query per candidate.
type Session struct {
	engine   *Engine
	resolver *Resolver
}

// SessionFor snapshots the owner's categories. A listing failure degrades
// to name-only categorization instead of failing the import.
func (s *Service) SessionFor(ctx context.Context, ownerID uuid.UUID) *Session {
	categories, err := s.source.ListForOwner(ctx, ownerID)
	if err != nil {
		s.logger.Warn("category lookup unavailable, importing without category links",
			slog.String("owner_id", ownerID.String()), slog.Any("error", err))
		categories = nil
	}
	return &Session{engine: s.engine, resolver: NewResolver(categories)}
}

// Categorize names the category for a description and resolves it to a
// persisted record when one exists. The returned ID is nil on a resolution
// miss; the name is always set.
func (sess *Session) Categorize(description string, isIncome bool) (string, *uuid.UUID) {
	name := sess.engine.Categorize(description, isIncome)
	return name, sess.resolver.Resolve(name)
}
