package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/fintrack-ro/statement-ingest/internal/domain/categorization"
	importservice "github.com/fintrack-ro/statement-ingest/internal/domain/importer/service"
)

// categorizationAdapter adapts categorization.Service to the import
// pipeline's Categorizer interface.
type categorizationAdapter struct {
	svc *categorization.Service
}

func newCategorizationAdapter(svc *categorization.Service) importservice.Categorizer {
	return &categorizationAdapter{svc: svc}
}

// SessionFor implements importservice.Categorizer.
func (a *categorizationAdapter) SessionFor(ctx context.Context, ownerID uuid.UUID) importservice.CategorySession {
	return a.svc.SessionFor(ctx, ownerID)
}
