package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/studystack/studystack-api/internal/domain"
)

// InteractionLogStore defines the interface for the append-only
// interaction telemetry log. Rows feed analytics and baseline
// calibration; scheduling correctness does not depend on them, so a
// failed append is logged and dropped rather than retried.
type InteractionLogStore interface {
	// Append writes one immutable interaction record and fills in its
	// generated ID.
	Append(ctx context.Context, log *domain.InteractionLog) error

	// ListByCard retrieves all records for a card, oldest first.
	ListByCard(ctx context.Context, cardID uuid.UUID) ([]*domain.InteractionLog, error)
}
