package activity

import (
	"context"

	"github.com/google/uuid"
)

// ListFilters narrows the activity feed. Zero values mean "no filter".
type ListFilters struct {
	UserID     *uuid.UUID
	Action     string
	EntityType string
}

type Repository interface {
	Create(ctx context.Context, a *Activity) error
	List(ctx context.Context, filters ListFilters, page, limit int) ([]Activity, int64, error)
	ListRecent(ctx context.Context, userID *uuid.UUID, limit int) ([]Activity, error)
}

// Recorder is the write-only view domain services depend on. Recording
// is best-effort; callers log failures and never fail the triggering
// operation because of them.
type Recorder interface {
	Record(ctx context.Context, userID uuid.UUID, action, message string, entityID *uuid.UUID, entityType *string)
}
