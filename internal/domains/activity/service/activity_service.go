package service

import (
	"context"

	"github.com/google/uuid"

	"rentora-backend/internal/domains/activity"
	"rentora-backend/pkg/logger"
)

type ActivityService struct {
	repo activity.Repository
}

func NewActivityService(repo activity.Repository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Record appends an entry to the activity log. Failures are logged and
// swallowed so the calling mutation never fails because of the log.
func (s *ActivityService) Record(ctx context.Context, userID uuid.UUID, action, message string, entityID *uuid.UUID, entityType *string) {
	a := &activity.Activity{
		UserID:     userID,
		Action:     action,
		Message:    message,
		EntityID:   entityID,
		EntityType: entityType,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		logger.Error("failed to record activity", err)
	}
}

func (s *ActivityService) List(ctx context.Context, filters activity.ListFilters, page, limit int) ([]activity.Activity, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.repo.List(ctx, filters, page, limit)
}

func (s *ActivityService) ListRecent(ctx context.Context, userID *uuid.UUID, limit int) ([]activity.Activity, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.repo.ListRecent(ctx, userID, limit)
}
