package job

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"rentora-backend/internal/domains/user"
	"rentora-backend/pkg/logger"
)

// CleanupHandler runs the scheduled purge of expired verification and
// password-reset tokens.
type CleanupHandler struct {
	repo user.Repository
}

func NewCleanupHandler(repo user.Repository) *CleanupHandler {
	return &CleanupHandler{repo: repo}
}

func (h *CleanupHandler) HandleCleanupExpiredTokens(ctx context.Context, _ *asynq.Task) error {
	rows, err := h.repo.DeleteExpiredTokens(ctx, time.Now().UTC())
	if err != nil {
		return err
	}
	logger.Info("cleared expired auth tokens", map[string]interface{}{"rows": rows})
	return nil
}
