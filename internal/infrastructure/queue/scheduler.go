package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"rentora-backend/internal/shared"
	"rentora-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(redisAddr, redisPassword string, redisDB int) *Scheduler {
	return &Scheduler{
		scheduler: asynq.NewScheduler(
			asynq.RedisClientOpt{
				Addr:     redisAddr,
				Password: redisPassword,
				DB:       redisDB,
			},
			&asynq.SchedulerOpts{
				Location: time.UTC,
				LogLevel: asynq.InfoLevel,
			},
		),
	}
}

// RegisterJobs registers all cron entries.
func (s *Scheduler) RegisterJobs() error {
	return s.registerCleanupExpiredTokensJob()
}

// Expired verification/reset tokens are purged daily at 2 AM UTC.
func (s *Scheduler) registerCleanupExpiredTokensJob() error {
	payload, err := json.Marshal(shared.CleanupExpiredTokensPayload{})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupExpiredTokens, payload)

	_, err = s.scheduler.Register(
		"0 2 * * *",
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register cleanup job", err)
		return err
	}
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
