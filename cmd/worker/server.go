package main

import (
	"context"

	"github.com/hibiken/asynq"

	"rentora-backend/internal/config"
	"rentora-backend/internal/shared"
	"rentora-backend/pkg/logger"
)

type workerServer struct {
	*asynq.Server
}

// startAsynqServer configures queue priorities and runs the consumer in
// the background.
func startAsynqServer(cfg *config.Config, handlers *handlerRegistry) *workerServer {
	mux := asynq.NewServeMux()
	handlers.register(mux)

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Host,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				shared.QueueHigh:    6,
				shared.QueueDefault: 3,
				shared.QueueLow:     1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(_ context.Context, task *asynq.Task, err error) {
				logger.Error("Task failed: "+task.Type(), err)
			}),
		},
	)

	go func() {
		logger.Info("Worker starting", map[string]interface{}{
			"redis": cfg.Redis.Host,
		})
		if err := srv.Run(mux); err != nil {
			logger.Fatal("Worker failed", err)
		}
	}()

	return &workerServer{Server: srv}
}

func (s *workerServer) Shutdown() {
	s.Server.Shutdown()
}
