package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"rentora-backend/internal/config"
	"rentora-backend/internal/infrastructure/queue"
	"rentora-backend/pkg/container"
	"rentora-backend/pkg/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment", nil)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}
	logger.Init(cfg.App.Environment)

	c, err := container.NewContainer(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize container", err)
	}
	defer c.Cleanup()

	handlers := initializeHandlers(c)
	srv := startAsynqServer(cfg, handlers)

	scheduler := queue.NewScheduler(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := scheduler.RegisterJobs(); err != nil {
		logger.Fatal("Failed to register scheduled jobs", err)
	}
	go func() {
		if err := scheduler.Start(); err != nil {
			logger.Fatal("Scheduler stopped", err)
		}
	}()

	waitForShutdown(srv, scheduler)
}

func waitForShutdown(srv *workerServer, scheduler *queue.Scheduler) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Worker shutting down", nil)
	scheduler.Shutdown()
	srv.Shutdown()
	logger.Info("Worker stopped", nil)
}
