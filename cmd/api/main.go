package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"rentora-backend/pkg/logger"
)

func main() {
	// .env is for local development; production deployments set real
	// environment variables.
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment", nil)
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	logger.Init(env)

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	Serve()
}
