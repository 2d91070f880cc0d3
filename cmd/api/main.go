package main

import (
	"fmt"
	"os"

	_ "adas_workorders/docs"
	"adas_workorders/internal/adapter/http/routes"
	"adas_workorders/internal/config"
	"adas_workorders/internal/infrastructure/logging"

	"go.uber.org/zap"

	_ "github.com/joho/godotenv/autoload"
)

// @title           ADAS Work Order Service API
// @version         1.0
// @description     Calibration work-order reconciliation and workflow engine.

// @contact.name   API Support

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := routes.Run(cfg, logger); err != nil {
		logger.Fatal("[main] failed to start the application", zap.Error(err))
	}
}
