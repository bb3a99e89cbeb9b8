package main

import (
	"context"
	"os/signal"
	"syscall"

	"payroll-pro/internal/app"
	"payroll-pro/internal/config"
	"payroll-pro/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.RunConsumer(ctx, cfg, logger); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
