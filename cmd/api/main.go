package main

import (
	"context"
	"time"

	"payroll-pro/internal/app"
	"payroll-pro/internal/bootstrap"
	"payroll-pro/internal/config"
	"payroll-pro/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if !cfg.App.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	application, err := app.BuildApp(context.Background(), r, cfg, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         cfg.App.Port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		application.AuditLogger,
		application.Shutdown,
	)
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.IsDevelopment() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
