package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/geraldDev01/onboarding-dashboard/internal/app"
	"github.com/geraldDev01/onboarding-dashboard/internal/bootstrap"
	"github.com/geraldDev01/onboarding-dashboard/internal/config"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/audit"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := app.NewLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	infra, err := app.ConnectInfra(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("connect infrastructure failed", zap.Error(err))
	}
	defer infra.Close()

	// build dependency + routes
	router, err := app.BuildApp(ctx, cfg, infra, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}

	err = bootstrap.StartHTTPServer(ctx, router, bootstrap.ServerConfig{
		Port:            cfg.Port,
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		IdleTimeout:     cfg.Server.IdleTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, audit.NewStdoutLogger(logger))
	if err != nil {
		logger.Error("http server stopped", zap.Error(err))
	}
}
