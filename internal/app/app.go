package app

import (
	"context"
	"errors"

	"github.com/geraldDev01/onboarding-dashboard/internal/config"
	"github.com/geraldDev01/onboarding-dashboard/internal/employee"
	"github.com/geraldDev01/onboarding-dashboard/internal/middleware"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/connection"
	"github.com/geraldDev01/onboarding-dashboard/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Infra holds the optional external connections. A nil field means the
// in-process implementation is used instead.
type Infra struct {
	DB    *gorm.DB
	Redis *redis.Client
	Kafka *kafka.Writer
}

func (i *Infra) Close() error {
	var errs []error
	if i.Kafka != nil {
		errs = append(errs, i.Kafka.Close())
	}
	if i.Redis != nil {
		errs = append(errs, i.Redis.Close())
	}
	if i.DB != nil {
		if sqlDB, err := i.DB.DB(); err == nil {
			errs = append(errs, sqlDB.Close())
		}
	}
	return errors.Join(errs...)
}

// ConnectInfra opens whatever cfg asks for.
func ConnectInfra(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Infra, error) {
	infra := &Infra{}

	// 1. Postgres
	if cfg.StorageDriver == config.StoragePostgres {
		db, err := connection.ConnectGORMWithRetry(ctx, connection.PostgresConfig{
			Host:     cfg.Database.Host,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			Name:     cfg.Database.Name,
			Port:     cfg.Database.Port,
			SSLMode:  cfg.Database.SSLMode,
		}, cfg.Database.MaxRetries)
		if err != nil {
			return nil, err
		}
		infra.DB = db
		if err := db.WithContext(ctx).AutoMigrate(&employee.Employee{}); err != nil {
			return nil, errors.Join(err, infra.Close())
		}
		logger.Info("✅ Database connection established")
	}

	// 2. Redis
	if cfg.RedisAddr != "" {
		rdb, err := connection.ConnectRedisWithRetry(ctx, cfg.RedisAddr, cfg.RedisRetries)
		if err != nil {
			return nil, errors.Join(err, infra.Close())
		}
		infra.Redis = rdb
		logger.Info("✅ Redis connection established")
	}

	// 3. Kafka
	if cfg.KafkaBroker != "" {
		w, err := connection.ConnectKafkaWriterWithRetry(ctx, cfg.KafkaBroker, cfg.KafkaRetries)
		if err != nil {
			return nil, errors.Join(err, infra.Close())
		}
		infra.Kafka = w
		logger.Info("✅ Kafka connection established")
	}

	return infra, nil
}

// BuildApp wires every module into a router. Background work started here
// stops when ctx is done.
func BuildApp(ctx context.Context, cfg *config.Config, infra *Infra, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.ContextLogger(logger),
		middleware.Metrics(),
	)

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	router.SetHTMLTemplate(tmpl)

	m, err := registerModules(router, cfg, infra, logger)
	if err != nil {
		return nil, err
	}
	go m.forms.Run(ctx)

	return router, nil
}
