package app

import (
	"net/http"
	"strings"

	"github.com/geraldDev01/onboarding-dashboard/internal/auth"
	"github.com/geraldDev01/onboarding-dashboard/internal/config"
	"github.com/geraldDev01/onboarding-dashboard/internal/draft"
	"github.com/geraldDev01/onboarding-dashboard/internal/employee"
	"github.com/geraldDev01/onboarding-dashboard/internal/employee/form"
	"github.com/geraldDev01/onboarding-dashboard/internal/metrics"
	"github.com/geraldDev01/onboarding-dashboard/internal/middleware"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/audit"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/clock"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/response"
	"github.com/geraldDev01/onboarding-dashboard/internal/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// publicPaths are reachable without a session.
var publicPaths = []string{"/", "/login", "/healthz", "/metrics", "/static/*"}

type modules struct {
	forms *form.Registry
}

func registerModules(router *gin.Engine, cfg *config.Config, infra *Infra, logger *zap.Logger) (*modules, error) {
	clk := clock.Real()
	secure := cfg.IsProduction()
	auditLogger := audit.NewStdoutLogger(logger)

	// --- Storage ---
	var employeeRepo employee.Repository = employee.NewMemoryRepository()
	if infra.DB != nil {
		employeeRepo = employee.NewGormRepository(infra.DB)
	}

	var revocations auth.RevocationStore = auth.NewMemoryRevocationStore(clk)
	var draftKV draft.KV = draft.NewMemoryKV()
	if infra.Redis != nil {
		revocations = auth.NewRedisRevocationStore(infra.Redis, clk)
		draftKV = draft.NewRedisKV(infra.Redis)
	}

	publisher := employee.NewNoopEventPublisher()
	if infra.Kafka != nil {
		publisher = employee.NewKafkaEventPublisher(infra.Kafka, cfg.KafkaEmployeeTopic)
	}

	// --- Services ---
	operator, err := auth.NewStaticOperator(
		cfg.Operator.Email,
		cfg.Operator.Name,
		cfg.Operator.Password,
		cfg.Operator.PasswordHash,
	)
	if err != nil {
		return nil, err
	}
	authService := auth.NewService(operator, revocations, cfg.JWTSecret, cfg.SessionTTL, clk, logger)
	loginSchema := auth.NewLoginSchema(cfg.OrgEmailDomain)

	employeeSchema := employee.NewSchema(cfg.OrgEmailDomain, clk)
	employeeService := employee.NewService(employeeRepo, employeeSchema, publisher, auditLogger, clk, employee.Options{
		CreateDelay: cfg.EmployeeCreateDelay,
		ListDelay:   cfg.EmployeeListDelay,
	}, logger)
	employeeTable := employee.NewTable(cfg.TablePageSize)

	draftStore := draft.NewStore(draftKV, cfg.DraftTTL, logger)
	forms := form.NewRegistry(form.Fields(cfg.OrgEmailDomain), employeeSchema, employeeService, draftStore, form.Options{
		DraftDebounce: cfg.Form.DraftDebounce,
		DraftInterval: cfg.Form.DraftInterval,
		Clock:         clk,
	}, cfg.Form.IdleTTL, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService, loginSchema, auditLogger, secure, logger)
	employeeHandler := employee.NewHandler(employeeService, employeeSchema, employeeTable, logger)
	draftHandler := draft.NewHandler(draftStore, logger)
	formHandler := form.NewHandler(forms, logger)
	webHandler := web.NewHandler(web.Deps{
		Auth:         authService,
		LoginSchema:  loginSchema,
		Employees:    employeeService,
		Table:        employeeTable,
		Forms:        forms,
		Audit:        auditLogger,
		OrgDomain:    cfg.OrgEmailDomain,
		SecureCookie: secure,
	}, logger)

	var createGuards []gin.HandlerFunc
	if infra.Redis != nil {
		createGuards = append(createGuards, middleware.Idempotency(infra.Redis, cfg.IdempotencyTTL))
	}
	loginLimit := middleware.RateLimitByIP(rate.Limit(cfg.LoginRateLimit), cfg.LoginRateBurst)

	// --- Routes Registration ---
	router.GET("/healthz", health(infra))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, rate.Limit(cfg.LoginRateLimit), cfg.LoginRateBurst)

		employees := api.Group("/employees",
			middleware.RequireSession(authService),
			middleware.BrowserProfile(secure),
		)
		employee.RegisterRoutes(employees, employeeHandler, createGuards...)
		draft.RegisterRoutes(employees, draftHandler)
		form.RegisterRoutes(employees, formHandler, createGuards...)
	}

	pages := router.Group("",
		middleware.RouteGate(authService, publicPaths...),
		middleware.BrowserProfile(secure),
	)
	web.RegisterRoutes(pages, webHandler, loginLimit)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			response.Fail(c, apperror.ErrNotFound)
			return
		}
		webHandler.NotFound(c)
	})

	return &modules{forms: forms}, nil
}

func health(infra *Infra) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		checks := gin.H{}
		healthy := true

		if infra.Redis != nil {
			if err := infra.Redis.Ping(ctx).Err(); err != nil {
				checks["redis"] = err.Error()
				healthy = false
			} else {
				checks["redis"] = "ok"
			}
		}
		if infra.DB != nil {
			sqlDB, err := infra.DB.DB()
			if err == nil {
				err = sqlDB.PingContext(ctx)
			}
			if err != nil {
				checks["postgres"] = err.Error()
				healthy = false
			} else {
				checks["postgres"] = "ok"
			}
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, apperror.CodeServiceUnavailable, "Dependency check failed", checks)
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "checks": checks}, nil)
	}
}
