package employee

import (
	"context"
	"errors"
	"time"

	employeeerrors "github.com/geraldDev01/onboarding-dashboard/internal/employee/errors"
	"github.com/geraldDev01/onboarding-dashboard/internal/events"
	"github.com/geraldDev01/onboarding-dashboard/internal/metrics"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/audit"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/clock"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const listFlightKey = "employees:list"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
}

// Options tune the simulated backend latency.
type Options struct {
	CreateDelay time.Duration
	ListDelay   time.Duration
}

type service struct {
	repo      Repository
	schema    *Schema
	publisher EventPublisher
	audit     audit.Logger
	clock     clock.Clock
	opts      Options
	sf        *singleflight.Group
	logger    *zap.Logger
}

func NewService(
	repo Repository,
	schema *Schema,
	publisher EventPublisher,
	auditLogger audit.Logger,
	clk clock.Clock,
	opts Options,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	if publisher == nil {
		publisher = NewNoopEventPublisher()
	}
	if auditLogger == nil {
		auditLogger = audit.Nop{}
	}
	return &service{
		repo:      repo,
		schema:    schema,
		publisher: publisher,
		audit:     auditLogger,
		clock:     clk,
		opts:      opts,
		sf:        &singleflight.Group{},
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create employee requested", zap.String("email", req.Email))

	// 1. Validasi
	payload, fe := s.schema.Validate(req)
	if fe != nil {
		metrics.EmployeeCreates.WithLabelValues(metrics.ResultInvalid).Inc()
		log.Info("create employee rejected", zap.Strings("fields", fe.Fields()))
		return EmployeeResponse{}, employeeerrors.ValidationFailed(fe, FieldOrder...)
	}

	// 2. Simulated latency; the client may still walk away here
	if err := wait(ctx, s.opts.CreateDelay); err != nil {
		metrics.EmployeeCreates.WithLabelValues(metrics.ResultFailure).Inc()
		return EmployeeResponse{}, apperror.Wrap(err, apperror.ErrRequestCancelled.Code,
			apperror.ErrRequestCancelled.Message, apperror.ErrRequestCancelled.HTTPStatus)
	}

	// 3. Past this point the write goes through even if the client disconnects
	writeCtx := context.WithoutCancel(ctx)
	hireDate, _ := ParseDate(payload.HireDate)
	e := &Employee{
		ID:         uuid.New(),
		Name:       payload.Name,
		Email:      payload.Email,
		Department: payload.Department,
		Country:    payload.Country,
		HireDate:   hireDate,
		Salary:     payload.Salary,
		CreatedAt:  s.clock.Now(),
	}
	if err := s.repo.Create(writeCtx, e); err != nil {
		metrics.EmployeeCreates.WithLabelValues(metrics.ResultFailure).Inc()
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return EmployeeResponse{}, appErr
		}
		log.Error("create employee failed", zap.Error(err))
		return EmployeeResponse{}, apperror.Wrap(err, employeeerrors.ErrCreateFailed.Code,
			employeeerrors.ErrCreateFailed.Message, employeeerrors.ErrCreateFailed.HTTPStatus)
	}

	// 4. Event + audit, best effort
	event := events.EmployeeCreatedEvent{
		EventType:  events.EmployeeCreatedType,
		EmployeeID: e.ID.String(),
		Name:       e.Name,
		Email:      e.Email,
		Department: e.Department,
		Country:    e.Country,
		HireDate:   payload.HireDate,
		CreatedBy:  contextutil.GetUserEmail(ctx),
		OccurredAt: e.CreatedAt.UTC(),
	}
	if err := s.publisher.PublishEmployeeCreated(writeCtx, event); err != nil {
		log.Warn("publish employee created failed", zap.String("employee_id", event.EmployeeID), zap.Error(err))
	}
	s.audit.Log(writeCtx, audit.AuditLog{
		Action:  audit.ActionEmployeeCreated,
		Message: "employee created",
		Meta:    map[string]any{"employee_id": event.EmployeeID, "email": e.Email},
	})

	metrics.EmployeeCreates.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Info("employee created", zap.String("employee_id", event.EmployeeID))
	return toResponse(*e), nil
}

// GetAll returns a snapshot, most recent first. Concurrent callers share one
// backend read.
func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	ch := s.sf.DoChan(listFlightKey, func() (interface{}, error) {
		readCtx := context.WithoutCancel(ctx)
		if err := wait(readCtx, s.opts.ListDelay); err != nil {
			return nil, err
		}
		employees, err := s.repo.FindAll(readCtx)
		if err != nil {
			return nil, err
		}
		out := make([]EmployeeResponse, len(employees))
		for i, e := range employees {
			out[i] = toResponse(e)
		}
		return out, nil
	})

	select {
	case <-ctx.Done():
		return nil, apperror.Wrap(ctx.Err(), apperror.ErrRequestCancelled.Code,
			apperror.ErrRequestCancelled.Message, apperror.ErrRequestCancelled.HTTPStatus)
	case res := <-ch:
		if res.Err != nil {
			log.Error("list employees failed", zap.Error(res.Err))
			return nil, apperror.Wrap(res.Err, employeeerrors.ErrListFailed.Code,
				employeeerrors.ErrListFailed.Message, employeeerrors.ErrListFailed.HTTPStatus)
		}
		shared := res.Val.([]EmployeeResponse)
		return append([]EmployeeResponse(nil), shared...), nil
	}
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		contextutil.GetLogger(ctx, s.logger).Error("get employee failed", zap.String("id", id), zap.Error(err))
		return EmployeeResponse{}, apperror.Wrap(err, employeeerrors.ErrListFailed.Code,
			employeeerrors.ErrListFailed.Message, employeeerrors.ErrListFailed.HTTPStatus)
	}
	return toResponse(*e), nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
