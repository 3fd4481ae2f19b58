package form

import (
	"context"
	"sync"
	"time"

	"github.com/geraldDev01/onboarding-dashboard/internal/draft"
	"github.com/geraldDev01/onboarding-dashboard/internal/employee"
	"github.com/geraldDev01/onboarding-dashboard/internal/metrics"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/clock"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"

	"go.uber.org/zap"
)

type registryEntry struct {
	form     *Form
	lastUsed time.Time
	// closed once the draft has been restored
	ready chan struct{}
}

// Registry holds one Form per browser profile and drops the ones nobody
// touched for idleTTL.
type Registry struct {
	fields  []Field
	schema  *employee.Schema
	service employee.Service
	drafts  draft.Store
	opts    Options
	idleTTL time.Duration
	logger  *zap.Logger

	mu    sync.Mutex
	forms map[string]*registryEntry
}

func NewRegistry(
	fields []Field,
	schema *employee.Schema,
	service employee.Service,
	drafts draft.Store,
	opts Options,
	idleTTL time.Duration,
	logger ...*zap.Logger,
) *Registry {
	l := zap.L()
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}
	return &Registry{
		fields:  fields,
		schema:  schema,
		service: service,
		drafts:  drafts,
		opts:    opts,
		idleTTL: idleTTL,
		logger:  l,
		forms:   make(map[string]*registryEntry),
	}
}

func (r *Registry) Fields() []Field {
	return r.fields
}

// Get returns the form of the profile in ctx, mounting a new one on first
// use. Concurrent callers for the same profile wait until the draft is
// restored, or until their ctx is done.
func (r *Registry) Get(ctx context.Context) *Form {
	profileID := contextutil.GetProfileID(ctx)

	r.mu.Lock()
	entry, ok := r.forms[profileID]
	if ok {
		entry.lastUsed = r.opts.Clock.Now()
		r.mu.Unlock()

		select {
		case <-entry.ready:
		case <-ctx.Done():
		}
		return entry.form
	}

	f := New(profileID, r.fields, r.schema, r.service, r.drafts, r.opts, r.logger)
	entry = &registryEntry{form: f, lastUsed: r.opts.Clock.Now(), ready: make(chan struct{})}
	r.forms[profileID] = entry
	r.mu.Unlock()

	metrics.ActiveForms.Inc()
	f.Mount(ctx)
	close(entry.ready)
	return f
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.forms)
}

// Sweep closes and forgets forms idle for longer than idleTTL. Forms in the
// middle of a submit are kept.
func (r *Registry) Sweep() int {
	cutoff := r.opts.Clock.Now().Add(-r.idleTTL)

	r.mu.Lock()
	var evicted []*Form
	for id, entry := range r.forms {
		if entry.lastUsed.Before(cutoff) && entry.form.State() != StateSubmitting {
			evicted = append(evicted, entry.form)
			delete(r.forms, id)
		}
	}
	r.mu.Unlock()

	for _, f := range evicted {
		f.Close()
		metrics.ActiveForms.Dec()
	}
	if len(evicted) > 0 {
		r.logger.Debug("evicted idle employee forms", zap.Int("count", len(evicted)))
	}
	return len(evicted)
}

// Run sweeps until ctx is done, then closes every form.
func (r *Registry) Run(ctx context.Context) {
	interval := r.idleTTL / 2
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.Close()
			return
		case <-ticker.C:
			r.Sweep()
		}
	}
}

func (r *Registry) Close() {
	r.mu.Lock()
	forms := r.forms
	r.forms = make(map[string]*registryEntry)
	r.mu.Unlock()

	for _, entry := range forms {
		entry.form.Close()
		metrics.ActiveForms.Dec()
	}
}
