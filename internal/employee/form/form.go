package form

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/geraldDev01/onboarding-dashboard/internal/draft"
	"github.com/geraldDev01/onboarding-dashboard/internal/employee"
	formerrors "github.com/geraldDev01/onboarding-dashboard/internal/employee/form/errors"
	"github.com/geraldDev01/onboarding-dashboard/internal/metrics"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/apperror"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/clock"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/contextutil"
	"github.com/geraldDev01/onboarding-dashboard/internal/shared/validation"

	"go.uber.org/zap"
)

type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateValid      State = "valid"
	StateInvalid    State = "invalid"
	StateSubmitting State = "submitting"
)

const (
	triggerDebounce = "debounce"
	triggerInterval = "interval"
	triggerClear    = "clear"
)

type Options struct {
	DraftDebounce time.Duration
	DraftInterval time.Duration
	Clock         clock.Clock
}

// Snapshot is what a client needs to render the form.
type Snapshot struct {
	State       State                  `json:"state"`
	Values      map[string]string      `json:"values"`
	Errors      validation.FieldErrors `json:"errors,omitempty"`
	CanSubmit   bool                   `json:"canSubmit"`
	SubmitError string                 `json:"submitError,omitempty"`
	Today       string                 `json:"today"`
}

// Form is the server side state of one employee creation form, owned by a
// single browser profile.
//
// Lock order is writeMu then mu. Draft writes and the clear after a
// successful submit both hold writeMu; generation is bumped on every clear so
// that a save scheduled earlier becomes a no-op.
type Form struct {
	profileID string
	fields    []Field
	schema    *employee.Schema
	service   employee.Service
	drafts    draft.Store
	opts      Options
	logger    *zap.Logger

	writeMu sync.Mutex

	mu            sync.Mutex
	values        map[string]string
	touched       map[string]bool
	errors        validation.FieldErrors
	showAll       bool
	state         State
	submitError   string
	generation    uint64
	debounce      *time.Timer
	notifications []Notification
	mounted       bool
	closed        bool
	stop          chan struct{}
}

func New(
	profileID string,
	fields []Field,
	schema *employee.Schema,
	service employee.Service,
	drafts draft.Store,
	opts Options,
	logger ...*zap.Logger,
) *Form {
	l := zap.L().Named("employee.form")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.form")
	}
	if opts.Clock == nil {
		opts.Clock = clock.Real()
	}

	f := &Form{
		profileID: profileID,
		fields:    fields,
		schema:    schema,
		service:   service,
		drafts:    drafts,
		opts:      opts,
		logger:    l.With(zap.String("profile_id", profileID)),
		stop:      make(chan struct{}),
	}
	f.resetLocked()
	return f
}

// Mount restores the saved draft, without validating it, and starts the
// periodic draft save. Only the first call has an effect.
func (f *Form) Mount(ctx context.Context) {
	f.mu.Lock()
	if f.mounted || f.closed {
		f.mu.Unlock()
		return
	}
	f.mounted = true
	f.mu.Unlock()

	if d, ok := f.drafts.Load(contextutil.WithProfileID(ctx, f.profileID)); ok {
		f.mu.Lock()
		f.restoreLocked(d)
		f.mu.Unlock()
	}

	if f.opts.DraftInterval > 0 {
		go f.periodicSave(f.opts.DraftInterval)
	}
}

// Set changes one field and revalidates the whole form.
func (f *Form) Set(name, raw string) (Snapshot, error) {
	field, ok := fieldByName(f.fields, name)
	if !ok {
		return Snapshot{}, formerrors.ErrUnknownField
	}
	value, err := field.parse(raw)
	if err != nil {
		return Snapshot{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return Snapshot{}, formerrors.ErrFormClosed
	}
	if f.state == StateSubmitting {
		return f.snapshotLocked(), formerrors.ErrAlreadySubmitting
	}

	f.values[name] = value
	f.touched[name] = true
	f.validateLocked()
	f.scheduleSaveLocked()

	return f.snapshotLocked(), nil
}

// Submit creates the employee. It is only allowed from the valid state and
// never while another submit of this form is running. On failure the values
// stay as they are.
func (f *Form) Submit(ctx context.Context) (Snapshot, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Snapshot{}, formerrors.ErrFormClosed
	}
	if f.state == StateSubmitting {
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, formerrors.ErrAlreadySubmitting
	}

	f.validateLocked()
	if f.state != StateValid {
		f.showAll = true
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, formerrors.ErrFormInvalid.WithDetails(snap.Errors)
	}

	f.state = StateSubmitting
	f.submitError = ""
	req := f.requestLocked()
	f.mu.Unlock()

	resp, err := f.service.Create(ctx, req)
	if err != nil {
		return f.submitFailed(err), err
	}

	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	f.mu.Lock()
	f.generation++
	f.resetLocked()
	f.notifyLocked(NotifySuccess, fmt.Sprintf("Employee %s created successfully!", resp.Name), SuccessNotificationTTL)
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.drafts.Clear(f.backgroundCtx())
	metrics.DraftWrites.WithLabelValues(triggerClear).Inc()

	f.logger.Info("employee form submitted", zap.String("employee_id", resp.ID))
	return snap, nil
}

func (f *Form) submitFailed(err error) Snapshot {
	httpErr := apperror.ToHTTP(err)

	f.mu.Lock()
	defer f.mu.Unlock()

	f.submitError = httpErr.Message
	f.notifyLocked(NotifyError, httpErr.Message, ErrorNotificationTTL)
	f.validateLocked()

	if fe, ok := httpErr.Details.(validation.FieldErrors); ok && len(fe) > 0 {
		f.errors = f.errors.Merge(fe)
		f.state = StateInvalid
		f.showAll = true
	}

	f.logger.Warn("employee form submit failed", zap.String("code", httpErr.Code), zap.Error(err))
	return f.snapshotLocked()
}

// Reset discards the entered values and the saved draft.
func (f *Form) Reset() (Snapshot, error) {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return Snapshot{}, formerrors.ErrFormClosed
	}
	if f.state == StateSubmitting {
		snap := f.snapshotLocked()
		f.mu.Unlock()
		return snap, formerrors.ErrAlreadySubmitting
	}
	f.generation++
	f.resetLocked()
	snap := f.snapshotLocked()
	f.mu.Unlock()

	f.drafts.Clear(f.backgroundCtx())
	metrics.DraftWrites.WithLabelValues(triggerClear).Inc()
	return snap, nil
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snapshotLocked()
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Drain returns the pending notifications that have not expired yet and
// forgets all of them.
func (f *Form) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.opts.Clock.Now()
	out := make([]Notification, 0, len(f.notifications))
	for _, n := range f.notifications {
		if n.ExpiresAt.After(now) {
			out = append(out, n)
		}
	}
	f.notifications = nil
	return out
}

// Close stops the timers. Pending debounced saves are dropped.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return
	}
	f.closed = true
	if f.debounce != nil {
		f.debounce.Stop()
	}
	close(f.stop)
}

func (f *Form) defaults() map[string]string {
	return map[string]string{
		"name":       "",
		"email":      "",
		"department": employee.DefaultDepartment,
		"country":    employee.DefaultCountry,
		"hireDate":   f.schema.Today(),
		"salary":     strconv.Itoa(employee.DefaultSalary),
	}
}

func (f *Form) resetLocked() {
	if f.debounce != nil {
		f.debounce.Stop()
		f.debounce = nil
	}
	f.values = f.defaults()
	f.touched = make(map[string]bool, len(f.fields))
	f.errors = nil
	f.showAll = false
	f.submitError = ""
	f.state = StateIdle
}

// restoreLocked copies draft values into fields the user has not edited yet.
func (f *Form) restoreLocked(d draft.Draft) {
	set := func(name, v string) {
		if v != "" && !f.touched[name] {
			f.values[name] = v
			f.touched[name] = true
		}
	}
	set("name", d.Name)
	set("email", d.Email)
	set("department", d.Department)
	set("country", d.Country)
	set("hireDate", d.HireDate)
	if d.Salary != nil {
		set("salary", strconv.FormatFloat(*d.Salary, 'f', -1, 64))
	}
}

func (f *Form) validateLocked() {
	f.state = StateValidating
	_, fe := f.schema.Validate(f.requestLocked())
	f.errors = fe
	if fe == nil {
		f.state = StateValid
	} else {
		f.state = StateInvalid
	}
}

func (f *Form) requestLocked() employee.CreateEmployeeRequest {
	req := employee.CreateEmployeeRequest{
		Name:       f.values["name"],
		Email:      f.values["email"],
		Department: f.values["department"],
		HireDate:   f.values["hireDate"],
		Country:    f.values["country"],
	}
	if v, err := strconv.ParseFloat(f.values["salary"], 64); err == nil {
		req.Salary = &v
	}
	return req
}

func (f *Form) draftLocked() draft.Draft {
	d := draft.Draft{
		Name:       f.values["name"],
		Email:      f.values["email"],
		Department: f.values["department"],
		HireDate:   f.values["hireDate"],
		Country:    f.values["country"],
	}
	if v, err := strconv.ParseFloat(f.values["salary"], 64); err == nil {
		d.Salary = &v
	}
	return d
}

// hasUserInputLocked reports whether a field the user touched holds a value.
func (f *Form) hasUserInputLocked() bool {
	for name := range f.touched {
		if f.values[name] != "" {
			return true
		}
	}
	return false
}

func (f *Form) snapshotLocked() Snapshot {
	values := make(map[string]string, len(f.values))
	for k, v := range f.values {
		values[k] = v
	}

	var errs validation.FieldErrors
	for field, msg := range f.errors {
		if f.showAll || f.touched[field] {
			if errs == nil {
				errs = validation.FieldErrors{}
			}
			errs[field] = msg
		}
	}

	return Snapshot{
		State:       f.state,
		Values:      values,
		Errors:      errs,
		CanSubmit:   f.state == StateValid,
		SubmitError: f.submitError,
		Today:       f.schema.Today(),
	}
}

func (f *Form) notifyLocked(kind NotificationKind, msg string, ttl time.Duration) {
	f.notifications = append(f.notifications, Notification{
		Kind:       kind,
		Message:    msg,
		DurationMs: ttl.Milliseconds(),
		ExpiresAt:  f.opts.Clock.Now().Add(ttl),
	})
}

func (f *Form) scheduleSaveLocked() {
	if f.debounce != nil {
		f.debounce.Stop()
	}
	gen := f.generation
	f.debounce = time.AfterFunc(f.opts.DraftDebounce, func() {
		f.saveDraft(triggerDebounce, gen)
	})
}

func (f *Form) periodicSave(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-f.stop:
			return
		case <-ticker.C:
			f.mu.Lock()
			gen, dirty := f.generation, f.hasUserInputLocked()
			f.mu.Unlock()
			if dirty {
				f.saveDraft(triggerInterval, gen)
			}
		}
	}
}

// saveDraft writes the current values unless the form was cleared or closed
// after gen was taken.
func (f *Form) saveDraft(trigger string, gen uint64) {
	f.writeMu.Lock()
	defer f.writeMu.Unlock()

	f.mu.Lock()
	if f.closed || gen != f.generation {
		f.mu.Unlock()
		return
	}
	d := f.draftLocked()
	f.mu.Unlock()

	f.drafts.Save(f.backgroundCtx(), d)
	metrics.DraftWrites.WithLabelValues(trigger).Inc()
}

func (f *Form) backgroundCtx() context.Context {
	ctx := contextutil.WithProfileID(context.Background(), f.profileID)
	return contextutil.WithLogger(ctx, f.logger)
}
