// Package booking drives one appointment request from the public booking
// form: draft editing, validation, a single asynchronous remote create, and
// the timed reset that follows a successful submission.
package booking

import (
	"context"
	"curoo/pkg/config"
	"curoo/pkg/events"
	"curoo/pkg/logger"
	"curoo/pkg/model"
	"sync"
	"time"

	apperrors "curoo/pkg/errors"
)

type State string

const (
	StateEditing    State = "editing"
	StateSubmitting State = "submitting"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// DefaultResetDelay is how long a successful submission stays on screen.
const DefaultResetDelay = 3 * time.Second

type Field string

const (
	FieldFirstName     Field = "first_name"
	FieldLastName      Field = "last_name"
	FieldEmail         Field = "email"
	FieldPhone         Field = "phone"
	FieldDepartment    Field = "department"
	FieldPreferredDate Field = "preferred_date"
	FieldPreferredTime Field = "preferred_time"
	FieldMessage       Field = "message"
)

// AppointmentCreator is the remote persistence call a submission makes.
type AppointmentCreator interface {
	Create(ctx context.Context, draft model.AppointmentDraft) (model.Appointment, error)
}

// Result is delivered once per accepted Submit.
type Result struct {
	Appointment model.Appointment
	Err         error
}

// Transition is passed to the observer after every state change.
type Transition struct {
	From State
	To   State
}

type Session struct {
	creator    AppointmentCreator
	validator  *FormValidator
	publisher  events.Publisher
	log        *logger.Logger
	now        func() time.Time
	resetDelay time.Duration
	observer   func(Transition)

	mu         sync.Mutex
	pending    []Transition
	flushing   bool
	state      State
	draft      Form
	lastErr    error
	open       bool
	disposed   bool
	timer      *time.Timer
	generation uint64
}

type Option func(*Session)

func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

func WithResetDelay(d time.Duration) Option {
	return func(s *Session) { s.resetDelay = d }
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Session) { s.publisher = p }
}

func WithLogger(log *logger.Logger) Option {
	return func(s *Session) { s.log = log }
}

// FromConfig carries the reset delay and logger of cfg into a session.
func FromConfig(cfg *config.Config) Option {
	return func(s *Session) {
		s.resetDelay = cfg.BookingResetDelay
		if cfg.Log != nil {
			s.log = cfg.Log
		}
	}
}

// WithObserver registers fn to run after each state change. fn sees
// transitions in the order they happened, one call at a time. It is called
// without the session lock held and may call back into the session.
func WithObserver(fn func(Transition)) Option {
	return func(s *Session) { s.observer = fn }
}

func NewSession(creator AppointmentCreator, opts ...Option) *Session {
	s := &Session{
		creator:    creator,
		publisher:  events.Nop{},
		log:        logger.Discard(),
		now:        time.Now,
		resetDelay: DefaultResetDelay,
		state:      StateEditing,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.validator = NewFormValidator(s.log)
	return s
}

func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return ErrDisposed
	}
	s.open = true
	return nil
}

func (s *Session) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Draft() Form {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// LastError is the failure of the most recent submission. It is cleared when
// the next submission starts.
func (s *Session) LastError() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ErrorMessage is LastError in a form fit for display.
func (s *Session) ErrorMessage() string {
	err := s.LastError()
	if err == nil {
		return ""
	}
	return apperrors.AsAppError(err).Message
}

func (s *Session) SetField(field Field, value string) error {
	s.mu.Lock()
	if err := s.editable(); err != nil {
		s.mu.Unlock()
		return err
	}

	switch field {
	case FieldFirstName:
		s.draft.FirstName = value
	case FieldLastName:
		s.draft.LastName = value
	case FieldEmail:
		s.draft.Email = value
	case FieldPhone:
		s.draft.Phone = value
	case FieldDepartment:
		s.draft.Department = value
	case FieldPreferredDate:
		s.draft.PreferredDate = value
	case FieldPreferredTime:
		s.draft.PreferredTime = value
	case FieldMessage:
		s.draft.Message = value
	default:
		s.mu.Unlock()
		return ErrUnknownField
	}

	s.moveTo(StateEditing)
	s.mu.Unlock()

	s.flush()
	return nil
}

func (s *Session) SetDraft(f Form) error {
	s.mu.Lock()
	if err := s.editable(); err != nil {
		s.mu.Unlock()
		return err
	}

	s.draft = f
	s.moveTo(StateEditing)
	s.mu.Unlock()

	s.flush()
	return nil
}

// Submit validates the draft and, if it passes, starts the remote create in
// the background. The returned channel yields exactly one Result. A draft
// that fails validation returns a validation error and no remote call is made.
func (s *Session) Submit(ctx context.Context) (<-chan Result, error) {
	s.mu.Lock()

	if s.disposed {
		s.mu.Unlock()
		return nil, ErrDisposed
	}
	if !s.open {
		s.mu.Unlock()
		return nil, ErrNotEditable
	}
	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		s.log.Debug("Submit ignored, request already in flight")
		return nil, ErrSubmitInFlight
	case StateSucceeded:
		s.mu.Unlock()
		return nil, ErrNotEditable
	}

	form := s.draft
	if err := s.validator.Validate(form, s.now()); err != nil {
		s.mu.Unlock()
		s.log.Info("Booking form rejected", "error", err)
		return nil, apperrors.Validation("Invalid booking request", err)
	}

	s.lastErr = nil
	s.generation++
	gen := s.generation
	s.moveTo(StateSubmitting)
	s.mu.Unlock()

	s.flush()

	done := make(chan Result, 1)
	go s.submit(ctx, gen, form, done)
	return done, nil
}

func (s *Session) submit(ctx context.Context, gen uint64, form Form, done chan<- Result) {
	defer close(done)

	appt, err := s.creator.Create(ctx, form.appointmentDraft())
	if err != nil && !apperrors.HasCode(err, apperrors.CodeRemoteCall) && !apperrors.IsValidation(err) {
		err = apperrors.RemoteCall(err.Error(), 0, err)
	}

	s.mu.Lock()
	if s.disposed || s.generation != gen {
		s.mu.Unlock()
		if err == nil {
			err = ErrDisposed
		}
		done <- Result{Appointment: appt, Err: err}
		return
	}

	if err != nil {
		s.lastErr = err
		s.moveTo(StateFailed)
		s.mu.Unlock()

		s.log.Warn("Booking submission failed", "error", err)
		s.flush()
		done <- Result{Err: err}
		return
	}

	s.moveTo(StateSucceeded)
	s.timer = time.AfterFunc(s.resetDelay, func() { s.autoReset(gen) })
	s.mu.Unlock()

	s.log.Info("Booking submitted", "appointment_id", appt.ID, "department", appt.Department)
	s.flush()
	s.confirm(context.WithoutCancel(ctx), appt)
	done <- Result{Appointment: appt}
}

// confirm emits the simulated confirmation. Nothing is sent to the patient.
func (s *Session) confirm(ctx context.Context, appt model.Appointment) {
	event := events.New(events.AppointmentRequested, appt.ID, map[string]any{
		"email":          appt.Email,
		"department":     appt.Department,
		"preferred_date": appt.PreferredDate,
		"preferred_time": appt.PreferredTime,
	})
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("Failed to publish booking confirmation", "appointment_id", appt.ID, "error", err)
	}
}

func (s *Session) autoReset(gen uint64) {
	s.mu.Lock()
	if s.disposed || s.generation != gen || s.state != StateSucceeded {
		s.mu.Unlock()
		return
	}

	s.timer = nil
	s.draft = Form{}
	s.open = false
	s.moveTo(StateEditing)
	s.mu.Unlock()

	s.log.Debug("Booking form reset")
	s.flush()
}

// Close hides the form. It is refused while a submission is in flight. After
// a success it cancels the pending reset and clears the draft at once;
// otherwise the draft is kept for the next Open.
func (s *Session) Close() error {
	s.mu.Lock()

	if s.disposed {
		s.mu.Unlock()
		return ErrDisposed
	}

	switch s.state {
	case StateSubmitting:
		s.mu.Unlock()
		return ErrCloseWhileSubmitting
	case StateSucceeded:
		s.cancelReset()
		s.draft = Form{}
		s.moveTo(StateEditing)
	case StateFailed:
		s.moveTo(StateEditing)
	}
	s.open = false
	s.mu.Unlock()

	s.flush()
	return nil
}

// Dispose tears the session down. Any pending reset is cancelled, a result
// arriving afterwards is dropped, and every later call returns ErrDisposed.
func (s *Session) Dispose() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.disposed {
		return
	}
	s.cancelReset()
	s.disposed = true
	s.open = false
}

func (s *Session) editable() error {
	if s.disposed {
		return ErrDisposed
	}
	if s.state == StateSubmitting || s.state == StateSucceeded {
		return ErrNotEditable
	}
	return nil
}

// cancelReset must be called with mu held. Bumping the generation makes an
// already fired timer a no-op.
func (s *Session) cancelReset() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

// moveTo must be called with mu held. A real change is queued for flush.
func (s *Session) moveTo(to State) {
	if s.state == to {
		return
	}
	s.pending = append(s.pending, Transition{From: s.state, To: to})
	s.state = to
}

// flush delivers queued transitions and must be called without mu held.
// Only one goroutine delivers at a time. A call made while another is
// delivering, including one from inside the observer, leaves its transitions
// to that goroutine.
func (s *Session) flush() {
	s.mu.Lock()
	if s.flushing {
		s.mu.Unlock()
		return
	}
	s.flushing = true

	for len(s.pending) > 0 {
		t := s.pending[0]
		s.pending = s.pending[1:]
		s.mu.Unlock()

		s.log.Debug("Booking state changed", "from", t.From, "to", t.To)
		if s.observer != nil {
			s.observer(t)
		}
		s.mu.Lock()
	}
	s.flushing = false
	s.mu.Unlock()
}
