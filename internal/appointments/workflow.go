package appointments

import (
	"context"
	"curoo/internal/repository"
	"curoo/pkg/events"
	"curoo/pkg/logger"
	"curoo/pkg/model"
	"fmt"
	"strings"
	"time"

	apperrors "curoo/pkg/errors"
)

// Query selects appointments for the console list. Text is matched
// case-insensitively against first name, last name, email and department.
// Status is model.StatusFilterAll, empty, or one exact status.
type Query struct {
	Text   string
	Status string
}

type Workflow struct {
	repo        *repository.Appointments
	publisher   events.Publisher
	transitions map[model.Status]map[model.Status]struct{}
	log         *logger.Logger
}

type Option func(*Workflow)

func WithPublisher(p events.Publisher) Option {
	return func(w *Workflow) { w.publisher = p }
}

func WithLogger(log *logger.Logger) Option {
	return func(w *Workflow) { w.log = log }
}

// WithTransitions restricts SetStatus to the given table. Without it every
// status may move to every other status.
func WithTransitions(allowed map[model.Status][]model.Status) Option {
	return func(w *Workflow) {
		w.transitions = make(map[model.Status]map[model.Status]struct{}, len(allowed))
		for from, tos := range allowed {
			set := make(map[model.Status]struct{}, len(tos))
			for _, to := range tos {
				set[to] = struct{}{}
			}
			w.transitions[from] = set
		}
	}
}

func New(repo *repository.Appointments, opts ...Option) *Workflow {
	w := &Workflow{
		repo:      repo,
		publisher: events.Nop{},
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workflow) Repository() *repository.Appointments {
	return w.repo
}

func (w *Workflow) Create(ctx context.Context, draft model.AppointmentDraft) (model.Appointment, error) {
	appt, err := w.repo.Create(draft)
	if err != nil {
		return appt, err
	}
	w.publish(ctx, events.New(events.AppointmentCreated, appt.ID, appt))
	return appt, nil
}

func (w *Workflow) Get(id string) (model.Appointment, error) {
	return w.repo.GetByID(id)
}

func (w *Workflow) List() []model.Appointment {
	return w.repo.List()
}

// SetStatus moves an appointment to status.
func (w *Workflow) SetStatus(ctx context.Context, id string, status model.Status) (model.Appointment, error) {
	if !status.Valid() {
		return model.Appointment{}, apperrors.Validation(fmt.Sprintf("unknown appointment status %q", status), nil)
	}

	current, err := w.repo.GetByID(id)
	if err != nil {
		return model.Appointment{}, err
	}
	if !w.allowed(current.Status, status) {
		return model.Appointment{}, apperrors.Validation(
			fmt.Sprintf("appointment cannot move from %s to %s", current.Status, status), nil)
	}

	updated, err := w.repo.Update(id, model.AppointmentUpdate{Status: &status})
	if err != nil {
		return model.Appointment{}, err
	}

	w.log.Info("Appointment status changed", "id", id, "from", current.Status, "to", status)
	w.publish(ctx, events.New(events.AppointmentStatusChanged, id, map[string]any{
		"from": current.Status,
		"to":   status,
	}))
	return updated, nil
}

func (w *Workflow) Delete(ctx context.Context, id string) error {
	if err := w.repo.Remove(id); err != nil {
		return err
	}
	w.publish(ctx, events.New(events.AppointmentDeleted, id, nil))
	return nil
}

// Search returns matching appointments in insertion order.
func (w *Workflow) Search(q Query) ([]model.Appointment, error) {
	filter := strings.TrimSpace(q.Status)
	if filter != "" && filter != model.StatusFilterAll && !model.Status(filter).Valid() {
		return nil, apperrors.Validation(fmt.Sprintf("unknown status filter %q", q.Status), nil)
	}
	text := strings.ToLower(q.Text)

	return w.repo.Filter(func(a model.Appointment) bool {
		return matchesStatus(a, filter) && matchesText(a, text)
	}), nil
}

// ExportSnapshot pairs the current appointment listing with the given doctor
// and service listings. It reads only.
func (w *Workflow) ExportSnapshot(doctors []model.Doctor, services []model.Service, at time.Time) model.ExportPayload {
	return model.ExportPayload{
		Doctors:      doctors,
		Services:     services,
		Appointments: w.repo.List(),
		ExportDate:   at.UTC(),
	}
}

// ByDoctor lists appointments assigned to doctorID.
func (w *Workflow) ByDoctor(doctorID string) []model.Appointment {
	return w.repo.Filter(func(a model.Appointment) bool {
		return a.DoctorID == doctorID
	})
}

func (w *Workflow) allowed(from, to model.Status) bool {
	if w.transitions == nil || from == to {
		return true
	}
	_, ok := w.transitions[from][to]
	return ok
}

func (w *Workflow) publish(ctx context.Context, event events.Event) {
	if err := w.publisher.Publish(ctx, event); err != nil {
		w.log.Warn("Failed to publish appointment event", "event_type", event.Type, "key", event.Key, "error", err)
	}
}

func matchesStatus(a model.Appointment, filter string) bool {
	return filter == "" || filter == model.StatusFilterAll || string(a.Status) == filter
}

func matchesText(a model.Appointment, text string) bool {
	if text == "" {
		return true
	}
	for _, field := range []string{a.FirstName, a.LastName, a.Email, a.Department} {
		if strings.Contains(strings.ToLower(field), text) {
			return true
		}
	}
	return false
}
