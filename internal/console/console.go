// Package console is the administrative core: it owns the doctor and service
// repositories and the appointment workflow for one admin session, derives
// dashboard figures from them and produces export snapshots.
package console

import (
	"context"
	"curoo/internal/appointments"
	"curoo/internal/repository"
	"curoo/pkg/logger"
	"curoo/pkg/model"
	"fmt"
	"sync"
	"time"

	apperrors "curoo/pkg/errors"
)

type Section string

const (
	SectionDashboard    Section = "dashboard"
	SectionAppointments Section = "appointments"
	SectionDoctors      Section = "doctors"
	SectionServices     Section = "services"
	SectionSettings     Section = "settings"
)

var Sections = []Section{SectionDashboard, SectionAppointments, SectionDoctors, SectionServices, SectionSettings}

func (s Section) Valid() bool {
	switch s {
	case SectionDashboard, SectionAppointments, SectionDoctors, SectionServices, SectionSettings:
		return true
	}
	return false
}

// Stats are the dashboard counters. They are computed on every call.
type Stats struct {
	TotalAppointments   int `json:"total_appointments"`
	TotalDoctors        int `json:"total_doctors"`
	TotalServices       int `json:"total_services"`
	PendingAppointments int `json:"pending_appointments"`
}

// RemoteSource lists the collections held by the persistence service.
type RemoteSource interface {
	ListDoctors(ctx context.Context) ([]model.Doctor, error)
	ListServices(ctx context.Context) ([]model.Service, error)
	ListAppointments(ctx context.Context) ([]model.Appointment, error)
}

// Downloader delivers an export snapshot and reports where it went.
type Downloader interface {
	Download(ctx context.Context, payload model.ExportPayload) (string, error)
}

type Console struct {
	doctors    *repository.Doctors
	services   *repository.Services
	workflow   *appointments.Workflow
	downloader Downloader
	now        func() time.Time
	log        *logger.Logger

	mu      sync.RWMutex
	section Section
}

type Option func(*Console)

func WithDownloader(d Downloader) Option {
	return func(c *Console) { c.downloader = d }
}

func WithClock(now func() time.Time) Option {
	return func(c *Console) { c.now = now }
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Console) { c.log = log }
}

func New(doctors *repository.Doctors, services *repository.Services, workflow *appointments.Workflow, opts ...Option) *Console {
	c := &Console{
		doctors:  doctors,
		services: services,
		workflow: workflow,
		now:      time.Now,
		log:      logger.Discard(),
		section:  SectionDashboard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Console) Section() Section {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.section
}

func (c *Console) SetSection(s Section) error {
	if !s.Valid() {
		return apperrors.Validation(fmt.Sprintf("unknown section %q", s), nil)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.section = s
	return nil
}

func (c *Console) Stats() Stats {
	pending, err := c.workflow.Search(appointments.Query{Status: string(model.StatusPending)})
	if err != nil {
		c.log.Error("Failed to count pending appointments", "error", err)
	}

	return Stats{
		TotalAppointments:   c.workflow.Repository().Count(),
		TotalDoctors:        c.doctors.Count(),
		TotalServices:       c.services.Count(),
		PendingAppointments: len(pending),
	}
}

// RecentAppointments returns the first n appointments in collection order.
func (c *Console) RecentAppointments(n int) []model.Appointment {
	all := c.workflow.List()
	if n <= 0 {
		return []model.Appointment{}
	}
	if n < len(all) {
		all = all[:n]
	}
	return all
}

func (c *Console) Doctors() []model.Doctor {
	return c.doctors.List()
}

func (c *Console) AddDoctor(draft model.DoctorDraft) (model.Doctor, error) {
	return c.doctors.Create(draft)
}

func (c *Console) UpdateDoctor(id string, update model.DoctorUpdate) (model.Doctor, error) {
	return c.doctors.Update(id, update)
}

func (c *Console) DeleteDoctor(id string) error {
	return c.doctors.Remove(id)
}

func (c *Console) Services() []model.Service {
	return c.services.List()
}

func (c *Console) AddService(draft model.ServiceDraft) (model.Service, error) {
	return c.services.Create(draft)
}

func (c *Console) UpdateService(id string, update model.ServiceUpdate) (model.Service, error) {
	return c.services.Update(id, update)
}

func (c *Console) DeleteService(id string) error {
	return c.services.Remove(id)
}

func (c *Console) Appointments() []model.Appointment {
	return c.workflow.List()
}

func (c *Console) SearchAppointments(q appointments.Query) ([]model.Appointment, error) {
	return c.workflow.Search(q)
}

func (c *Console) SetAppointmentStatus(ctx context.Context, id string, status model.Status) (model.Appointment, error) {
	return c.workflow.SetStatus(ctx, id, status)
}

func (c *Console) DeleteAppointment(ctx context.Context, id string) error {
	return c.workflow.Delete(ctx, id)
}

// ExportSnapshot copies every collection as it stands now.
func (c *Console) ExportSnapshot() model.ExportPayload {
	return c.workflow.ExportSnapshot(c.doctors.List(), c.services.List(), c.now())
}

// Export hands a fresh snapshot to the configured Downloader.
func (c *Console) Export(ctx context.Context) (string, error) {
	if c.downloader == nil {
		return "", apperrors.Internal("no export destination configured", nil)
	}

	payload := c.ExportSnapshot()
	location, err := c.downloader.Download(ctx, payload)
	if err != nil {
		c.log.Error("Export failed", "error", err)
		return "", err
	}

	c.log.Info("Data exported",
		"location", location,
		"doctors", len(payload.Doctors),
		"services", len(payload.Services),
		"appointments", len(payload.Appointments),
	)
	return location, nil
}

// Load replaces all three collections with the remote listings. Nothing is
// replaced unless every listing succeeds and carries well-formed ids.
func (c *Console) Load(ctx context.Context, remote RemoteSource) error {
	doctors, err := remote.ListDoctors(ctx)
	if err != nil {
		return remoteErr("doctors", err)
	}
	services, err := remote.ListServices(ctx)
	if err != nil {
		return remoteErr("services", err)
	}
	appts, err := remote.ListAppointments(ctx)
	if err != nil {
		return remoteErr("appointments", err)
	}

	for _, check := range []func() error{
		func() error { return c.doctors.Check(doctors) },
		func() error { return c.services.Check(services) },
		func() error { return c.workflow.Repository().Check(appts) },
	} {
		if err := check(); err != nil {
			c.log.Warn("Rejected remote listings", "error", err)
			return err
		}
	}

	// Checked above, so none of these can fail.
	_ = c.doctors.Load(doctors)
	_ = c.services.Load(services)
	_ = c.workflow.Repository().Load(appts)

	c.log.Info("Collections loaded",
		"doctors", len(doctors),
		"services", len(services),
		"appointments", len(appts),
	)
	return nil
}

func remoteErr(collection string, err error) error {
	if apperrors.IsRemote(err) {
		return err
	}
	return apperrors.RemoteCall(fmt.Sprintf("Failed to load %s", collection), 0, err)
}
