// Package client talks to the curoo persistence service over REST. Every
// failure, transport or HTTP, surfaces as a REMOTE_CALL_ERROR.
package client

import (
	"context"
	"curoo/pkg/middleware"
	"curoo/pkg/model"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const (
	doctorsPath      = "/api/doctors"
	servicesPath     = "/api/services"
	appointmentsPath = "/api/appointments"
)

type DoctorClient struct {
	*Resource[model.Doctor, model.DoctorDraft, model.DoctorUpdate]
}

func (c *DoctorClient) BySpecialty(ctx context.Context, specialty string) ([]model.Doctor, error) {
	return c.list(ctx, doctorsPath+"/specialty/"+url.PathEscape(specialty))
}

type ServiceClient struct {
	*Resource[model.Service, model.ServiceDraft, model.ServiceUpdate]
}

func (c *ServiceClient) ByDepartment(ctx context.Context, department string) ([]model.Service, error) {
	return c.list(ctx, servicesPath+"/department/"+url.PathEscape(department))
}

type AppointmentClient struct {
	*Resource[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate]
}

// Create sends a fresh idempotency key so a retried request after a lost
// response does not book twice.
func (c *AppointmentClient) Create(ctx context.Context, draft model.AppointmentDraft) (model.Appointment, error) {
	headers := map[string]string{middleware.IdempotencyKeyHeader: uuid.NewString()}
	return c.one(ctx, http.MethodPost, appointmentsPath, draft, headers)
}

// ListByStatus lists appointments with the given status, or all of them for
// model.StatusFilterAll.
func (c *AppointmentClient) ListByStatus(ctx context.Context, filter string) ([]model.Appointment, error) {
	return c.list(ctx, appointmentsPath+"?"+url.Values{"status_filter": {filter}}.Encode())
}

func (c *AppointmentClient) ByDoctor(ctx context.Context, doctorID string) ([]model.Appointment, error) {
	return c.list(ctx, appointmentsPath+"/doctor/"+url.PathEscape(doctorID))
}

type Client struct {
	Doctors      *DoctorClient
	Services     *ServiceClient
	Appointments *AppointmentClient

	http *HttpClient
}

func New(baseURL string, timeout time.Duration) *Client {
	httpClient := NewHttpClient(baseURL, timeout)
	return &Client{
		Doctors:      &DoctorClient{newResource[model.Doctor, model.DoctorDraft, model.DoctorUpdate](httpClient, doctorsPath)},
		Services:     &ServiceClient{newResource[model.Service, model.ServiceDraft, model.ServiceUpdate](httpClient, servicesPath)},
		Appointments: &AppointmentClient{newResource[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate](httpClient, appointmentsPath)},
		http:         httpClient,
	}
}

func (c *Client) ListDoctors(ctx context.Context) ([]model.Doctor, error) {
	return c.Doctors.List(ctx)
}

func (c *Client) ListServices(ctx context.Context) ([]model.Service, error) {
	return c.Services.List(ctx)
}

func (c *Client) ListAppointments(ctx context.Context) ([]model.Appointment, error) {
	return c.Appointments.List(ctx)
}

func (c *Client) WaitForHealthy(ctx context.Context, maxWait time.Duration) error {
	return c.http.WaitForHealthy(ctx, maxWait)
}
