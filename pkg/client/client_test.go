package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"curoo/internal/api"
	"curoo/internal/booking"
	"curoo/internal/console"
	"curoo/pkg/events"
	"curoo/pkg/logger"
	"curoo/pkg/middleware"
	"curoo/pkg/model"

	apperrors "curoo/pkg/errors"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ console.RemoteSource      = (*Client)(nil)
	_ booking.AppointmentCreator = (*AppointmentClient)(nil)
)

func newServiceClient(t *testing.T) *Client {
	t.Helper()
	router := httprouter.New()
	stores := api.NewMemoryStores()
	api.NewRouter(stores, events.Nop{}, logger.Discard()).RegisterRoutes(router)
	api.NewHealthHandler(stores.Doctors, logger.Discard()).RegisterRoutes(router)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second)
}

func TestClientAgainstService(t *testing.T) {
	ctx := context.Background()
	c := newServiceClient(t)

	doctor, err := c.Doctors.Create(ctx, model.DoctorDraft{Name: "Dr. Sarah Johnson", Specialty: "Cardiology"})
	require.NoError(t, err)
	assert.NotEmpty(t, doctor.ID)

	qualification := "MD"
	doctor, err = c.Doctors.Update(ctx, doctor.ID, model.DoctorUpdate{Qualification: &qualification})
	require.NoError(t, err)
	assert.Equal(t, "MD", doctor.Qualification)

	cardiologists, err := c.Doctors.BySpecialty(ctx, "cardiology")
	require.NoError(t, err)
	assert.Len(t, cardiologists, 1)

	_, err = c.Services.Create(ctx, model.ServiceDraft{Name: "ECG", Description: "Heart rhythm", Department: "Emergency Care"})
	require.NoError(t, err)
	services, err := c.Services.ByDepartment(ctx, "Emergency Care")
	require.NoError(t, err)
	assert.Len(t, services, 1)

	appt, err := c.Appointments.Create(ctx, model.AppointmentDraft{
		FirstName: "John", LastName: "Doe", Email: "john@email.com", Phone: "555-0100",
		Department: "Cardiology", DoctorID: doctor.ID, PreferredDate: "2026-11-02", PreferredTime: "09:00 AM",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, appt.Status)

	confirmed := model.StatusConfirmed
	_, err = c.Appointments.Update(ctx, appt.ID, model.AppointmentUpdate{Status: &confirmed})
	require.NoError(t, err)

	pending, err := c.Appointments.ListByStatus(ctx, string(model.StatusPending))
	require.NoError(t, err)
	assert.Empty(t, pending)

	byDoctor, err := c.Appointments.ByDoctor(ctx, doctor.ID)
	require.NoError(t, err)
	require.Len(t, byDoctor, 1)
	assert.Equal(t, model.StatusConfirmed, byDoctor[0].Status)

	all, err := c.ListAppointments(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, c.Appointments.Delete(ctx, appt.ID))
	_, err = c.Appointments.Get(ctx, appt.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsRemote(err))
	assert.Equal(t, "Appointment not found", apperrors.AsAppError(err).Message)

	require.NoError(t, c.WaitForHealthy(ctx, time.Second))
}

func TestRemoteErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "detail", status: http.StatusNotFound, body: `{"detail":"Doctor not found"}`, wantMessage: "Doctor not found"},
		{name: "error", status: http.StatusBadRequest, body: `{"error":"bad input"}`, wantMessage: "bad input"},
		{name: "message", status: http.StatusConflict, body: `{"message":"already exists"}`, wantMessage: "already exists"},
		{name: "structured detail", status: http.StatusUnprocessableEntity, body: `{"detail":[{"loc":"name"}]}`, wantMessage: `[{"loc":"name"}]`},
		{name: "no body", status: http.StatusServiceUnavailable, body: ``, wantMessage: "persistence service returned 503"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, time.Second).ListDoctors(context.Background())
			require.Error(t, err)

			appErr := apperrors.AsAppError(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperrors.CodeRemoteCall, appErr.Code)
			assert.Equal(t, tt.wantMessage, appErr.Message)
			assert.Equal(t, tt.status, appErr.Details["status"])
		})
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).ListServices(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.IsRemote(err))
}

func TestDecodesUnwrappedBodies(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"_id":"1","name":"Dr. A","specialty":"Neurology"}]`))
	}))
	defer srv.Close()

	doctors, err := New(srv.URL, time.Second).ListDoctors(context.Background())
	require.NoError(t, err)
	require.Len(t, doctors, 1)
	assert.Equal(t, "Neurology", doctors[0].Specialty)
}

func TestAppointmentCreateSendsIdempotencyKey(t *testing.T) {
	keys := make(chan string, 2)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		keys <- r.Header.Get(middleware.IdempotencyKeyHeader)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"_id":"a1","status":"pending"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	for i := 0; i < 2; i++ {
		appt, err := c.Appointments.Create(context.Background(), model.AppointmentDraft{FirstName: "Jane"})
		require.NoError(t, err)
		assert.Equal(t, "a1", appt.ID)
	}

	first, second := <-keys, <-keys
	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
