package api

import (
	"curoo/internal/store"
	"curoo/pkg/events"
	"curoo/pkg/logger"
	"curoo/pkg/model"
	"fmt"
	"net/http"
	"strings"

	apperrors "curoo/pkg/errors"

	"github.com/julienschmidt/httprouter"
)

const (
	DoctorsPath      = "/api/doctors"
	ServicesPath     = "/api/services"
	AppointmentsPath = "/api/appointments"
)

// Stores groups the three collections the API serves.
type Stores struct {
	Doctors      store.Store[model.Doctor, model.DoctorDraft, model.DoctorUpdate]
	Services     store.Store[model.Service, model.ServiceDraft, model.ServiceUpdate]
	Appointments store.Store[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate]
}

// NewMemoryStores backs the API with in-process collections.
func NewMemoryStores() Stores {
	return Stores{
		Doctors:      store.NewMemoryStore[model.Doctor, model.DoctorDraft, model.DoctorUpdate]("Doctor"),
		Services:     store.NewMemoryStore[model.Service, model.ServiceDraft, model.ServiceUpdate]("Service"),
		Appointments: store.NewMemoryStore[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate]("Appointment"),
	}
}

type Router struct {
	Doctors      *DoctorService
	Services     *ServiceService
	Appointments *AppointmentService

	log *logger.Logger
}

func NewRouter(stores Stores, publisher events.Publisher, log *logger.Logger) *Router {
	return &Router{
		Doctors: NewService("Doctor", stores.Doctors, log).
			WithSanitizers(sanitizeDoctorDraft, sanitizeDoctorUpdate),
		Services: NewService("Service", stores.Services, log).
			WithSanitizers(sanitizeServiceDraft, sanitizeServiceUpdate),
		Appointments: NewService("Appointment", stores.Appointments, log).
			WithSanitizers(sanitizeAppointmentDraft, sanitizeAppointmentUpdate).
			WithEvents(publisher, "appointment"),
		log: log,
	}
}

func (rt *Router) RegisterRoutes(router *httprouter.Router) {
	doctors := NewResourceHandler(rt.Doctors, DoctorsPath, rt.log)
	doctors.RegisterRoutes(router)
	router.GET(DoctorsPath+"/specialty/:specialty", doctors.ListBy(func(ps httprouter.Params) (store.Query, error) {
		return store.Query{Contains: map[string]string{"specialty": ps.ByName("specialty")}}, nil
	}))

	services := NewResourceHandler(rt.Services, ServicesPath, rt.log)
	services.RegisterRoutes(router)
	router.GET(ServicesPath+"/department/:department", services.ListBy(func(ps httprouter.Params) (store.Query, error) {
		return store.Query{Contains: map[string]string{"department": ps.ByName("department")}}, nil
	}))

	appointments := NewResourceHandler(rt.Appointments, AppointmentsPath, rt.log)
	appointments.listQuery = appointmentListQuery
	appointments.RegisterRoutes(router)
	router.GET(AppointmentsPath+"/doctor/:doctorId", appointments.ListBy(func(ps httprouter.Params) (store.Query, error) {
		doctorID := ps.ByName("doctorId")
		if !store.ValidID(doctorID) {
			return store.Query{}, apperrors.InvalidInput("Invalid doctor ID format")
		}
		return store.Query{Equals: map[string]string{"doctor_id": doctorID}, NewestFirst: true}, nil
	}))
}

// appointmentListQuery reads ?status_filter=; "all" or empty lists everything.
func appointmentListQuery(r *http.Request) (store.Query, error) {
	q := store.Query{NewestFirst: true}

	filter := strings.TrimSpace(r.URL.Query().Get("status_filter"))
	if filter == "" || filter == model.StatusFilterAll {
		return q, nil
	}
	if !model.Status(filter).Valid() {
		return q, apperrors.InvalidInput(fmt.Sprintf("invalid status_filter: %s", filter))
	}

	q.Equals = map[string]string{"status": filter}
	return q, nil
}
