package repository

import "curoo/pkg/model"

type (
	Doctors      = Repository[model.Doctor, model.DoctorDraft, model.DoctorUpdate]
	Services     = Repository[model.Service, model.ServiceDraft, model.ServiceUpdate]
	Appointments = Repository[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate]
)

func NewDoctors(opts ...Option) *Doctors {
	return New[model.Doctor, model.DoctorDraft, model.DoctorUpdate]("Doctor", opts...)
}

func NewServices(opts ...Option) *Services {
	return New[model.Service, model.ServiceDraft, model.ServiceUpdate]("Service", opts...)
}

func NewAppointments(opts ...Option) *Appointments {
	return New[model.Appointment, model.AppointmentDraft, model.AppointmentUpdate]("Appointment", opts...)
}
