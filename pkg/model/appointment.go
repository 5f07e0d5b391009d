package model

import "time"

// Departments offered on the public booking form.
var Departments = []string{
	"Cardiology",
	"Pediatrics",
	"Orthopedics",
	"Neurology",
	"Emergency Care",
	"Radiology",
	"General Medicine",
}

// TimeSlots offered on the public booking form.
var TimeSlots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

// DateLayout is the calendar-date format used for preferred dates.
const DateLayout = "2006-01-02"

type Appointment struct {
	ID            string    `json:"_id" bson:"_id"`
	FirstName     string    `json:"first_name" bson:"first_name"`
	LastName      string    `json:"last_name" bson:"last_name"`
	Email         string    `json:"email" bson:"email"`
	Phone         string    `json:"phone" bson:"phone"`
	Department    string    `json:"department" bson:"department"`
	DoctorID      string    `json:"doctor_id,omitempty" bson:"doctor_id,omitempty"`
	PreferredDate string    `json:"preferred_date" bson:"preferred_date"`
	PreferredTime string    `json:"preferred_time" bson:"preferred_time"`
	Message       string    `json:"message,omitempty" bson:"message,omitempty"`
	Status        Status    `json:"status" bson:"status"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

func (a Appointment) Key() string { return a.ID }

// AppointmentDraft is the creation payload. Department and time are free text
// at this layer; the booking form is what restricts them.
type AppointmentDraft struct {
	FirstName     string `json:"first_name" validate:"notblank"`
	LastName      string `json:"last_name" validate:"notblank"`
	Email         string `json:"email" validate:"notblank"`
	Phone         string `json:"phone" validate:"notblank"`
	Department    string `json:"department" validate:"notblank"`
	DoctorID      string `json:"doctor_id,omitempty"`
	PreferredDate string `json:"preferred_date" validate:"notblank"`
	PreferredTime string `json:"preferred_time" validate:"notblank"`
	Message       string `json:"message,omitempty"`
}

// Build always starts the appointment as pending.
func (d AppointmentDraft) Build(id string, now time.Time) Appointment {
	return Appointment{
		ID:            id,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		Phone:         d.Phone,
		Department:    d.Department,
		DoctorID:      d.DoctorID,
		PreferredDate: d.PreferredDate,
		PreferredTime: d.PreferredTime,
		Message:       d.Message,
		Status:        StatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

type AppointmentUpdate struct {
	Status        *Status `json:"status,omitempty" bson:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
	DoctorID      *string `json:"doctor_id,omitempty" bson:"doctor_id,omitempty"`
	PreferredDate *string `json:"preferred_date,omitempty" bson:"preferred_date,omitempty"`
	PreferredTime *string `json:"preferred_time,omitempty" bson:"preferred_time,omitempty"`
}

func (u AppointmentUpdate) Apply(a Appointment, now time.Time) Appointment {
	if u.Status != nil {
		a.Status = *u.Status
	}
	setString(&a.DoctorID, u.DoctorID)
	setString(&a.PreferredDate, u.PreferredDate)
	setString(&a.PreferredTime, u.PreferredTime)
	a.UpdatedAt = now
	return a
}
