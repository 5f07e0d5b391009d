package model

import "time"

// ExportPayload is a point-in-time copy of every collection the console owns.
type ExportPayload struct {
	Doctors      []Doctor      `json:"doctors"`
	Services     []Service     `json:"services"`
	Appointments []Appointment `json:"appointments"`
	ExportDate   time.Time     `json:"exportDate"`
}
