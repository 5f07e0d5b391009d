package api

import (
	"curoo/internal/store"
	"curoo/pkg/model"
	"curoo/pkg/sanitizer"
)

func sanitizeDoctorDraft(d *model.DoctorDraft) {
	d.Name = sanitizer.NormalizeName(d.Name)
	d.Specialty = sanitizer.TrimAndNormalize(d.Specialty)
	d.Qualification = sanitizer.TrimAndNormalize(d.Qualification)
	d.Email = sanitizer.NormalizeEmail(d.Email)
	d.Phone = sanitizer.NormalizePhone(d.Phone)
	d.AvailableDays = sanitizer.NormalizeList(d.AvailableDays)
}

func sanitizeDoctorUpdate(u *model.DoctorUpdate) {
	normalizePtr(&u.Name, sanitizer.NormalizeName)
	normalizePtr(&u.Specialty, sanitizer.TrimAndNormalize)
	normalizePtr(&u.Qualification, sanitizer.TrimAndNormalize)
	normalizePtr(&u.Email, sanitizer.NormalizeEmail)
	normalizePtr(&u.Phone, sanitizer.NormalizePhone)
	if u.AvailableDays != nil {
		days := sanitizer.NormalizeList(*u.AvailableDays)
		u.AvailableDays = &days
	}
}

func sanitizeServiceDraft(d *model.ServiceDraft) {
	d.Name = sanitizer.NormalizeName(d.Name)
	d.Department = sanitizer.TrimAndNormalize(d.Department)
	d.Features = sanitizer.NormalizeList(d.Features)
}

func sanitizeServiceUpdate(u *model.ServiceUpdate) {
	normalizePtr(&u.Name, sanitizer.NormalizeName)
	normalizePtr(&u.Department, sanitizer.TrimAndNormalize)
	if u.Features != nil {
		features := sanitizer.NormalizeList(*u.Features)
		u.Features = &features
	}
}

// A doctor reference that is not a well-formed id is dropped rather than
// rejected.
func sanitizeAppointmentDraft(d *model.AppointmentDraft) {
	d.FirstName = sanitizer.NormalizeName(d.FirstName)
	d.LastName = sanitizer.NormalizeName(d.LastName)
	d.Email = sanitizer.NormalizeEmail(d.Email)
	d.Phone = sanitizer.NormalizePhone(d.Phone)
	if d.DoctorID != "" && !store.ValidID(d.DoctorID) {
		d.DoctorID = ""
	}
}

func sanitizeAppointmentUpdate(u *model.AppointmentUpdate) {
	if u.DoctorID != nil && *u.DoctorID != "" && !store.ValidID(*u.DoctorID) {
		empty := ""
		u.DoctorID = &empty
	}
}

func normalizePtr(value **string, normalize func(string) string) {
	if *value == nil {
		return
	}
	normalized := normalize(**value)
	*value = &normalized
}
