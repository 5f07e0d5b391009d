package model

import "time"

type Doctor struct {
	ID              string    `json:"_id" bson:"_id"`
	Name            string    `json:"name" bson:"name"`
	Specialty       string    `json:"specialty" bson:"specialty"`
	Qualification   string    `json:"qualification" bson:"qualification"`
	Experience      string    `json:"experience" bson:"experience"`
	Image           string    `json:"image,omitempty" bson:"image,omitempty"`
	Phone           string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Email           string    `json:"email,omitempty" bson:"email,omitempty"`
	Bio             string    `json:"bio,omitempty" bson:"bio,omitempty"`
	AvailableDays   []string  `json:"available_days,omitempty" bson:"available_days,omitempty"`
	AvailableHours  string    `json:"available_hours,omitempty" bson:"available_hours,omitempty"`
	ConsultationFee *float64  `json:"consultation_fee,omitempty" bson:"consultation_fee,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" bson:"updated_at"`
}

func (d Doctor) Key() string { return d.ID }

// Clone returns a copy sharing no slices or pointers with d.
func (d Doctor) Clone() Doctor {
	d.AvailableDays = cloneStrings(d.AvailableDays)
	d.ConsultationFee = cloneFloat(d.ConsultationFee)
	return d
}

type DoctorDraft struct {
	Name            string   `json:"name" validate:"notblank"`
	Specialty       string   `json:"specialty" validate:"notblank"`
	Qualification   string   `json:"qualification"`
	Experience      string   `json:"experience"`
	Image           string   `json:"image,omitempty"`
	Phone           string   `json:"phone,omitempty"`
	Email           string   `json:"email,omitempty" validate:"omitempty,email"`
	Bio             string   `json:"bio,omitempty"`
	AvailableDays   []string `json:"available_days,omitempty"`
	AvailableHours  string   `json:"available_hours,omitempty"`
	ConsultationFee *float64 `json:"consultation_fee,omitempty" validate:"omitempty,gte=0"`
}

func (d DoctorDraft) Build(id string, now time.Time) Doctor {
	return Doctor{
		ID:              id,
		Name:            d.Name,
		Specialty:       d.Specialty,
		Qualification:   d.Qualification,
		Experience:      d.Experience,
		Image:           d.Image,
		Phone:           d.Phone,
		Email:           d.Email,
		Bio:             d.Bio,
		AvailableDays:   cloneStrings(d.AvailableDays),
		AvailableHours:  d.AvailableHours,
		ConsultationFee: cloneFloat(d.ConsultationFee),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// DoctorUpdate is a partial edit: nil fields are left untouched.
type DoctorUpdate struct {
	Name            *string   `json:"name,omitempty" bson:"name,omitempty"`
	Specialty       *string   `json:"specialty,omitempty" bson:"specialty,omitempty"`
	Qualification   *string   `json:"qualification,omitempty" bson:"qualification,omitempty"`
	Experience      *string   `json:"experience,omitempty" bson:"experience,omitempty"`
	Image           *string   `json:"image,omitempty" bson:"image,omitempty"`
	Phone           *string   `json:"phone,omitempty" bson:"phone,omitempty"`
	Email           *string   `json:"email,omitempty" bson:"email,omitempty"`
	Bio             *string   `json:"bio,omitempty" bson:"bio,omitempty"`
	AvailableDays   *[]string `json:"available_days,omitempty" bson:"available_days,omitempty"`
	AvailableHours  *string   `json:"available_hours,omitempty" bson:"available_hours,omitempty"`
	ConsultationFee *float64  `json:"consultation_fee,omitempty" bson:"consultation_fee,omitempty"`
}

func (u DoctorUpdate) Apply(d Doctor, now time.Time) Doctor {
	setString(&d.Name, u.Name)
	setString(&d.Specialty, u.Specialty)
	setString(&d.Qualification, u.Qualification)
	setString(&d.Experience, u.Experience)
	setString(&d.Image, u.Image)
	setString(&d.Phone, u.Phone)
	setString(&d.Email, u.Email)
	setString(&d.Bio, u.Bio)
	setString(&d.AvailableHours, u.AvailableHours)
	if u.AvailableDays != nil {
		d.AvailableDays = cloneStrings(*u.AvailableDays)
	}
	if u.ConsultationFee != nil {
		d.ConsultationFee = cloneFloat(u.ConsultationFee)
	}
	d.UpdatedAt = now
	return d
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	return append([]string{}, src...)
}

func cloneFloat(src *float64) *float64 {
	if src == nil {
		return nil
	}
	v := *src
	return &v
}
