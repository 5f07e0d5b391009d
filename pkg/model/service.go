package model

import "time"

type Service struct {
	ID          string    `json:"_id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	Icon        string    `json:"icon,omitempty" bson:"icon,omitempty"`
	Price       *float64  `json:"price,omitempty" bson:"price,omitempty"`
	Duration    string    `json:"duration,omitempty" bson:"duration,omitempty"`
	Department  string    `json:"department,omitempty" bson:"department,omitempty"`
	Available   bool      `json:"available" bson:"available"`
	Features    []string  `json:"features,omitempty" bson:"features,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

func (s Service) Key() string { return s.ID }

// Clone returns a copy sharing no slices or pointers with s.
func (s Service) Clone() Service {
	s.Features = cloneStrings(s.Features)
	s.Price = cloneFloat(s.Price)
	return s
}

type ServiceDraft struct {
	Name        string   `json:"name" validate:"notblank"`
	Description string   `json:"description" validate:"notblank"`
	Icon        string   `json:"icon,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Duration    string   `json:"duration,omitempty"`
	Department  string   `json:"department,omitempty"`
	Available   *bool    `json:"available,omitempty"`
	Features    []string `json:"features,omitempty"`
}

func (d ServiceDraft) Build(id string, now time.Time) Service {
	available := true
	if d.Available != nil {
		available = *d.Available
	}
	return Service{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		Price:       cloneFloat(d.Price),
		Duration:    d.Duration,
		Department:  d.Department,
		Available:   available,
		Features:    cloneStrings(d.Features),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

type ServiceUpdate struct {
	Name        *string   `json:"name,omitempty" bson:"name,omitempty"`
	Description *string   `json:"description,omitempty" bson:"description,omitempty"`
	Icon        *string   `json:"icon,omitempty" bson:"icon,omitempty"`
	Price       *float64  `json:"price,omitempty" bson:"price,omitempty"`
	Duration    *string   `json:"duration,omitempty" bson:"duration,omitempty"`
	Department  *string   `json:"department,omitempty" bson:"department,omitempty"`
	Available   *bool     `json:"available,omitempty" bson:"available,omitempty"`
	Features    *[]string `json:"features,omitempty" bson:"features,omitempty"`
}

func (u ServiceUpdate) Apply(s Service, now time.Time) Service {
	setString(&s.Name, u.Name)
	setString(&s.Description, u.Description)
	setString(&s.Icon, u.Icon)
	setString(&s.Duration, u.Duration)
	setString(&s.Department, u.Department)
	if u.Price != nil {
		s.Price = cloneFloat(u.Price)
	}
	if u.Available != nil {
		s.Available = *u.Available
	}
	if u.Features != nil {
		s.Features = cloneStrings(*u.Features)
	}
	s.UpdatedAt = now
	return s
}
