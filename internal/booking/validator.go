package booking

import (
	"curoo/pkg/logger"
	"curoo/pkg/model"
	"curoo/pkg/sanitizer"
	"curoo/pkg/validation"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Form is the public booking form. Every field except Message is required.
type Form struct {
	FirstName     string `json:"first_name" validate:"notblank"`
	LastName      string `json:"last_name" validate:"notblank"`
	Email         string `json:"email" validate:"notblank,email"`
	Phone         string `json:"phone" validate:"notblank"`
	Department    string `json:"department" validate:"notblank,department"`
	PreferredDate string `json:"preferred_date" validate:"notblank,datetime=2006-01-02"`
	PreferredTime string `json:"preferred_time" validate:"notblank,timeslot"`
	Message       string `json:"message,omitempty"`
}

func (f Form) appointmentDraft() model.AppointmentDraft {
	return model.AppointmentDraft{
		FirstName:     sanitizer.NormalizeName(f.FirstName),
		LastName:      sanitizer.NormalizeName(f.LastName),
		Email:         sanitizer.NormalizeEmail(f.Email),
		Phone:         sanitizer.NormalizePhone(f.Phone),
		Department:    f.Department,
		PreferredDate: f.PreferredDate,
		PreferredTime: f.PreferredTime,
		Message:       strings.TrimSpace(f.Message),
	}
}

type FormValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewFormValidator(log *logger.Logger) *FormValidator {
	v := validation.New()

	if err := v.RegisterValidation("department", oneOfList(model.Departments)); err != nil {
		log.Fatal("Failed to register 'department' validator", "error", err)
	}
	if err := v.RegisterValidation("timeslot", oneOfList(model.TimeSlots)); err != nil {
		log.Fatal("Failed to register 'timeslot' validator", "error", err)
	}

	return &FormValidator{
		validate: v,
		logger:   log,
	}
}

func oneOfList(allowed []string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}

// Validate checks f against the form rules. The preferred date may be today
// but not earlier, judged by the calendar date of now.
func (v *FormValidator) Validate(f Form, now time.Time) error {
	if err := v.validate.Struct(f); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.translateValidationErrors(validationErrs)
		}
		return err
	}

	// Both sides are YYYY-MM-DD here, so lexical order is calendar order.
	today := now.Format(model.DateLayout)
	if f.PreferredDate < today {
		return validation.FieldErrors{
			validation.FieldError{
				Field:   "PreferredDate",
				Message: fmt.Sprintf("PreferredDate cannot be earlier than today (%s)", today),
			},
		}
	}

	return nil
}

func (v *FormValidator) translateValidationErrors(errs validator.ValidationErrors) validation.FieldErrors {
	var out validation.FieldErrors

	for _, err := range errs {
		switch err.Tag() {
		case "department":
			out = append(out, validation.FieldError{
				Field:   err.Field(),
				Message: fmt.Sprintf("%s must be one of: %s", err.Field(), strings.Join(model.Departments, ", ")),
			})
		case "timeslot":
			out = append(out, validation.FieldError{
				Field:   err.Field(),
				Message: fmt.Sprintf("%s must be one of: %s", err.Field(), strings.Join(model.TimeSlots, ", ")),
			})
		default:
			out = append(out, validation.Translate(validator.ValidationErrors{err})...)
		}
	}

	return out
}
