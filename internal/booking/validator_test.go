package booking

import (
	"errors"
	"testing"

	"curoo/pkg/logger"
	"curoo/pkg/validation"
)

func TestFormValidator_Validate(t *testing.T) {
	v := NewFormValidator(logger.Discard())

	tests := []struct {
		name      string
		mutate    func(*Form)
		wantField string
	}{
		{"valid", func(*Form) {}, ""},
		{"message optional", func(f *Form) { f.Message = "" }, ""},
		{"blank first name", func(f *Form) { f.FirstName = "   " }, "FirstName"},
		{"missing last name", func(f *Form) { f.LastName = "" }, "LastName"},
		{"bad email", func(f *Form) { f.Email = "not-an-email" }, "Email"},
		{"missing phone", func(f *Form) { f.Phone = "" }, "Phone"},
		{"unknown department", func(f *Form) { f.Department = "Dermatology" }, "Department"},
		{"malformed date", func(f *Form) { f.PreferredDate = "20/10/2026" }, "PreferredDate"},
		{"past date", func(f *Form) { f.PreferredDate = "2025-12-31" }, "PreferredDate"},
		{"unknown slot", func(f *Form) { f.PreferredTime = "01:00 PM" }, "PreferredTime"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)

			err := v.Validate(form, fixedNow)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var fieldErrs validation.FieldErrors
			if !errors.As(err, &fieldErrs) {
				t.Fatalf("expected FieldErrors, got %v", err)
			}
			if !fieldErrs.Has(tt.wantField) {
				t.Errorf("expected error on %s, got %v", tt.wantField, fieldErrs)
			}
		})
	}
}
