package validation

import (
	"errors"
	"strings"
	"testing"
)

type sample struct {
	Name  string `validate:"notblank"`
	Email string `validate:"omitempty,email"`
	Slot  string `validate:"omitempty,oneof=am pm"`
}

func TestStruct(t *testing.T) {
	v := New()

	tests := []struct {
		name       string
		input      sample
		wantFields []string
	}{
		{"valid", sample{Name: "Jane"}, nil},
		{"empty name", sample{}, []string{"Name"}},
		{"whitespace name", sample{Name: " \t "}, []string{"Name"}},
		{"bad email and slot", sample{Name: "Jane", Email: "nope", Slot: "noon"}, []string{"Email", "Slot"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(v, tt.input)
			if tt.wantFields == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var fieldErrs FieldErrors
			if !errors.As(err, &fieldErrs) {
				t.Fatalf("expected FieldErrors, got %T: %v", err, err)
			}
			if len(fieldErrs) != len(tt.wantFields) {
				t.Fatalf("expected %d errors, got %v", len(tt.wantFields), fieldErrs)
			}
			for _, field := range tt.wantFields {
				if !fieldErrs.Has(field) {
					t.Errorf("expected error on %s, got %v", field, fieldErrs)
				}
			}
		})
	}
}

func TestTranslate_Messages(t *testing.T) {
	err := Struct(New(), sample{Slot: "noon"})

	msg := err.Error()
	if !strings.Contains(msg, "Name is required") {
		t.Errorf("expected required message, got %s", msg)
	}
	if !strings.Contains(msg, "Slot must be one of: am pm") {
		t.Errorf("expected oneof message, got %s", msg)
	}
}
