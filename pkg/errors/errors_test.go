package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   &AppError{Code: CodeNotFound, Message: "Doctor not found"},
			expected: "NOT_FOUND: Doctor not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeRemoteCall,
				Message: "Error creating appointment",
				Err:     errors.New("connection refused"),
			},
			expected: "REMOTE_CALL_ERROR: Error creating appointment (caused by: connection refused)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Appointment", "42")

	if err.Code != CodeNotFound {
		t.Errorf("expected code %s, got %s", CodeNotFound, err.Code)
	}
	if err.HTTPStatus != http.StatusNotFound {
		t.Errorf("expected status %d, got %d", http.StatusNotFound, err.HTTPStatus)
	}
	if err.Details["id"] != "42" || err.Details["resource"] != "Appointment" {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestValidation_KeepsCause(t *testing.T) {
	cause := errors.New("name is required")
	err := Validation("Invalid doctor", cause)

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable with errors.Is")
	}
	if err.Details["error"] != "name is required" {
		t.Errorf("expected cause text in details, got %v", err.Details)
	}
	if Validation("no cause", nil).Details != nil {
		t.Error("expected nil details without a cause")
	}
}

func TestRemoteCall(t *testing.T) {
	err := RemoteCall("Appointment not found", http.StatusNotFound, nil)

	if err.HTTPStatus != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, err.HTTPStatus)
	}
	if err.Details["status"] != http.StatusNotFound {
		t.Errorf("expected upstream status in details, got %v", err.Details)
	}
	if RemoteCall("dial failed", 0, nil).Details != nil {
		t.Error("expected no details for transport failures")
	}
}

func TestCodePredicates_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("load doctors: %w", RemoteCall("boom", 500, nil))

	if !IsRemote(wrapped) {
		t.Error("expected IsRemote to unwrap")
	}
	if IsNotFound(wrapped) || IsValidation(wrapped) {
		t.Error("expected other predicates to be false")
	}
	if IsNotFound(errors.New("plain")) {
		t.Error("plain errors carry no code")
	}
}

func TestAsAppError(t *testing.T) {
	original := NotFoundWithID("Service", "x")
	if got := AsAppError(fmt.Errorf("wrap: %w", original)); got != original {
		t.Errorf("expected the wrapped AppError back, got %v", got)
	}

	converted := AsAppError(errors.New("disk on fire"))
	if converted.Code != CodeInternal {
		t.Errorf("expected %s, got %s", CodeInternal, converted.Code)
	}
}

func TestAppError_ToJSON(t *testing.T) {
	err := Conflict("duplicate id").WithDetails(map[string]any{"id": "7"})
	got := string(err.ToJSON())

	for _, want := range []string{`"code":"CONFLICT"`, `"message":"duplicate id"`, `"id":"7"`} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in %s", want, got)
		}
	}
}
