package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apperrors "curoo/pkg/errors"

	"github.com/goccy/go-json"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
		wantCode   string
	}{
		{"invalid input", apperrors.InvalidInput("Invalid doctor ID format"), http.StatusBadRequest, "Invalid doctor ID format", apperrors.CodeInvalidInput},
		{"not found", apperrors.NotFoundWithID("Doctor", "abc"), http.StatusNotFound, "Doctor not found", apperrors.CodeNotFound},
		{"conflict", apperrors.Conflict("duplicate"), http.StatusConflict, "duplicate", apperrors.CodeConflict},
		{"validation", apperrors.Validation("Doctor validation failed", nil), http.StatusUnprocessableEntity, "Doctor validation failed", apperrors.CodeValidation},
		{"remote", apperrors.RemoteCall("upstream down", 503, nil), http.StatusBadGateway, "upstream down", apperrors.CodeRemoteCall},
		{"internal hides cause", apperrors.Internal("mongo exploded", nil), http.StatusInternalServerError, "Internal server error", apperrors.CodeInternal},
		{"plain error", errors.New("secret"), http.StatusInternalServerError, "Internal server error", apperrors.CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}

			var body ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("failed to decode body: %v", err)
			}
			if body.Detail != tt.wantDetail {
				t.Errorf("expected detail %q, got %q", tt.wantDetail, body.Detail)
			}
			if body.Code != tt.wantCode {
				t.Errorf("expected code %q, got %q", tt.wantCode, body.Code)
			}
		})
	}
}

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteCreated(rec, map[string]string{"_id": "1"})

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type %q", ct)
	}
	if !strings.Contains(rec.Body.String(), `"data":{"_id":"1"}`) {
		t.Errorf("expected data envelope, got %s", rec.Body.String())
	}
}

func TestReadJSON(t *testing.T) {
	var dst struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Dr. Who"}`))
	if err := ReadJSON(req, &dst); err != nil || dst.Name != "Dr. Who" {
		t.Fatalf("unexpected result %q, %v", dst.Name, err)
	}

	for _, body := range []string{`{"nmae":"x"}`, `{not json`, ``} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		err := ReadJSON(req, &dst)
		if !apperrors.HasCode(err, apperrors.CodeInvalidInput) {
			t.Errorf("body %q: expected INVALID_INPUT, got %v", body, err)
		}
	}
}
