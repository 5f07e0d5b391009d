package http

import (
	"net/http"

	apperrors "curoo/pkg/errors"

	"github.com/goccy/go-json"
)

// ErrorResponse keeps the persistence service's error contract: clients read
// the human-readable text from detail.
type ErrorResponse struct {
	Detail  string         `json:"detail"`
	Code    string         `json:"code,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

type SuccessResponse struct {
	Data any `json:"data"`
}

func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func WriteError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)

	var statusCode int
	switch appErr.Code {
	case apperrors.CodeInvalidInput:
		statusCode = http.StatusBadRequest
	case apperrors.CodeNotFound:
		statusCode = http.StatusNotFound
	case apperrors.CodeConflict:
		statusCode = http.StatusConflict
	case apperrors.CodeValidation:
		statusCode = http.StatusUnprocessableEntity
	case apperrors.CodeRemoteCall:
		statusCode = http.StatusBadGateway
	default:
		statusCode = http.StatusInternalServerError
	}

	errResp := ErrorResponse{
		Detail:  appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	}
	if statusCode == http.StatusInternalServerError {
		errResp = ErrorResponse{
			Detail: "Internal server error",
			Code:   apperrors.CodeInternal,
		}
	}

	WriteJSON(w, statusCode, errResp)
}

func WriteSuccess(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Data: data})
}

func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, SuccessResponse{Data: data})
}

func WriteNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}
