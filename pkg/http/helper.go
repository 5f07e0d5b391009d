package http

import (
	"net/http"

	apperrors "curoo/pkg/errors"

	"github.com/goccy/go-json"
)

// ReadJSON decodes the request body into dst. Unknown fields are rejected so
// that misspelled patch keys do not silently become no-ops.
func ReadJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return apperrors.InvalidInput("request body is required")
	}

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return apperrors.InvalidInput("invalid JSON body: " + err.Error())
	}
	return nil
}
