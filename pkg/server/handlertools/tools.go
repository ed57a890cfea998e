package handlertools

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nerview/nerview/internal"
	"github.com/nerview/nerview/pkg/models"
)

var log = internal.GetLogger()

// BoolFromQuery extracts a query string value and converts it to a bool
func BoolFromQuery(r *http.Request, param string) (bool, error) {
	p := r.URL.Query().Get(param)
	if p != "" {
		return strconv.ParseBool(p)
	}
	return false, nil
}

// EncodeJSON encodes data into JSON and writes it to the response writer.
func EncodeJSON(w http.ResponseWriter, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(data)
}

// DecodeJSON decodes a JSON request body into the provided data struct.
func DecodeJSON(r *http.Request, data interface{}) error {
	return json.NewDecoder(r.Body).Decode(&data)
}

// StatusFromError maps the sentinel errors in models to an HTTP status.
func StatusFromError(err error) int {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAnalysisFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// RenderError renders an error response. Analysis failures are logged in
// full but reported to the caller with the generic failure message only.
func RenderError(w http.ResponseWriter, err error, status int) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		status = http.StatusRequestEntityTooLarge
		err = fmt.Errorf("request body too large, limit is %d bytes", maxBytesErr.Limit)
	}

	if status != http.StatusNotFound {
		// Don't log not found errors
		log.Error(err)
	}

	message := err.Error()
	if errors.Is(err, models.ErrAnalysisFailed) {
		message = models.AnalysisFailedMessage
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(models.APIError{Message: message})
}

// UUIDFromURL parses a UUID from a Path parameter. If the UUID is invalid, an error is
// rendered and uuid.Nil is returned.
func UUIDFromURL(r *http.Request, w http.ResponseWriter, paramName string) uuid.UUID {
	uuidStr := chi.URLParam(r, paramName)
	parsed, err := uuid.Parse(uuidStr)
	if err != nil {
		RenderError(
			w,
			fmt.Errorf("unable to parse %s: %w", paramName, err),
			http.StatusBadRequest,
		)
		return uuid.Nil
	}
	return parsed
}
