package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrBadRequest = errors.New("bad request")

	// ErrAnalysisFailed covers every way an analyze call can fail: transport
	// errors, non-2xx replies, malformed bodies and unusable spans.
	ErrAnalysisFailed = errors.New("analysis failed")

	ErrInvalidSpan      = errors.New("invalid entity span")
	ErrOverlappingSpans = errors.New("overlapping entity spans")
)

// AnalysisFailedMessage is the only failure message shown to users.
const AnalysisFailedMessage = "Failed to analyze text. Make sure the analysis service is running."

type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NewNotFoundError(resource string) error {
	return &NotFoundError{Resource: resource}
}

type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string {
	return e.Message
}

func (e *BadRequestError) Unwrap() error {
	return ErrBadRequest
}

func NewBadRequestError(message string) error {
	return &BadRequestError{Message: message}
}

// AnalysisError wraps the underlying cause of a failed analysis.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %v", e.Err)
}

func (e *AnalysisError) Unwrap() []error {
	return []error{ErrAnalysisFailed, e.Err}
}

func NewAnalysisError(err error) error {
	return &AnalysisError{Err: err}
}

// APIError represents an error response. Used for swagger documentation.
type APIError struct {
	Message string `json:"message"`
}
