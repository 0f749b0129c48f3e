package offer

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeUpstream        ErrorCode = "UPSTREAM_FAILURE"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

// AppError carries the HTTP mapping for a pipeline failure. Details holds
// the raw backend payload for upstream errors so operators can diagnose
// without re-driving the request.
type AppError struct {
	Status  int
	Code    ErrorCode
	Message string
	Stage   string
	Details any
}

func (e *AppError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: %s (stage=%s)", e.Code, e.Message, e.Stage)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    ErrorCodeValidation,
		Message: msg,
	}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{
		Status:  http.StatusNotFound,
		Code:    ErrorCodeNotFound,
		Message: msg,
	}
}

func NewUpstreamError(stage string, err error) *AppError {
	appErr := &AppError{
		Status:  http.StatusBadGateway,
		Code:    ErrorCodeUpstream,
		Message: "Failed to fetch data from booking backend",
		Stage:   stage,
	}

	var backendErr *BackendError
	if errors.As(err, &backendErr) {
		appErr.Details = backendErr.Body
	} else if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// BackendError is returned by the outbound client when the booking backend
// answers with a non-success status. Body keeps the raw response payload.
type BackendError struct {
	Status int
	Body   string
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("backend returned status %d: %s", e.Status, e.Body)
}
