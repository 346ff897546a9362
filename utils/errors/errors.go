package errors

import (
	"fmt"
	"net/http"
)

// APIError is the JSON error body returned by every endpoint.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches any APIError with the same code, so a sentinel still matches
// after Wrap or WithDetails has copied it.
func (e *APIError) Is(target error) bool {
	t, ok := target.(*APIError)
	return ok && t.Code == e.Code
}

func NewAPIError(code, message string, status int, details ...string) *APIError {
	err := &APIError{
		Code:    code,
		Message: message,
		Status:  status,
	}
	if len(details) > 0 {
		err.Details = details[0]
	}
	return err
}

// WithDetails returns a copy of e carrying details.
func (e *APIError) WithDetails(details string) *APIError {
	return NewAPIError(e.Code, e.Message, e.Status, details)
}

var (
	ErrInvalidInput = NewAPIError("INVALID_INPUT", "Invalid request data", http.StatusBadRequest)
	ErrUnauthorized = NewAPIError("UNAUTHORIZED", "Authentication required", http.StatusUnauthorized)
	ErrNotFound     = NewAPIError("NOT_FOUND", "Resource not found", http.StatusNotFound)
	ErrInternal     = NewAPIError("INTERNAL_SERVER_ERROR", "Internal server error", http.StatusInternalServerError)
	ErrUpstream     = NewAPIError("UPSTREAM_ERROR", "Failed to fetch locations", http.StatusBadGateway)

	ErrFetchInFlight = NewAPIError("FETCH_IN_FLIGHT", "A location fetch is already in progress", http.StatusConflict)
	ErrUnknownEvent  = NewAPIError("UNKNOWN_EVENT", "Unknown map event", http.StatusBadRequest)
	ErrInvalidType   = NewAPIError("INVALID_LOCATION_TYPE", "Unknown location type", http.StatusBadRequest)
)

// Wrap returns err unchanged if it is already an APIError, otherwise a new
// APIError whose details carry err's message.
func Wrap(err error, code, message string, status int) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return NewAPIError(code, message, status, err.Error())
}
