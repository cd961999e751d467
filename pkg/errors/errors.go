package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ClientError provides a structured error for failures observed by the API client.
type ClientError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

func (e *ClientError) Error() string {
	if e == nil {
		return "<nil>"
	}

	if e.Internal != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Internal)
	}

	return e.Message
}

// Unwrap exposes the internal error for errors.Is / errors.As compatibility.
func (e *ClientError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Internal
}

// Is matches on the error code so sentinel comparisons survive the
// WithMessage/WithInternal copies used to carry backend detail.
func (e *ClientError) Is(target error) bool {
	if e == nil {
		return false
	}

	other, ok := target.(*ClientError)
	if !ok {
		return false
	}
	return other.Code == e.Code
}

// WithInternal returns a copy of the ClientError with an attached internal error.
func (e *ClientError) WithInternal(err error) *ClientError {
	if e == nil {
		return nil
	}

	cpy := *e
	cpy.Internal = err
	return &cpy
}

// WithMessage returns a copy of the ClientError carrying a backend-provided message.
func (e *ClientError) WithMessage(message string) *ClientError {
	if e == nil {
		return nil
	}

	cpy := *e
	if message != "" {
		cpy.Message = message
	}
	return &cpy
}

// Failure classes the client distinguishes.
var (
	// ErrNoActiveSession signals an operation that requires a session when none is stored.
	ErrNoActiveSession = &ClientError{
		Code:       "NO_ACTIVE_SESSION",
		Message:    "No active session",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrRefreshRejected marks a refresh exchange the backend refused.
	ErrRefreshRejected = &ClientError{
		Code:       "REFRESH_REJECTED",
		Message:    "Session refresh was rejected",
		StatusCode: http.StatusUnauthorized,
	}

	// ErrUnreachable covers network failures and non-2xx responses unrelated to auth.
	ErrUnreachable = &ClientError{
		Code:       "UNREACHABLE",
		Message:    "Backend request failed",
		StatusCode: http.StatusBadGateway,
	}

	// ErrValidationRejected carries a payload rejection, local or backend-issued.
	ErrValidationRejected = &ClientError{
		Code:       "VALIDATION_REJECTED",
		Message:    "Payload was rejected",
		StatusCode: http.StatusUnprocessableEntity,
	}

	ErrUnauthorized = &ClientError{
		Code:       "UNAUTHORIZED",
		Message:    "Authentication required",
		StatusCode: http.StatusUnauthorized,
	}

	ErrNotFound = &ClientError{
		Code:       "NOT_FOUND",
		Message:    "Resource not found",
		StatusCode: http.StatusNotFound,
	}
)

// New builds a new client error with the provided metadata.
func New(code, message string, statusCode int) *ClientError {
	return &ClientError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Wrap turns any error into a ClientError while keeping the original for logging.
func Wrap(err error, message string) *ClientError {
	return &ClientError{
		Code:       ErrUnreachable.Code,
		Message:    message,
		StatusCode: ErrUnreachable.StatusCode,
		Internal:   err,
	}
}

// FromError converts a generic error into a ClientError, defaulting to ErrUnreachable.
func FromError(err error) *ClientError {
	if err == nil {
		return nil
	}

	var clientErr *ClientError
	if errors.As(err, &clientErr) {
		return clientErr
	}

	return ErrUnreachable.WithInternal(err)
}
