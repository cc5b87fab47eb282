package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrForbidden          = errors.New("forbidden")
	ErrPostNotFound       = errors.New("post not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrValidation         = errors.New("validation failed")
)

// ValidationError reports missing or malformed input. Its message is safe to
// return to the client.
type ValidationError struct {
	Message string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ServerError carries a client-facing message for an unexpected failure while
// keeping the underlying cause for server-side logging only.
type ServerError struct {
	Message string
	Err     error
}

func NewServerError(msg string, err error) *ServerError {
	return &ServerError{Message: msg, Err: err}
}

func (e *ServerError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *ServerError) Unwrap() error { return e.Err }
