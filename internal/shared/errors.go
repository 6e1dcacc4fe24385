package shared

import "errors"

var (
	// ErrNotFound covers both a missing record and a record owned by
	// someone else. Callers must not be able to tell the two apart.
	ErrNotFound = errors.New("record not found")

	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError reports a bad field value. The message is safe to
// return to the client verbatim.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
