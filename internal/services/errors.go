package services

import "errors"

// Classified errors let handlers map service failures to HTTP status codes
// without string matching. Wrap with NotFound/Conflict/Invalid and test with
// errors.Is against the matching sentinel.

var (
	// ErrNotFound marks a lookup for a record that does not exist
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a uniqueness violation caught on pre-check
	ErrConflict = errors.New("conflict")
	// ErrInvalid marks a payload that failed domain validation
	ErrInvalid = errors.New("invalid")
	// ErrUnauthorized marks failed credential verification
	ErrUnauthorized = errors.New("unauthorized")
)

type classifiedError struct {
	kind    error
	message string
}

func (e *classifiedError) Error() string { return e.message }

func (e *classifiedError) Is(target error) bool { return target == e.kind }

// NotFound builds an ErrNotFound with a user-facing message
func NotFound(message string) error {
	return &classifiedError{kind: ErrNotFound, message: message}
}

// Conflict builds an ErrConflict with a user-facing message
func Conflict(message string) error {
	return &classifiedError{kind: ErrConflict, message: message}
}

// Invalid builds an ErrInvalid with a user-facing message
func Invalid(message string) error {
	return &classifiedError{kind: ErrInvalid, message: message}
}

// Unauthorized builds an ErrUnauthorized with a user-facing message
func Unauthorized(message string) error {
	return &classifiedError{kind: ErrUnauthorized, message: message}
}
