package vikinglink

import (
	"errors"
	"fmt"
)

// Application error codes. These are mapped to user-facing behavior at the
// CLI boundary; codes are deliberately generic so that implementation
// packages can share them.
const (
	ECONFLICT    = "conflict"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application error with a machine-readable code and a
// human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description safe to show to the user.
	Message string
}

// Error implements the error interface. Not meant for end users; use
// ErrorMessage for user-facing text.
func (e *Error) Error() string {
	return fmt.Sprintf("vikinglink error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode returns the code of the error, if available. Returns an empty
// string for nil errors and EINTERNAL for non-application errors.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage returns the message of the error, if available. Returns an
// empty string for nil errors and a generic message for non-application
// errors.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper to construct an Error with formatting.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
