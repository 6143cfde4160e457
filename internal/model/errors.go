package model

import (
	"errors"
	"strings"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotAuthorized is returned when the caller does not own the record.
	ErrNotAuthorized = errors.New("not authorized")
	// ErrForbidden is returned when an operation requires the admin role.
	ErrForbidden = errors.New("admin privileges required")
	// ErrInvalidCredentials is returned for any failed login attempt.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken is returned for a missing, malformed, expired or wrong-scope token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrOperationFailed hides a persistence fault from the client.
	ErrOperationFailed = errors.New("operation failed")

	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)

// ValidationError describes a single client-correctable field failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

// ValidationErrors aggregates field failures of one request.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the human-readable messages in order.
func (e ValidationErrors) Messages() []string {
	msgs := make([]string, 0, len(e))
	for _, v := range e {
		msgs = append(msgs, v.Message)
	}
	return msgs
}

// NewValidationError returns ValidationErrors holding one failure.
func NewValidationError(field, message string) ValidationErrors {
	return ValidationErrors{{Field: field, Message: message}}
}

var (
	// ErrUsernameTaken is reported when the username belongs to another user.
	ErrUsernameTaken = NewValidationError("username", "Username already exists")
	// ErrEmailTaken is reported when the email belongs to another user.
	ErrEmailTaken = NewValidationError("email", "Email already exists")
)

// IsClientError reports whether err is a domain error that can be shown to the
// client as-is.
func IsClientError(err error) bool {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return true
	}
	for _, target := range []error{
		ErrNotFound, ErrNotAuthorized, ErrForbidden, ErrInvalidCredentials, ErrInvalidToken,
		ErrTokenRevoked, ErrTokenExpired, ErrTokenMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
