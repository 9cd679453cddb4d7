package accounts

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateEmail means an account with the same email (compared
	// case-insensitively) already exists.
	ErrDuplicateEmail = errors.New("accounts: email already registered")

	// ErrNoAccount means no account matched the login email.
	ErrNoAccount = errors.New("accounts: no account for email")

	// ErrInvalidCredentials means the account exists but the password
	// did not match.
	ErrInvalidCredentials = errors.New("accounts: invalid credentials")
)

// ValidationError rejects malformed input before any business rule runs.
// Field names the offending input so forms can attach inline messages.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("accounts: %s %s", e.Field, e.Reason)
}
