package verify

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyVerified is returned when a verified user runs any
	// verification command.
	ErrAlreadyVerified = errors.New("profile is already verified")

	// ErrNoPendingVerification is returned when a code is submitted without
	// an outstanding confirmation code.
	ErrNoPendingVerification = errors.New("no pending verification")

	// ErrInvalidCode is returned when a submitted code does not match the
	// stored one. The stored code stays valid; retries are allowed.
	ErrInvalidCode = errors.New("invalid confirmation code")
)

// InvalidEmailError is returned when a submitted email does not match the
// organization's email pattern.
type InvalidEmailError struct {
	Email string
}

func (e *InvalidEmailError) Error() string {
	return fmt.Sprintf("'%s' is not a valid email", e.Email)
}

// DuplicateEmailError is returned when a submitted email is already owned by
// a different profile.
type DuplicateEmailError struct {
	Email string
}

func (e *DuplicateEmailError) Error() string {
	return fmt.Sprintf("'%s' is already in use", e.Email)
}

// MissingConfigOptionError is returned when an operation requires a guild
// configuration option that is not set.
type MissingConfigOptionError struct {
	GuildID string
	Option  string
}

func (e *MissingConfigOptionError) Error() string {
	return fmt.Sprintf("missing configuration option '%s' for guild %s", e.Option, e.GuildID)
}
