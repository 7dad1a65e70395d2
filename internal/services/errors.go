package services

import (
	"errors"
	"fmt"

	"github.com/isdelr/resume-builder-be/internal/session"
	"github.com/isdelr/resume-builder-be/internal/store"
)

// Domain errors. All of them are user-facing and leave state unchanged,
// except ErrDeliveryFailed in lenient delivery mode, which is only logged.
var (
	ErrAlreadyRegistered = errors.New("this email is already registered")
	ErrNotFound          = errors.New("not found")
	ErrCodeMismatch      = errors.New("incorrect verification code")
	ErrCodeExpired       = errors.New("verification code expired")
	ErrNotVerified       = errors.New("please verify your email first")
	ErrBadCredentials    = errors.New("incorrect password")
	ErrDeliveryFailed    = errors.New("could not deliver verification code")
	ErrInvalidInput      = errors.New("invalid input")

	// ErrUnavailable marks infrastructure failures of the stores or mail transport.
	ErrUnavailable = errors.New("service unavailable")
)

// translate maps store and session errors onto service errors.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, session.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrUnavailable), errors.Is(err, session.ErrUnavailable):
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return err
}

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
