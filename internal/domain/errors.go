package domain

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for expected control flow. Handlers turn these into
// user-facing messages; anything else is treated as a transport failure.
var (
	// ErrTooManyFields is returned when a form already holds the
	// maximum number of fields.
	ErrTooManyFields = errors.New("too many fields")

	// ErrIllegalAddBefore is returned when an insert or move position
	// is beyond the current field sequence.
	ErrIllegalAddBefore = errors.New("illegal add-before position")

	// ErrFormNotFound is returned when a form reference no longer
	// resolves to a stored form.
	ErrFormNotFound = errors.New("form not found")

	// ErrFieldNotFound is returned when a field index does not resolve.
	ErrFieldNotFound = errors.New("field not found")

	// ErrMisconfigured is returned when a form cannot be shown: it has
	// no fields, or the destination no longer permits creating private
	// conversations.
	ErrMisconfigured = errors.New("form is not correctly configured")

	// ErrSessionExpired is returned when a prompt session has timed
	// out, was cancelled, or was already consumed.
	ErrSessionExpired = errors.New("prompt session expired or cancelled")

	// ErrIncompleteSubmission is returned when a submission misses a
	// required answer or does not match the field sequence.
	ErrIncompleteSubmission = errors.New("submission does not answer all required fields")
)

// ValueTooLongError reports a value that exceeds its attribute limit.
type ValueTooLongError struct {
	Attribute string
	Limit     int
}

func (e *ValueTooLongError) Error() string {
	return fmt.Sprintf("%s must be at most %d characters", e.Attribute, e.Limit)
}

// CooldownError reports a blocked submission and how long until the
// user may try again.
type CooldownError struct {
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("on cooldown for another %s", e.Remaining)
}
