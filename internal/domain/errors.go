package domain

import "errors"

// Error kinds. Module-level errors wrap one of these so that callers can
// classify a failure with errors.Is without knowing the entity involved.
var (
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrInvalidSlot   = errors.New("invalid time slot")
	ErrDuplicateName = errors.New("duplicate name")
	ErrValidation    = errors.New("validation error")
	ErrInUse         = errors.New("resource in use")
)
