package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller lacks permission for the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidInput is returned for semantically invalid input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrConflict is returned when a uniqueness constraint would be violated.
	ErrConflict = errors.New("conflict")
	// ErrEventLocked is returned when an event may no longer be edited.
	ErrEventLocked = errors.New("event can no longer be edited")
	// ErrEmptySelection is returned when a registration is submitted with no participants.
	ErrEmptySelection = errors.New("at least one participant must be selected")
	// ErrConfirmationRequired is returned when an edit-mode submission arrives
	// without the explicit confirmation step.
	ErrConfirmationRequired = errors.New("confirmation required before editing registrations")
)

// MixedSourceError reports a team assembled from a trainer and members with
// different source types. It names both observed types so the caller can
// surface a specific message.
type MixedSourceError struct {
	TrainerSource SourceType
	MemberSource  SourceType
}

func (e *MixedSourceError) Error() string {
	return fmt.Sprintf("trainer source %q does not match member source %q", e.TrainerSource, e.MemberSource)
}

// InvalidTransitionError reports a registration status transition that the
// state machine does not allow.
type InvalidTransitionError struct {
	From RegistrationStatus
	To   RegistrationStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("registration cannot move from %q to %q", e.From, e.To)
}
