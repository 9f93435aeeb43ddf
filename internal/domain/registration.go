package domain

import (
	"context"
	"time"
)

// RegistrationStatus is the lifecycle status of a registration.
// Registered advances to Confirmed and then Attended; Cancelled is reachable
// from any non-Cancelled state and is terminal.
type RegistrationStatus string

const (
	RegStatusRegistered RegistrationStatus = "Registered"
	RegStatusConfirmed  RegistrationStatus = "Confirmed"
	RegStatusCancelled  RegistrationStatus = "Cancelled"
	RegStatusAttended   RegistrationStatus = "Attended"
)

// CanTransitionTo reports whether the status machine allows moving to next.
func (s RegistrationStatus) CanTransitionTo(next RegistrationStatus) bool {
	if s == RegStatusCancelled {
		return false
	}
	if next == RegStatusCancelled {
		return true
	}
	switch s {
	case RegStatusRegistered:
		return next == RegStatusConfirmed
	case RegStatusConfirmed:
		return next == RegStatusAttended
	}
	return false
}

// Companion count bounds per selected participant.
const (
	MinCompanions = 0
	MaxCompanions = 10
)

// ClampCompanions forces a companion count into [MinCompanions, MaxCompanions].
func ClampCompanions(n int) int {
	if n < MinCompanions {
		return MinCompanions
	}
	if n > MaxCompanions {
		return MaxCompanions
	}
	return n
}

// Registration links an event to a registered team or individual participant.
// Exactly one of TeamID or ParticipantID is set, matching the event's
// registration target.
// swagger:model Registration
type Registration struct {
	ID                string             `json:"id"`
	EventID           string             `json:"event_id"`
	TeamID            string             `json:"team_id,omitempty"`
	ParticipantID     string             `json:"participant_id,omitempty"`
	ParticipantSource SourceType         `json:"participant_source"`
	Status            RegistrationStatus `json:"status"`
	Companions        int                `json:"companions"`
	RegisteredAt      time.Time          `json:"registration_date"`
	Notes             string             `json:"notes,omitempty"`
}

// Advance moves the registration to next, or returns an
// InvalidTransitionError when the state machine forbids it.
func (r *Registration) Advance(next RegistrationStatus) error {
	if !r.Status.CanTransitionTo(next) {
		return &InvalidTransitionError{From: r.Status, To: next}
	}
	r.Status = next
	return nil
}

// SubmissionMode selects the behavior of the registration submission flow.
type SubmissionMode string

const (
	// ModeRegister creates new registrations for the selection.
	ModeRegister SubmissionMode = "register"
	// ModeEdit replaces the stored registration set for the event; requires
	// an explicit confirmation from the caller.
	ModeEdit SubmissionMode = "edit"
	// ModeView is read-only.
	ModeView SubmissionMode = "view"
)

// RegistrationEntry is one selected participant (or team) with its companion
// count, as assembled by the selection flow.
type RegistrationEntry struct {
	ParticipantID string     `json:"participant_id,omitempty"`
	TeamID        string     `json:"team_id,omitempty"`
	Source        SourceType `json:"source"`
	Companions    int        `json:"companions"`
	Notes         string     `json:"notes,omitempty"`
}

// RegistrationRepository defines storage operations for registrations.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *Registration) error
	GetByID(ctx context.Context, id string) (*Registration, error)
	ListByEventID(ctx context.Context, eventID string) ([]*Registration, error)
	UpdateStatus(ctx context.Context, id string, status RegistrationStatus) (*Registration, error)
	ReplaceForEvent(ctx context.Context, eventID string, regs []*Registration) error
}

// RegistrationService defines the registration submission flow.
type RegistrationService interface {
	// Submit persists the selection for the event. In ModeEdit, confirmed
	// must be true or the call fails without persisting. In ModeView the
	// call is rejected: viewers read the projection instead.
	Submit(ctx context.Context, eventID string, entries []RegistrationEntry, mode SubmissionMode, confirmed bool) ([]*Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Registration, error)
	AdvanceStatus(ctx context.Context, registrationID string, next RegistrationStatus) (*Registration, error)
}
