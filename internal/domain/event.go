package domain

import (
	"context"
	"time"
)

// EventType classifies an event and determines its registration target.
type EventType string

const (
	EventFestival   EventType = "Festival"
	EventTournament EventType = "Tournament"
	EventClosing    EventType = "Closing"
	EventWorkshop   EventType = "Workshop"
)

// RegistrationTarget is the participant class an event registers: whole teams
// or individual athletes/participants.
type RegistrationTarget string

const (
	TargetTeams    RegistrationTarget = "teams"
	TargetAthletes RegistrationTarget = "athletes"
)

// RegistrationTarget resolves the participant class for the event type.
// Festivals and tournaments register teams; everything else, including
// unrecognized types, registers individual athletes.
func (t EventType) RegistrationTarget() RegistrationTarget {
	switch t {
	case EventFestival, EventTournament:
		return TargetTeams
	default:
		return TargetAthletes
	}
}

// EventStatus is the lifecycle status of an event. Finished is terminal and
// system-computed; it is never accepted from a client.
type EventStatus string

const (
	StatusScheduled EventStatus = "Scheduled"
	StatusPaused    EventStatus = "Paused"
	StatusCancelled EventStatus = "Cancelled"
	StatusFinished  EventStatus = "Finished"
)

// UserAssignable reports whether a client may submit this status on create or
// update.
func (s EventStatus) UserAssignable() bool {
	switch s {
	case StatusScheduled, StatusPaused, StatusCancelled:
		return true
	}
	return false
}

// Event represents a foundation event on the calendar.
// Dates are date-only; StartTime/EndTime are local clock times in "15:04" form.
// swagger:model Event
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Location    string      `json:"location"`
	Phone       string      `json:"phone"`
	Sponsors    []string    `json:"sponsors"`
	ImageURL    string      `json:"image_url"`
	ScheduleURL string      `json:"schedule_url"`
	Publish     bool        `json:"publish"`
	Type        EventType   `json:"type"`
	CategoryID  string      `json:"category_id"`
	StartDate   time.Time   `json:"start_date"`
	EndDate     time.Time   `json:"end_date"`
	StartTime   string      `json:"start_time"`
	EndTime     string      `json:"end_time"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// clockLayout is the layout for StartTime/EndTime values.
const clockLayout = "15:04"

// dateOnly strips the time-of-day portion of t.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// Validate checks the event's structural invariants: required fields, a known
// type, parseable clock times, end date not before start date, and on a
// single-day event an end time strictly after the start time.
func (e *Event) Validate() error {
	if e.Name == "" || e.CategoryID == "" {
		return ErrInvalidInput
	}
	switch e.Type {
	case EventFestival, EventTournament, EventClosing, EventWorkshop:
	default:
		return ErrInvalidInput
	}
	start, err := time.Parse(clockLayout, e.StartTime)
	if err != nil {
		return ErrInvalidInput
	}
	end, err := time.Parse(clockLayout, e.EndTime)
	if err != nil {
		return ErrInvalidInput
	}
	sd, ed := dateOnly(e.StartDate), dateOnly(e.EndDate)
	if ed.Before(sd) {
		return ErrInvalidInput
	}
	if ed.Equal(sd) && !end.After(start) {
		return ErrInvalidInput
	}
	return nil
}

// HasPassed reports whether the event's end date (date-only) is strictly
// before today. Comparisons are date-only to avoid timezone-boundary flicker.
func (e *Event) HasPassed(now time.Time) bool {
	return dateOnly(e.EndDate).Before(dateOnly(now))
}

// DisplayStatus returns the status to present to the user. The server is the
// authority for the Finished transition; the computed value covers the window
// where the stored status has not caught up.
func (e *Event) DisplayStatus(now time.Time) EventStatus {
	switch e.Status {
	case StatusScheduled, StatusPaused, StatusCancelled:
		if e.HasPassed(now) {
			return StatusFinished
		}
	}
	return e.Status
}

// CanEdit reports whether the event may still be edited. Finished events are
// frozen, and a cancelled event becomes frozen once its date has elapsed; a
// cancelled-but-upcoming event remains editable.
func (e *Event) CanEdit(now time.Time) bool {
	if e.DisplayStatus(now) == StatusFinished {
		return false
	}
	if e.Status == StatusCancelled && e.HasPassed(now) {
		return false
	}
	return true
}

// CanDelete reports whether the event may be deleted. Deletion is always
// permitted regardless of status; permission checks live elsewhere.
func (e *Event) CanDelete(now time.Time) bool {
	return true
}

// CanView reports whether the event may be viewed.
func (e *Event) CanView(now time.Time) bool {
	return true
}

// EventFilter narrows event list queries.
type EventFilter struct {
	From    *time.Time
	To      *time.Time
	Status  *EventStatus
	Type    *EventType
	Publish *bool
	Search  string
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]*Event, error)
	Update(ctx context.Context, event *Event) (*Event, error)
	Delete(ctx context.Context, id string) error
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
}

// EventService defines the business logic for the event lifecycle.
type EventService interface {
	CreateEvent(ctx context.Context, event *Event) error
	GetEventByID(ctx context.Context, eventID string) (*Event, error)
	ListEvents(ctx context.Context, filter EventFilter, params PaginationParams) ([]*Event, int, error)
	UpdateEvent(ctx context.Context, event *Event) (*Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
	CheckNameAvailable(ctx context.Context, name, excludeID string) (bool, error)
}
