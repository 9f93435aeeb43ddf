package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/helljxnn/astrostar-console/internal/domain"
	"github.com/helljxnn/astrostar-console/internal/projection"
)

type eventService struct {
	eventRepo      domain.EventRepository
	registrations  *projection.Registrations
	now            func() time.Time
	contextTimeout time.Duration
}

// NewEventService creates an EventService. now is injectable so the
// date-dependent gating rules are testable; pass time.Now in production.
func NewEventService(eventRepo domain.EventRepository, registrations *projection.Registrations, now func() time.Time, timeout time.Duration) domain.EventService {
	if now == nil {
		now = time.Now
	}
	return &eventService{
		eventRepo:      eventRepo,
		registrations:  registrations,
		now:            now,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.Status == "" {
		event.Status = domain.StatusScheduled
	}
	if !event.Status.UserAssignable() {
		return domain.ErrInvalidInput
	}
	if err := event.Validate(); err != nil {
		return err
	}

	taken, err := s.eventRepo.ExistsByName(ctx, event.Name, "")
	if err != nil {
		return fmt.Errorf("check event name: %w", err)
	}
	if taken {
		return domain.ErrConflict
	}

	event.CreatedAt = s.now()
	event.UpdatedAt = s.now()
	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, total, err := s.eventRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, total, nil
}

// UpdateEvent applies the edit after re-checking the gating rules against the
// stored row: a finished event, or a cancelled event whose date has elapsed,
// is frozen except for deletion. The returned event is the authoritative row
// after the write.
func (s *eventService) UpdateEvent(ctx context.Context, event *domain.Event) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	stored, err := s.eventRepo.GetByID(ctx, event.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if !stored.CanEdit(s.now()) {
		return nil, domain.ErrEventLocked
	}
	if !event.Status.UserAssignable() {
		return nil, domain.ErrInvalidInput
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}

	if !strings.EqualFold(event.Name, stored.Name) {
		taken, err := s.eventRepo.ExistsByName(ctx, event.Name, event.ID)
		if err != nil {
			return nil, fmt.Errorf("check event name: %w", err)
		}
		if taken {
			return nil, domain.ErrConflict
		}
	}

	event.UpdatedAt = s.now()
	updated, err := s.eventRepo.Update(ctx, event)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

// DeleteEvent removes the event. Deletion is permitted regardless of status;
// only the external permission check (auth middleware) stands in the way.
func (s *eventService) DeleteEvent(ctx context.Context, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}

	// The projection keys on event and participant class; the event row is
	// gone, so clear both classes.
	s.registrations.Drop(eventID, domain.TargetTeams)
	s.registrations.Drop(eventID, domain.TargetAthletes)
	return nil
}

func (s *eventService) CheckNameAvailable(ctx context.Context, name, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" {
		return false, domain.ErrInvalidInput
	}
	taken, err := s.eventRepo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return false, fmt.Errorf("check event name: %w", err)
	}
	return !taken, nil
}
