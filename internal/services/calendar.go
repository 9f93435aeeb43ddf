package services

import (
	"context"
	"fmt"
	"time"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

// CalendarDay is one cell of the calendar grid with the events whose date
// range intersects that day and the actions permitted on each.
type CalendarDay struct {
	Date   time.Time            `json:"date"`
	Events []*CalendarGridEvent `json:"events"`
}

// CalendarGridEvent decorates an event with its display status and permitted
// actions for the grid.
type CalendarGridEvent struct {
	Event         *domain.Event       `json:"event"`
	DisplayStatus domain.EventStatus  `json:"display_status"`
	Actions       []domain.ActionKind `json:"actions"`
}

// SlotDraft is the create-form prefill produced by selecting an empty slot.
type SlotDraft struct {
	StartDate time.Time          `json:"start_date"`
	EndDate   time.Time          `json:"end_date"`
	StartTime string             `json:"start_time"`
	EndTime   string             `json:"end_time"`
	Status    domain.EventStatus `json:"status"`
}

// CalendarService maps events onto the day/week/month grid.
type CalendarService interface {
	Grid(ctx context.Context, view domain.CalendarView) ([]*CalendarDay, error)
	SlotDraft(start, end time.Time) SlotDraft
	EventActions(ctx context.Context, eventID string) ([]domain.ActionKind, domain.EventStatus, error)
}

type calendarService struct {
	eventRepo      domain.EventRepository
	now            func() time.Time
	contextTimeout time.Duration
}

// NewCalendarService creates a CalendarService over the event repository.
func NewCalendarService(eventRepo domain.EventRepository, now func() time.Time, timeout time.Duration) CalendarService {
	if now == nil {
		now = time.Now
	}
	return &calendarService{
		eventRepo:      eventRepo,
		now:            now,
		contextTimeout: timeout,
	}
}

// Grid loads the events intersecting the view's range and buckets them per
// day. Every day in the range appears, empty or not, so the grid shape does
// not depend on the data.
func (s *calendarService) Grid(ctx context.Context, view domain.CalendarView) ([]*CalendarDay, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	from, to := view.Range()
	events, err := s.eventRepo.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list events between: %w", err)
	}

	now := s.now()
	var days []*CalendarDay
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := &CalendarDay{Date: d, Events: []*CalendarGridEvent{}}
		for _, e := range events {
			if intersectsDay(e, d) {
				day.Events = append(day.Events, &CalendarGridEvent{
					Event:         e,
					DisplayStatus: e.DisplayStatus(now),
					Actions:       domain.ActionsFor(e, now),
				})
			}
		}
		days = append(days, day)
	}
	return days, nil
}

func intersectsDay(e *domain.Event, day time.Time) bool {
	start := time.Date(e.StartDate.Year(), e.StartDate.Month(), e.StartDate.Day(), 0, 0, 0, 0, day.Location())
	end := time.Date(e.EndDate.Year(), e.EndDate.Month(), e.EndDate.Day(), 0, 0, 0, 0, day.Location())
	return !day.Before(start) && !day.After(end)
}

// SlotDraft pre-fills a create payload from an empty-slot selection, with the
// status defaulted to Scheduled.
func (s *calendarService) SlotDraft(start, end time.Time) SlotDraft {
	if end.Before(start) {
		end = start
	}
	return SlotDraft{
		StartDate: time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location()),
		EndDate:   time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, end.Location()),
		StartTime: start.Format("15:04"),
		EndTime:   end.Format("15:04"),
		Status:    domain.StatusScheduled,
	}
}

// EventActions returns the status-gated action set for one event, as consumed
// by the contextual action menu.
func (s *calendarService) EventActions(ctx context.Context, eventID string) ([]domain.ActionKind, domain.EventStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return nil, "", err
	}
	now := s.now()
	return domain.ActionsFor(event, now), event.DisplayStatus(now), nil
}
