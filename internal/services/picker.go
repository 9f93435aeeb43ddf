package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/helljxnn/astrostar-console/internal/domain"
	"github.com/helljxnn/astrostar-console/internal/selection"
)

// pickerPageSize is the roster page shown by the participant picker.
const pickerPageSize = 10

// PickerPage is one page of a picker session's filtered roster view plus
// the current selection.
type PickerPage struct {
	SessionID string
	Items     []domain.Participant
	Total     int
	Page      int
	Selection []domain.RegistrationEntry
}

// PickerService owns participant picker sessions. A session wraps one
// selection engine for one event submission; Submit hands the assembled
// entries to the registration flow and discards the session on success, so
// a failed submission keeps the selection for a retry.
type PickerService interface {
	Open(ctx context.Context, eventID string, mode domain.SubmissionMode) (*PickerPage, error)
	Filter(sessionID, term, category string) (*PickerPage, error)
	SetPage(sessionID string, page int) (*PickerPage, error)
	Toggle(sessionID, participantID string) (*PickerPage, error)
	SetCompanions(sessionID, participantID string, companions int) (*PickerPage, error)
	Submit(ctx context.Context, sessionID string, confirmed bool) ([]*domain.Registration, error)
	Close(sessionID string)
}

type pickerSession struct {
	eventID string
	mode    domain.SubmissionMode
	engine  *selection.Engine
}

type pickerService struct {
	eventRepo       domain.EventRepository
	loader          selection.RosterLoader
	registrationSvc domain.RegistrationService
	contextTimeout  time.Duration

	mu       sync.Mutex
	sessions map[string]*pickerSession
}

// NewPickerService creates a PickerService over the roster loader and the
// registration submission flow.
func NewPickerService(eventRepo domain.EventRepository, loader selection.RosterLoader, registrationSvc domain.RegistrationService, timeout time.Duration) PickerService {
	return &pickerService{
		eventRepo:       eventRepo,
		loader:          loader,
		registrationSvc: registrationSvc,
		contextTimeout:  timeout,
		sessions:        make(map[string]*pickerSession),
	}
}

// Open starts a picker session for the event and loads both rosters. Team
// events register whole teams through the direct submission path, so the
// picker only opens for events whose participant class is individuals.
func (s *pickerService) Open(ctx context.Context, eventID string, mode domain.SubmissionMode) (*PickerPage, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if mode == domain.ModeView {
		return nil, domain.ErrForbidden
	}
	if mode != domain.ModeRegister && mode != domain.ModeEdit {
		return nil, domain.ErrInvalidInput
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	target := event.Type.RegistrationTarget()
	if target != domain.TargetAthletes {
		return nil, domain.ErrInvalidInput
	}

	engine := selection.NewEngine(s.loader, selection.MultiSelect, target, pickerPageSize)
	engine.LoadRoster(ctx, domain.SourceFoundation)
	engine.LoadRoster(ctx, domain.SourceTemporal)

	sess := &pickerSession{eventID: eventID, mode: mode, engine: engine}
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	return pickerState(id, sess), nil
}

func (s *pickerService) session(id string) (*pickerSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return sess, nil
}

func (s *pickerService) Filter(sessionID, term, category string) (*PickerPage, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.engine.SetFilter(term, category)
	return pickerState(sessionID, sess), nil
}

func (s *pickerService) SetPage(sessionID string, page int) (*PickerPage, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.engine.SetPage(page)
	return pickerState(sessionID, sess), nil
}

// Toggle selects or deselects the participant. A mixed-source pick has no
// effect on the selection; the returned page reflects whatever the engine
// accepted.
func (s *pickerService) Toggle(sessionID, participantID string) (*PickerPage, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	p, ok := sess.engine.Find(participantID)
	if !ok {
		return nil, domain.ErrNotFound
	}
	sess.engine.Toggle(p)
	return pickerState(sessionID, sess), nil
}

func (s *pickerService) SetCompanions(sessionID, participantID string, companions int) (*PickerPage, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	sess.engine.SetCompanions(participantID, companions)
	return pickerState(sessionID, sess), nil
}

// Submit drives the session's entries into the registration flow. On
// success the session is discarded; on failure it stays open with the
// selection intact.
func (s *pickerService) Submit(ctx context.Context, sessionID string, confirmed bool) ([]*domain.Registration, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}
	regs, err := s.registrationSvc.Submit(ctx, sess.eventID, sess.engine.Entries(), sess.mode, confirmed)
	if err != nil {
		return nil, err
	}
	sess.engine.Clear()
	s.Close(sessionID)
	return regs, nil
}

func (s *pickerService) Close(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

func pickerState(id string, sess *pickerSession) *PickerPage {
	items, total, page := sess.engine.Page()
	return &PickerPage{
		SessionID: id,
		Items:     items,
		Total:     total,
		Page:      page,
		Selection: sess.engine.Entries(),
	}
}
