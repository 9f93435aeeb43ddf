package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/helljxnn/astrostar-console/internal/domain"
	"github.com/helljxnn/astrostar-console/internal/projection"
)

type registrationService struct {
	eventRepo        domain.EventRepository
	registrationRepo domain.RegistrationRepository
	teamRepo         domain.TeamRepository
	registrations    *projection.Registrations
	emailService     domain.EmailService
	now              func() time.Time
	contextTimeout   time.Duration
}

// NewRegistrationService creates a RegistrationService. emailService may be
// nil; confirmation mails are best-effort and never fail a submission.
func NewRegistrationService(
	eventRepo domain.EventRepository,
	registrationRepo domain.RegistrationRepository,
	teamRepo domain.TeamRepository,
	registrations *projection.Registrations,
	emailService domain.EmailService,
	now func() time.Time,
	timeout time.Duration,
) domain.RegistrationService {
	if now == nil {
		now = time.Now
	}
	return &registrationService{
		eventRepo:        eventRepo,
		registrationRepo: registrationRepo,
		teamRepo:         teamRepo,
		registrations:    registrations,
		emailService:     emailService,
		now:              now,
		contextTimeout:   timeout,
	}
}

// Submit persists the selection for the event. Validation failures and
// persistence failures leave the projection untouched, so the caller's
// selection survives for a retry.
func (s *registrationService) Submit(ctx context.Context, eventID string, entries []domain.RegistrationEntry, mode domain.SubmissionMode, confirmed bool) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if mode == domain.ModeView {
		return nil, domain.ErrForbidden
	}
	if mode == domain.ModeEdit && !confirmed {
		return nil, domain.ErrConfirmationRequired
	}
	if len(entries) == 0 {
		return nil, domain.ErrEmptySelection
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	target := event.Type.RegistrationTarget()
	if err := s.validateEntries(ctx, target, entries); err != nil {
		return nil, err
	}

	now := s.now()
	regs := make([]*domain.Registration, 0, len(entries))
	for _, entry := range entries {
		regs = append(regs, &domain.Registration{
			EventID:           eventID,
			TeamID:            entry.TeamID,
			ParticipantID:     entry.ParticipantID,
			ParticipantSource: entry.Source,
			Status:            domain.RegStatusRegistered,
			Companions:        domain.ClampCompanions(entry.Companions),
			RegisteredAt:      now,
			Notes:             entry.Notes,
		})
	}

	switch mode {
	case domain.ModeRegister:
		for _, reg := range regs {
			if err := s.registrationRepo.Create(ctx, reg); err != nil {
				return nil, fmt.Errorf("create registration: %w", err)
			}
		}
		// A register-mode submission only adds rows, so the created set is
		// appended without re-reading the whole event.
		s.registrations.Append(eventID, target, regs)
	case domain.ModeEdit:
		if err := s.registrationRepo.ReplaceForEvent(ctx, eventID, regs); err != nil {
			return nil, fmt.Errorf("replace registrations: %w", err)
		}
		if err := s.refreshProjection(ctx, eventID, target); err != nil {
			return nil, err
		}
	default:
		return nil, domain.ErrInvalidInput
	}

	if s.emailService != nil {
		data := &domain.RegistrationEmailData{
			EventName: event.Name,
			EventDate: event.StartDate.Format("2006-01-02"),
		}
		if err := s.emailService.SendRegistrationConfirmation(ctx, data); err != nil {
			// Best-effort: a failed mail never rolls back a registration.
		}
	}

	return regs, nil
}

// validateEntries checks entry shape and source homogeneity. Submission is
// the last gate before persistence, so the check runs here even though the
// selection engine already blocks mixed picks.
func (s *registrationService) validateEntries(ctx context.Context, target domain.RegistrationTarget, entries []domain.RegistrationEntry) error {
	first := entries[0].Source
	for _, entry := range entries {
		if entry.Source != first {
			return domain.ErrInvalidInput
		}
		switch target {
		case domain.TargetTeams:
			if entry.TeamID == "" || entry.ParticipantID != "" {
				return domain.ErrInvalidInput
			}
			team, err := s.teamRepo.GetByID(ctx, entry.TeamID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return domain.ErrNotFound
				}
				return fmt.Errorf("get team: %w", err)
			}
			if team.TrainerSource != entry.Source {
				return &domain.MixedSourceError{
					TrainerSource: team.TrainerSource,
					MemberSource:  entry.Source,
				}
			}
		case domain.TargetAthletes:
			if entry.ParticipantID == "" || entry.TeamID != "" {
				return domain.ErrInvalidInput
			}
		}
	}
	return nil
}

func (s *registrationService) refreshProjection(ctx context.Context, eventID string, target domain.RegistrationTarget) error {
	stored, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("list registrations: %w", err)
	}
	s.registrations.Replace(eventID, target, stored)
	return nil
}

func (s *registrationService) ListByEvent(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	regs, err := s.registrationRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	if regs == nil {
		regs = []*domain.Registration{}
	}
	s.registrations.Replace(eventID, event.Type.RegistrationTarget(), regs)
	return regs, nil
}

func (s *registrationService) AdvanceStatus(ctx context.Context, registrationID string, next domain.RegistrationStatus) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.registrationRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get registration: %w", err)
	}
	if err := reg.Advance(next); err != nil {
		return nil, err
	}
	updated, err := s.registrationRepo.UpdateStatus(ctx, registrationID, next)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update registration status: %w", err)
	}

	event, err := s.eventRepo.GetByID(ctx, updated.EventID)
	if err == nil {
		_ = s.refreshProjection(ctx, updated.EventID, event.Type.RegistrationTarget())
	}
	return updated, nil
}
