package services

import (
	"context"
	"fmt"
	"time"

	"github.com/helljxnn/astrostar-console/internal/domain"
	"github.com/helljxnn/astrostar-console/internal/selection"
)

// rosterLoaderPageSize bounds how much of a roster one load pulls for the
// selection engine's client-side filtering.
const rosterLoaderPageSize = 500

// RosterService exposes both rosters to the delivery layer and implements
// selection.RosterLoader for the picker engine.
type RosterService interface {
	Load(ctx context.Context, source domain.SourceType, target domain.RegistrationTarget) ([]domain.Participant, error)
	ListFoundation(ctx context.Context, filter domain.RosterFilter, params domain.PaginationParams) ([]*domain.FoundationMember, int, error)
	ListTemporary(ctx context.Context, filter domain.RosterFilter, params domain.PaginationParams) ([]*domain.TemporaryMember, int, error)
	CheckIdentificationAvailable(ctx context.Context, source domain.SourceType, identification, excludeID string) (bool, error)
}

type rosterService struct {
	athleteRepo    domain.AthleteRepository
	temporaryRepo  domain.TemporaryMemberRepository
	contextTimeout time.Duration
}

var _ selection.RosterLoader = (*rosterService)(nil)

// NewRosterService creates a RosterService over both roster repositories.
func NewRosterService(athleteRepo domain.AthleteRepository, temporaryRepo domain.TemporaryMemberRepository, timeout time.Duration) RosterService {
	return &rosterService{
		athleteRepo:    athleteRepo,
		temporaryRepo:  temporaryRepo,
		contextTimeout: timeout,
	}
}

// Load fetches one roster for the selection engine. Errors propagate; the
// engine degrades them to an empty roster so the picker stays usable.
func (s *rosterService) Load(ctx context.Context, source domain.SourceType, target domain.RegistrationTarget) ([]domain.Participant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	params := domain.PaginationParams{Page: 1, PageSize: rosterLoaderPageSize}
	switch source {
	case domain.SourceFoundation:
		members, _, err := s.athleteRepo.List(ctx, domain.RosterFilter{}, params)
		if err != nil {
			return nil, fmt.Errorf("list foundation roster: %w", err)
		}
		out := make([]domain.Participant, 0, len(members))
		for _, m := range members {
			out = append(out, m)
		}
		return out, nil
	case domain.SourceTemporal:
		members, _, err := s.temporaryRepo.List(ctx, domain.RosterFilter{}, params)
		if err != nil {
			return nil, fmt.Errorf("list temporary roster: %w", err)
		}
		out := make([]domain.Participant, 0, len(members))
		for _, m := range members {
			out = append(out, m)
		}
		return out, nil
	}
	return nil, domain.ErrInvalidInput
}

func (s *rosterService) ListFoundation(ctx context.Context, filter domain.RosterFilter, params domain.PaginationParams) ([]*domain.FoundationMember, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	members, total, err := s.athleteRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list foundation roster: %w", err)
	}
	if members == nil {
		members = []*domain.FoundationMember{}
	}
	return members, total, nil
}

func (s *rosterService) ListTemporary(ctx context.Context, filter domain.RosterFilter, params domain.PaginationParams) ([]*domain.TemporaryMember, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// Temporary rosters carry no reliable category; the filter applies
	// search only.
	filter.Category = ""
	members, total, err := s.temporaryRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list temporary roster: %w", err)
	}
	if members == nil {
		members = []*domain.TemporaryMember{}
	}
	return members, total, nil
}

func (s *rosterService) CheckIdentificationAvailable(ctx context.Context, source domain.SourceType, identification, excludeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if identification == "" {
		return false, domain.ErrInvalidInput
	}
	var (
		taken bool
		err   error
	)
	switch source {
	case domain.SourceFoundation:
		taken, err = s.athleteRepo.ExistsByIdentification(ctx, identification, excludeID)
	case domain.SourceTemporal:
		taken, err = s.temporaryRepo.ExistsByIdentification(ctx, identification, excludeID)
	default:
		return false, domain.ErrInvalidInput
	}
	if err != nil {
		return false, fmt.Errorf("check identification: %w", err)
	}
	return !taken, nil
}
