package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

type teamService struct {
	teamRepo       domain.TeamRepository
	athleteRepo    domain.AthleteRepository
	temporaryRepo  domain.TemporaryMemberRepository
	contextTimeout time.Duration
}

// NewTeamService creates a TeamService over the team and roster repositories.
func NewTeamService(
	teamRepo domain.TeamRepository,
	athleteRepo domain.AthleteRepository,
	temporaryRepo domain.TemporaryMemberRepository,
	timeout time.Duration,
) domain.TeamService {
	return &teamService{
		teamRepo:       teamRepo,
		athleteRepo:    athleteRepo,
		temporaryRepo:  temporaryRepo,
		contextTimeout: timeout,
	}
}

// CreateTeam assembles a team from a trainer and members chosen in
// independent sub-flows. The composition check runs here, before anything is
// persisted, and surfaces the observed source types on a mismatch.
func (s *teamService) CreateTeam(ctx context.Context, name, categoryID, trainerID string, trainerSource domain.SourceType, memberIDs []string, memberSource domain.SourceType) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	name = strings.TrimSpace(name)
	if name == "" || categoryID == "" || trainerID == "" {
		return nil, domain.ErrInvalidInput
	}

	trainer, err := s.resolve(ctx, trainerID, trainerSource)
	if err != nil {
		return nil, err
	}
	members := make([]domain.Participant, 0, len(memberIDs))
	for _, id := range memberIDs {
		m, err := s.resolve(ctx, id, memberSource)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := domain.ValidateTeamComposition(trainer, members); err != nil {
		return nil, err
	}

	taken, err := s.teamRepo.ExistsByName(ctx, name, "")
	if err != nil {
		return nil, fmt.Errorf("check team name: %w", err)
	}
	if taken {
		return nil, domain.ErrConflict
	}

	team := &domain.Team{
		Name:          name,
		TrainerID:     trainerID,
		TrainerSource: trainer.Source(),
		CategoryID:    categoryID,
		MemberCount:   len(members),
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("create team: %w", err)
	}
	return team, nil
}

func (s *teamService) resolve(ctx context.Context, id string, source domain.SourceType) (domain.Participant, error) {
	switch source {
	case domain.SourceFoundation:
		m, err := s.athleteRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get foundation member: %w", err)
		}
		return m, nil
	case domain.SourceTemporal:
		m, err := s.temporaryRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.ErrNotFound
			}
			return nil, fmt.Errorf("get temporary member: %w", err)
		}
		return m, nil
	}
	return nil, domain.ErrInvalidInput
}

func (s *teamService) GetTeamByID(ctx context.Context, id string) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get team: %w", err)
	}
	return team, nil
}

func (s *teamService) ListTeams(ctx context.Context, filter domain.RosterFilter, params domain.PaginationParams) ([]*domain.Team, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	teams, total, err := s.teamRepo.List(ctx, filter, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list teams: %w", err)
	}
	if teams == nil {
		teams = []*domain.Team{}
	}
	return teams, total, nil
}
