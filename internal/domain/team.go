package domain

import "context"

// Team groups athletes under a trainer for team-target events. Trainer and
// members must share the same source type.
// swagger:model Team
type Team struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	TrainerID     string     `json:"trainer_id"`
	TrainerSource SourceType `json:"trainer_source"`
	CategoryID    string     `json:"category_id"`
	MemberCount   int        `json:"member_count"`
}

// ValidateTeamComposition rejects a trainer/member combination with mixed
// source types. It runs at submit time, not at each individual pick, because
// trainer and members are chosen via independent sub-flows that can be
// revisited in any order. The returned error names both observed types.
func ValidateTeamComposition(trainer Participant, members []Participant) error {
	if trainer == nil || len(members) == 0 {
		return ErrInvalidInput
	}
	for _, m := range members {
		if m.Source() != trainer.Source() {
			return &MixedSourceError{
				TrainerSource: trainer.Source(),
				MemberSource:  m.Source(),
			}
		}
	}
	return nil
}

// TeamRepository defines the interface for team storage.
type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	GetByID(ctx context.Context, id string) (*Team, error)
	List(ctx context.Context, filter RosterFilter, params PaginationParams) ([]*Team, int, error)
	ExistsByName(ctx context.Context, name, excludeID string) (bool, error)
}

// TeamService defines the business logic for team assembly.
type TeamService interface {
	CreateTeam(ctx context.Context, name, categoryID, trainerID string, trainerSource SourceType, memberIDs []string, memberSource SourceType) (*Team, error)
	GetTeamByID(ctx context.Context, id string) (*Team, error)
	ListTeams(ctx context.Context, filter RosterFilter, params PaginationParams) ([]*Team, int, error)
}
