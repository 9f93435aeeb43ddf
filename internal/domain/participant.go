package domain

import "context"

// SourceType tags which roster a participant comes from. An event's
// registration must be homogeneous in source type.
type SourceType string

const (
	SourceFoundation SourceType = "foundation"
	SourceTemporal   SourceType = "temporal"
)

// Participant is the identity contract shared by both roster variants. The
// consistency check in team assembly and selection compares Source values,
// never ad hoc field shapes.
type Participant interface {
	ParticipantID() string
	DisplayName() string
	Identification() string
	Source() SourceType
	CategoryName() string
	Years() int
}

// FoundationMember is a permanent-roster athlete, trainer, or staff person.
// swagger:model FoundationMember
type FoundationMember struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	IdentityNumber string `json:"identification"`
	Category       string `json:"category"`
	Age            int    `json:"age"`
}

func (m *FoundationMember) ParticipantID() string  { return m.ID }
func (m *FoundationMember) DisplayName() string    { return m.Name }
func (m *FoundationMember) Identification() string { return m.IdentityNumber }
func (m *FoundationMember) Source() SourceType     { return SourceFoundation }
func (m *FoundationMember) CategoryName() string   { return m.Category }
func (m *FoundationMember) Years() int             { return m.Age }

// TemporaryMember is a person registered for ad hoc participation, tracked
// separately from the permanent roster. It may lack a durable category.
// swagger:model TemporaryMember
type TemporaryMember struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	IdentityNumber string `json:"identification"`
	Category       string `json:"category,omitempty"`
	Age            int    `json:"age"`
}

func (m *TemporaryMember) ParticipantID() string  { return m.ID }
func (m *TemporaryMember) DisplayName() string    { return m.Name }
func (m *TemporaryMember) Identification() string { return m.IdentityNumber }
func (m *TemporaryMember) Source() SourceType     { return SourceTemporal }
func (m *TemporaryMember) CategoryName() string   { return m.Category }
func (m *TemporaryMember) Years() int             { return m.Age }

// RosterFilter narrows roster list queries.
type RosterFilter struct {
	Search   string
	Category string
}

// AthleteRepository defines storage for the permanent (foundation) roster.
type AthleteRepository interface {
	GetByID(ctx context.Context, id string) (*FoundationMember, error)
	List(ctx context.Context, filter RosterFilter, params PaginationParams) ([]*FoundationMember, int, error)
	ExistsByIdentification(ctx context.Context, identification, excludeID string) (bool, error)
}

// TemporaryMemberRepository defines storage for the temporary-persons roster.
type TemporaryMemberRepository interface {
	GetByID(ctx context.Context, id string) (*TemporaryMember, error)
	List(ctx context.Context, filter RosterFilter, params PaginationParams) ([]*TemporaryMember, int, error)
	ExistsByIdentification(ctx context.Context, identification, excludeID string) (bool, error)
}
