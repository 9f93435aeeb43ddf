package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

type registrationRepository struct {
	DB *sql.DB
}

func NewRegistrationRepository(db *sql.DB) domain.RegistrationRepository {
	return &registrationRepository{
		DB: db,
	}
}

func scanRegistration(row interface{ Scan(...any) error }) (*domain.Registration, error) {
	reg := &domain.Registration{}
	var teamNull, partNull, notesNull sql.NullString
	err := row.Scan(
		&reg.ID, &reg.EventID, &teamNull, &partNull, &reg.ParticipantSource,
		&reg.Status, &reg.Companions, &reg.RegisteredAt, &notesNull,
	)
	if err != nil {
		return nil, err
	}
	reg.TeamID = teamNull.String
	reg.ParticipantID = partNull.String
	reg.Notes = notesNull.String
	return reg, nil
}

const registrationColumns = `id, event_id, team_id, participant_id, participant_source,
		status, companions, registration_date, notes`

func (r *registrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	query := `
		INSERT INTO registrations (event_id, team_id, participant_id, participant_source,
			status, companions, registration_date, notes)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		reg.EventID, reg.TeamID, reg.ParticipantID, reg.ParticipantSource,
		reg.Status, reg.Companions, reg.RegisteredAt, reg.Notes,
	).Scan(&reg.ID)
}

func (r *registrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	query := fmt.Sprintf(`SELECT %s FROM registrations WHERE id = $1`, registrationColumns)
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

func (r *registrationRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.Registration, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM registrations
		WHERE event_id = $1
		ORDER BY registration_date DESC
	`, registrationColumns)
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	regs := make([]*domain.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (r *registrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) (*domain.Registration, error) {
	query := fmt.Sprintf(`
		UPDATE registrations SET status = $1
		WHERE id = $2
		RETURNING %s
	`, registrationColumns)
	reg, err := scanRegistration(r.DB.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return reg, nil
}

// ReplaceForEvent swaps the event's registration set in one transaction.
func (r *registrationRepository) ReplaceForEvent(ctx context.Context, eventID string, regs []*domain.Registration) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE event_id = $1`, eventID); err != nil {
		return err
	}
	insert := `
		INSERT INTO registrations (event_id, team_id, participant_id, participant_source,
			status, companions, registration_date, notes)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7, $8)
		RETURNING id
	`
	for _, reg := range regs {
		if err := tx.QueryRowContext(ctx, insert,
			eventID, reg.TeamID, reg.ParticipantID, reg.ParticipantSource,
			reg.Status, reg.Companions, reg.RegisteredAt, reg.Notes,
		).Scan(&reg.ID); err != nil {
			return err
		}
	}
	return tx.Commit()
}
