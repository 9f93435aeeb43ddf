package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

type athleteRepository struct {
	DB *sql.DB
}

func NewAthleteRepository(db *sql.DB) domain.AthleteRepository {
	return &athleteRepository{
		DB: db,
	}
}

func (r *athleteRepository) GetByID(ctx context.Context, id string) (*domain.FoundationMember, error) {
	query := `
		SELECT id, name, identification, category, age
		FROM athletes
		WHERE id = $1
	`
	m := &domain.FoundationMember{}
	var catNull sql.NullString
	var ageNull sql.NullInt64
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&m.ID, &m.Name, &m.IdentityNumber, &catNull, &ageNull)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	m.Category = catNull.String
	m.Age = int(ageNull.Int64)
	return m, nil
}

func (r *athleteRepository) List(ctx context.Context, filter domain.RosterFilter, params domain.PaginationParams) ([]*domain.FoundationMember, int, error) {
	var where []string
	var args []interface{}
	n := 1
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR identification ILIKE $%d)", n, n))
		args = append(args, "%"+filter.Search+"%")
		n++
	}
	if filter.Category != "" {
		where = append(where, fmt.Sprintf("category = $%d", n))
		args = append(args, filter.Category)
		n++
	}
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM athletes %s`, clause)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, identification, category, age
		FROM athletes %s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, clause, n, n+1)
	args = append(args, params.PageSize, params.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	members := make([]*domain.FoundationMember, 0)
	for rows.Next() {
		m := &domain.FoundationMember{}
		var catNull sql.NullString
		var ageNull sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Name, &m.IdentityNumber, &catNull, &ageNull); err != nil {
			return nil, 0, err
		}
		m.Category = catNull.String
		m.Age = int(ageNull.Int64)
		members = append(members, m)
	}
	return members, total, rows.Err()
}

func (r *athleteRepository) ExistsByIdentification(ctx context.Context, identification, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM athletes WHERE identification = $1 AND ($2 = '' OR id <> $2))`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, identification, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
