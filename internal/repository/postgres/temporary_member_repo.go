package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

type temporaryMemberRepository struct {
	DB *sql.DB
}

func NewTemporaryMemberRepository(db *sql.DB) domain.TemporaryMemberRepository {
	return &temporaryMemberRepository{
		DB: db,
	}
}

func (r *temporaryMemberRepository) GetByID(ctx context.Context, id string) (*domain.TemporaryMember, error) {
	query := `
		SELECT id, name, identification, category, age
		FROM temporary_members
		WHERE id = $1
	`
	m := &domain.TemporaryMember{}
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

// List ignores filter.Category: temporary members carry no reliable category.
func (r *temporaryMemberRepository) List(ctx context.Context, filter domain.RosterFilter, params domain.PaginationParams) ([]*domain.TemporaryMember, int, error) {
	clause := ""
	var args []interface{}
	n := 1
	if filter.Search != "" {
		clause = fmt.Sprintf("WHERE (name ILIKE $%d OR identification ILIKE $%d)", n, n)
		args = append(args, "%"+filter.Search+"%")
		n++
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM temporary_members %s`, clause)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, identification, category, age
		FROM temporary_members %s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, clause, n, n+1)
	args = append(args, params.PageSize, params.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	members := make([]*domain.TemporaryMember, 0)
	for rows.Next() {
		m := &domain.TemporaryMember{}
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

func (r *temporaryMemberRepository) ExistsByIdentification(ctx context.Context, identification, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM temporary_members WHERE identification = $1 AND ($2 = '' OR id <> $2))`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, identification, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
