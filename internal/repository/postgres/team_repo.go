package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

type teamRepository struct {
	DB *sql.DB
}

func NewTeamRepository(db *sql.DB) domain.TeamRepository {
	return &teamRepository{
		DB: db,
	}
}

func (r *teamRepository) Create(ctx context.Context, t *domain.Team) error {
	query := `
		INSERT INTO teams (name, trainer_id, trainer_source, category_id, member_count)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query, t.Name, t.TrainerID, t.TrainerSource, t.CategoryID, t.MemberCount).
		Scan(&t.ID)
}

func (r *teamRepository) GetByID(ctx context.Context, id string) (*domain.Team, error) {
	query := `
		SELECT id, name, trainer_id, trainer_source, category_id, member_count
		FROM teams
		WHERE id = $1
	`
	t := &domain.Team{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&t.ID, &t.Name, &t.TrainerID, &t.TrainerSource, &t.CategoryID, &t.MemberCount)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *teamRepository) List(ctx context.Context, filter domain.RosterFilter, params domain.PaginationParams) ([]*domain.Team, int, error) {
	var where []string
	var args []interface{}
	n := 1
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("name ILIKE $%d", n))
		args = append(args, "%"+filter.Search+"%")
		n++
	}
	if filter.Category != "" {
		where = append(where, fmt.Sprintf("category_id = $%d", n))
		args = append(args, filter.Category)
		n++
	}
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM teams %s`, clause)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT id, name, trainer_id, trainer_source, category_id, member_count
		FROM teams %s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, clause, n, n+1)
	args = append(args, params.PageSize, params.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	teams := make([]*domain.Team, 0)
	for rows.Next() {
		t := &domain.Team{}
		if err := rows.Scan(&t.ID, &t.Name, &t.TrainerID, &t.TrainerSource, &t.CategoryID, &t.MemberCount); err != nil {
			return nil, 0, err
		}
		teams = append(teams, t)
	}
	return teams, total, rows.Err()
}

func (r *teamRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM teams WHERE LOWER(name) = LOWER($1) AND ($2 = '' OR id <> $2))`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
