package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/helljxnn/astrostar-console/internal/domain"
)

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

const eventColumns = `id, name, description, location, phone, sponsors, image_url, schedule_url,
		publish, type, category_id, start_date, end_date, start_time, end_time, status,
		created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	var descNull, locNull, phoneNull, imgNull, schedNull sql.NullString
	err := row.Scan(
		&e.ID, &e.Name, &descNull, &locNull, &phoneNull, pq.Array(&e.Sponsors),
		&imgNull, &schedNull, &e.Publish, &e.Type, &e.CategoryID,
		&e.StartDate, &e.EndDate, &e.StartTime, &e.EndTime, &e.Status,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Description = descNull.String
	e.Location = locNull.String
	e.Phone = phoneNull.String
	e.ImageURL = imgNull.String
	e.ScheduleURL = schedNull.String
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (name, description, location, phone, sponsors, image_url, schedule_url,
			publish, type, category_id, start_date, end_date, start_time, end_time, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Location, e.Phone, pq.Array(e.Sponsors),
		e.ImageURL, e.ScheduleURL, e.Publish, e.Type, e.CategoryID,
		e.StartDate, e.EndDate, e.StartTime, e.EndTime, e.Status,
		e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) List(ctx context.Context, filter domain.EventFilter, params domain.PaginationParams) ([]*domain.Event, int, error) {
	var where []string
	var args []interface{}
	n := 1
	if filter.From != nil {
		where = append(where, fmt.Sprintf("end_date >= $%d", n))
		args = append(args, *filter.From)
		n++
	}
	if filter.To != nil {
		where = append(where, fmt.Sprintf("start_date <= $%d", n))
		args = append(args, *filter.To)
		n++
	}
	if filter.Status != nil {
		where = append(where, fmt.Sprintf("status = $%d", n))
		args = append(args, *filter.Status)
		n++
	}
	if filter.Type != nil {
		where = append(where, fmt.Sprintf("type = $%d", n))
		args = append(args, *filter.Type)
		n++
	}
	if filter.Publish != nil {
		where = append(where, fmt.Sprintf("publish = $%d", n))
		args = append(args, *filter.Publish)
		n++
	}
	if filter.Search != "" {
		where = append(where, fmt.Sprintf("(name ILIKE $%d OR location ILIKE $%d)", n, n))
		args = append(args, "%"+filter.Search+"%")
		n++
	}
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM events %s`, clause)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`SELECT %s FROM events %s ORDER BY start_date DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		eventColumns, clause, n, n+1)
	args = append(args, params.PageSize, params.Offset())
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, e)
	}
	return events, total, rows.Err()
}

func (r *eventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.Event, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM events
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date, start_time
	`, eventColumns)
	rows, err := r.DB.QueryContext(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, e *domain.Event) (*domain.Event, error) {
	query := fmt.Sprintf(`
		UPDATE events SET name = $1, description = $2, location = $3, phone = $4, sponsors = $5,
			image_url = $6, schedule_url = $7, publish = $8, type = $9, category_id = $10,
			start_date = $11, end_date = $12, start_time = $13, end_time = $14, status = $15,
			updated_at = NOW()
		WHERE id = $16
		RETURNING %s
	`, eventColumns)
	updated, err := scanEvent(r.DB.QueryRowContext(ctx, query,
		e.Name, e.Description, e.Location, e.Phone, pq.Array(e.Sponsors),
		e.ImageURL, e.ScheduleURL, e.Publish, e.Type, e.CategoryID,
		e.StartDate, e.EndDate, e.StartTime, e.EndTime, e.Status, e.ID,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *eventRepository) ExistsByName(ctx context.Context, name, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM events WHERE LOWER(name) = LOWER($1) AND ($2 = '' OR id <> $2))`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, name, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
