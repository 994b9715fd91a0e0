package timetable

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo interface {
	List(ctx context.Context) ([]Entry, error)
	Replace(ctx context.Context, entries []Entry) error
}

type Repository struct {
	pool *pgxpool.Pool
}

var _ Repo = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) List(ctx context.Context) ([]Entry, error) {
	const query = `
	SELECT id, day, period, subject, COALESCE(teacher_id, '')
	FROM timetable ORDER BY id;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Day, &e.Period, &e.Subject, &e.TeacherID); err != nil {
			return nil, fmt.Errorf("scan timetable entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list timetable: %w", err)
	}
	return out, nil
}

// Replace swaps the whole timetable for the given entries in one
// transaction, so readers see either the old schedule or the new one.
func (r *Repository) Replace(ctx context.Context, entries []Entry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM timetable;`); err != nil {
		return fmt.Errorf("clear timetable: %w", err)
	}

	const insert = `
	INSERT INTO timetable (day, period, subject, teacher_id)
	VALUES ($1, $2, $3, NULLIF($4, ''));`
	for _, e := range entries {
		if _, err := tx.Exec(ctx, insert, e.Day, e.Period, e.Subject, e.TeacherID); err != nil {
			return fmt.Errorf("insert timetable entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace: %w", err)
	}
	return nil
}
