package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Upsert is one (student, present) pair applied to a date.
type Upsert struct {
	StudentID string
	Present   bool
}

type Repo interface {
	MarkBatch(ctx context.Context, date time.Time, upserts []Upsert) error
	List(ctx context.Context, date *time.Time, studentID string) ([]Record, error)
}

type Repository struct {
	pool *pgxpool.Pool
}

var _ Repo = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// MarkBatch upserts every pair for the date in one transaction. The
// (student_id, date) uniqueness constraint makes repeats overwrite.
func (r *Repository) MarkBatch(ctx context.Context, date time.Time, upserts []Upsert) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin attendance batch: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
	INSERT INTO attendance (student_id, date, present)
	VALUES ($1, $2, $3)
	ON CONFLICT (student_id, date) DO UPDATE SET present = EXCLUDED.present;`
	for _, u := range upserts {
		if _, err := tx.Exec(ctx, query, u.StudentID, date, u.Present); err != nil {
			return fmt.Errorf("upsert attendance: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit attendance batch: %w", err)
	}
	return nil
}

// List filters by date and/or student; both filters are optional.
func (r *Repository) List(ctx context.Context, date *time.Time, studentID string) ([]Record, error) {
	const query = `
	SELECT student_id, date, present FROM attendance
	WHERE ($1::date IS NULL OR date = $1)
	  AND ($2 = '' OR student_id = $2)
	ORDER BY date, student_id;`

	rows, err := r.pool.Query(ctx, query, date, studentID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0)
	for rows.Next() {
		var rec Record
		var d time.Time
		if err := rows.Scan(&rec.StudentID, &d, &rec.Present); err != nil {
			return nil, fmt.Errorf("scan attendance: %w", err)
		}
		rec.Date = d.Format(DateLayout)
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return out, nil
}
