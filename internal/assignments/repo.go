package assignments

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo interface {
	Create(ctx context.Context, a *Assignment) error
	List(ctx context.Context) ([]Assignment, error)
	Get(ctx context.Context, id int64) (*Assignment, error)
}

type Repository struct {
	pool *pgxpool.Pool
}

var _ Repo = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, a *Assignment) error {
	const query = `
	INSERT INTO assignments (title, description, due_at, created_by)
	VALUES ($1, $2, $3, $4)
	RETURNING id;`

	row := r.pool.QueryRow(ctx, query, a.Title, a.Description, a.DueAt, a.CreatedBy)
	if err := row.Scan(&a.ID); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// List joins the creator's display name and orders by due time ascending.
func (r *Repository) List(ctx context.Context) ([]Assignment, error) {
	const query = `
	SELECT a.id, a.title, a.description, a.due_at, a.created_by, u.name
	FROM assignments a
	JOIN users u ON u.id = a.created_by
	ORDER BY a.due_at ASC;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	out := make([]Assignment, 0)
	for rows.Next() {
		var a Assignment
		if err := rows.Scan(&a.ID, &a.Title, &a.Description, &a.DueAt, &a.CreatedBy, &a.CreatorName); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return out, nil
}

// Get returns nil without error when no assignment has the id.
func (r *Repository) Get(ctx context.Context, id int64) (*Assignment, error) {
	const query = `
	SELECT id, title, description, due_at, created_by FROM assignments WHERE id = $1;`

	row := r.pool.QueryRow(ctx, query, id)
	var a Assignment
	if err := row.Scan(&a.ID, &a.Title, &a.Description, &a.DueAt, &a.CreatedBy); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &a, nil
}
