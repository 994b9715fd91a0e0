package users

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo is what the handlers (and the auth handlers) need from user storage.
type Repo interface {
	Create(ctx context.Context, u *User) error
	Get(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, role string) ([]User, error)
	Update(ctx context.Context, u *User) error
}

type Repository struct {
	pool *pgxpool.Pool
}

var _ Repo = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	const query = `
	INSERT INTO users (id, name, role)
	VALUES ($1, $2, $3);`

	if _, err := r.pool.Exec(ctx, query, u.ID, u.Name, u.Role); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Get returns nil without error when no user has the id.
func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	const query = `
	SELECT id, name, role, photo_path FROM users WHERE id = $1;`

	row := r.pool.QueryRow(ctx, query, id)
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Role, &u.PhotoPath); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// List returns all users, or only those with the given role when role is
// non-empty.
func (r *Repository) List(ctx context.Context, role string) ([]User, error) {
	const all = `
	SELECT id, name, role, photo_path FROM users ORDER BY id;`
	const byRole = `
	SELECT id, name, role, photo_path FROM users WHERE role = $1 ORDER BY id;`

	var rows pgx.Rows
	var err error
	if role == "" {
		rows, err = r.pool.Query(ctx, all)
	} else {
		rows, err = r.pool.Query(ctx, byRole, role)
	}
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]User, 0)
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Role, &u.PhotoPath); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}

func (r *Repository) Update(ctx context.Context, u *User) error {
	const query = `
	UPDATE users SET name = $2, photo_path = $3 WHERE id = $1;`

	if _, err := r.pool.Exec(ctx, query, u.ID, u.Name, u.PhotoPath); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}
