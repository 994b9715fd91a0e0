package storage

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		role       TEXT NOT NULL CHECK (role IN ('student', 'teacher')),
		photo_path TEXT
	);`,
	`CREATE TABLE IF NOT EXISTS assignments (
		id          BIGSERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		due_at      TIMESTAMPTZ NOT NULL,
		created_by  TEXT NOT NULL REFERENCES users (id)
	);`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id            BIGSERIAL PRIMARY KEY,
		assignment_id BIGINT NOT NULL REFERENCES assignments (id),
		student_id    TEXT NOT NULL REFERENCES users (id),
		file_path     TEXT NOT NULL,
		submitted_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
		marks         INTEGER
	);`,
	`CREATE TABLE IF NOT EXISTS timetable (
		id         BIGSERIAL PRIMARY KEY,
		day        TEXT NOT NULL,
		period     TEXT NOT NULL,
		subject    TEXT NOT NULL,
		teacher_id TEXT REFERENCES users (id)
	);`,
	`CREATE TABLE IF NOT EXISTS attendance (
		student_id TEXT NOT NULL REFERENCES users (id),
		date       DATE NOT NULL,
		present    BOOLEAN NOT NULL,
		UNIQUE (student_id, date)
	);`,
}

// Bootstrap creates the portal schema and, when asked, seeds demo users.
// Callers treat a failure here as fatal.
func Bootstrap(ctx context.Context, pool *pgxpool.Pool, seedDemo bool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	if seedDemo {
		if err := seed(ctx, pool); err != nil {
			return fmt.Errorf("seed demo data: %w", err)
		}
	}
	return nil
}

// seed inserts a demo teacher and two demo students, but only into an
// empty users table.
func seed(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT count(*) FROM users;`).Scan(&count); err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	demo := [][3]string{
		{"t1", "Priya Sharma", "teacher"},
		{"s1", "Arjun Mehta", "student"},
		{"s2", "Neha Gupta", "student"},
	}
	for _, u := range demo {
		if _, err := pool.Exec(ctx,
			`INSERT INTO users (id, name, role) VALUES ($1, $2, $3);`,
			u[0], u[1], u[2]); err != nil {
			return fmt.Errorf("insert demo user %s: %w", u[0], err)
		}
	}
	slog.Info("seeded demo users", "count", len(demo))
	return nil
}
