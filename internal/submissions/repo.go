package submissions

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo interface {
	Create(ctx context.Context, s *Submission) error
	ListByAssignment(ctx context.Context, assignmentID int64) ([]Submission, error)
	Get(ctx context.Context, id int64) (*Submission, error)
	SetMarks(ctx context.Context, id int64, marks int) error
	MarksByStudent(ctx context.Context, studentID string) ([]Mark, error)
}

type Repository struct {
	pool *pgxpool.Pool
}

var _ Repo = (*Repository)(nil)

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) Create(ctx context.Context, s *Submission) error {
	const query = `
	INSERT INTO submissions (assignment_id, student_id, file_path)
	VALUES ($1, $2, $3)
	RETURNING id, submitted_at;`

	row := r.pool.QueryRow(ctx, query, s.AssignmentID, s.StudentID, s.FilePath)
	if err := row.Scan(&s.ID, &s.SubmittedAt); err != nil {
		return fmt.Errorf("create submission: %w", err)
	}
	return nil
}

// ListByAssignment joins the student's display name and orders by
// submission time ascending.
func (r *Repository) ListByAssignment(ctx context.Context, assignmentID int64) ([]Submission, error) {
	const query = `
	SELECT s.id, s.assignment_id, s.student_id, u.name, s.file_path, s.submitted_at, s.marks
	FROM submissions s
	JOIN users u ON u.id = s.student_id
	WHERE s.assignment_id = $1
	ORDER BY s.submitted_at ASC;`

	rows, err := r.pool.Query(ctx, query, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	defer rows.Close()

	out := make([]Submission, 0)
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.StudentName, &s.FilePath, &s.SubmittedAt, &s.Marks); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list submissions: %w", err)
	}
	return out, nil
}

// Get returns nil without error when no submission has the id.
func (r *Repository) Get(ctx context.Context, id int64) (*Submission, error) {
	const query = `
	SELECT id, assignment_id, student_id, file_path, submitted_at, marks
	FROM submissions WHERE id = $1;`

	row := r.pool.QueryRow(ctx, query, id)
	var s Submission
	if err := row.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.FilePath, &s.SubmittedAt, &s.Marks); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get submission: %w", err)
	}
	return &s, nil
}

// SetMarks updates the score. Updating an id that does not exist affects
// zero rows and is not an error.
func (r *Repository) SetMarks(ctx context.Context, id int64, marks int) error {
	const query = `
	UPDATE submissions SET marks = $2 WHERE id = $1;`

	if _, err := r.pool.Exec(ctx, query, id, marks); err != nil {
		return fmt.Errorf("set marks: %w", err)
	}
	return nil
}

// MarksByStudent returns the student's graded submissions joined with
// their assignment titles.
func (r *Repository) MarksByStudent(ctx context.Context, studentID string) ([]Mark, error) {
	const query = `
	SELECT s.id, a.title, s.marks, s.submitted_at
	FROM submissions s
	JOIN assignments a ON a.id = s.assignment_id
	WHERE s.student_id = $1 AND s.marks IS NOT NULL
	ORDER BY s.submitted_at ASC;`

	rows, err := r.pool.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	defer rows.Close()

	out := make([]Mark, 0)
	for rows.Next() {
		var m Mark
		if err := rows.Scan(&m.SubmissionID, &m.AssignmentTitle, &m.Marks, &m.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan mark: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return out, nil
}
