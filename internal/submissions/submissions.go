package submissions

import "time"

type Submission struct {
	ID           int64     `json:"id"`
	AssignmentID int64     `json:"assignment_id"`
	StudentID    string    `json:"student_id"`
	StudentName  string    `json:"student_name,omitempty"`
	FilePath     string    `json:"file_path"`
	SubmittedAt  time.Time `json:"submitted_at"`
	Marks        *int      `json:"marks"`
}

// Mark is one graded submission joined with its assignment title, as
// returned by the per-student marks listing.
type Mark struct {
	SubmissionID    int64     `json:"submission_id"`
	AssignmentTitle string    `json:"assignment_title"`
	Marks           int       `json:"marks"`
	SubmittedAt     time.Time `json:"submitted_at"`
}
