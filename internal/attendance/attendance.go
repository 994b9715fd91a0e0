package attendance

// DateLayout is the wire format for attendance dates.
const DateLayout = "2006-01-02"

// Record is one (student, date) attendance fact. The pair is unique:
// marking the same student twice on a date overwrites the flag.
type Record struct {
	StudentID string `json:"student_id"`
	Date      string `json:"date"`
	Present   bool   `json:"present"`
}
