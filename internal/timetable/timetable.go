package timetable

type Entry struct {
	ID        int64  `json:"id"`
	Day       string `json:"day"`
	Period    string `json:"period"`
	Subject   string `json:"subject"`
	TeacherID string `json:"teacher_id,omitempty"`
}
