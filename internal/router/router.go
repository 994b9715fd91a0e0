package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"school-portal/internal/assignments"
	"school-portal/internal/attendance"
	"school-portal/internal/auth"
	"school-portal/internal/files"
	"school-portal/internal/session"
	"school-portal/internal/submissions"
	"school-portal/internal/timetable"
	"school-portal/internal/users"
)

// Deps carries everything the route table needs. Tests swap the repos for
// in-memory fakes.
type Deps struct {
	Sessions    *session.Registry
	Files       *files.Store
	Users       users.Repo
	Assignments assignments.Repo
	Submissions submissions.Repo
	Timetable   timetable.Repo
	Attendance  attendance.Repo
	CORSOrigins []string
}

// New assembles the portal's route table.
//
// Guard policy: every mutating domain route requires a session; marking,
// publishing and attendance additionally require the teacher role, and
// submitting requires the student role. Reads, signup and login are public.
func New(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Session-Id"},
	}))

	authH := auth.NewHandler(d.Users, d.Sessions)
	usersH := users.NewHandler(d.Users, d.Files)
	assignmentsH := assignments.NewHandler(d.Assignments)
	submissionsH := submissions.NewHandler(d.Submissions, d.Assignments, d.Files)
	timetableH := timetable.NewHandler(d.Timetable, d.Files)
	attendanceH := attendance.NewHandler(d.Attendance)

	anySession := auth.RequireAuth(d.Sessions, "")
	teacherOnly := auth.RequireAuth(d.Sessions, users.RoleTeacher)
	studentOnly := auth.RequireAuth(d.Sessions, users.RoleStudent)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authH.Login)
			r.With(anySession).Post("/logout", authH.Logout)
			r.With(anySession).Get("/check", authH.Check)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", usersH.List)
			r.Post("/", usersH.Create)
			r.Get("/{id}", usersH.Get)
			r.With(anySession).Put("/{id}", usersH.Update)
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", assignmentsH.List)
			r.With(teacherOnly).Post("/", assignmentsH.Create)
		})

		r.Route("/submissions", func(r chi.Router) {
			r.Get("/", submissionsH.List)
			r.With(studentOnly).Post("/", submissionsH.Create)
			r.Get("/{id}/download", submissionsH.Download)
			r.With(teacherOnly).Post("/{id}/mark", submissionsH.Mark)
		})
		r.Get("/marks", submissionsH.Marks)

		r.Route("/timetable", func(r chi.Router) {
			r.Get("/", timetableH.List)
			r.With(teacherOnly).Post("/", timetableH.Publish)
			r.With(teacherOnly).Post("/upload", timetableH.Upload)
			r.With(teacherOnly).Post("/import", timetableH.Import)
			r.Get("/file", timetableH.File)
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Get("/", attendanceH.List)
			r.With(teacherOnly).Post("/", attendanceH.Mark)
			r.With(teacherOnly).Get("/export", attendanceH.Export)
		})
	})

	// stored uploads served back under their category subdirectories
	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(d.Files.Root())))
	r.Get("/uploads/*", uploads.ServeHTTP)

	return r
}
