package submissions

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"school-portal/internal/assignments"
	"school-portal/internal/auth"
	"school-portal/internal/files"
	"school-portal/internal/httpx"
)

// AssignmentSource resolves the assignment a submission targets.
type AssignmentSource interface {
	Get(ctx context.Context, id int64) (*assignments.Assignment, error)
}

type Handler struct {
	repo        Repo
	assignments AssignmentSource
	store       *files.Store
}

func NewHandler(repo Repo, source AssignmentSource, store *files.Store) *Handler {
	return &Handler{repo: repo, assignments: source, store: store}
}

// Create accepts a multipart submission: assignment_id plus a file field.
// A student may submit the same assignment more than once; each upload
// becomes its own row. Submissions after the due time are accepted as-is.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("invalid multipart form"))
		return
	}

	idStr := r.FormValue("assignment_id")
	if idStr == "" {
		httpx.RenderError(w, r, httpx.BadRequest("assignment_id is required"))
		return
	}
	assignmentID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("invalid assignment_id"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("file is required"))
		return
	}
	defer file.Close()

	a, err := h.assignments.Get(r.Context(), assignmentID)
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	if a == nil {
		httpx.RenderError(w, r, httpx.NotFound("assignment not found"))
		return
	}

	sess, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.RenderError(w, r, httpx.Unauthorized("session token required"))
		return
	}

	if time.Now().After(a.DueAt) {
		// late submissions carry no penalty; only the log notices
		slog.Debug("late submission", "assignment_id", a.ID, "student_id", sess.UserID)
	}

	stored, err := h.store.Save(files.Submission, header.Filename, file)
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}

	sub := &Submission{
		AssignmentID: assignmentID,
		StudentID:    sess.UserID,
		FilePath:     stored,
	}
	if err := h.repo.Create(r.Context(), sub); err != nil {
		// do not leave the upload orphaned on disk
		_ = h.store.Remove(files.Submission, stored)
		httpx.RenderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, sub)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	idStr := r.URL.Query().Get("assignment_id")
	if idStr == "" {
		httpx.RenderError(w, r, httpx.BadRequest("assignment_id is required"))
		return
	}
	assignmentID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("invalid assignment_id"))
		return
	}

	list, err := h.repo.ListByAssignment(r.Context(), assignmentID)
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

// Download streams the stored file back with its upload name in the
// content disposition.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("invalid id"))
		return
	}

	sub, err := h.repo.Get(r.Context(), id)
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	if sub == nil {
		httpx.RenderError(w, r, httpx.NotFound("submission not found"))
		return
	}

	f, err := h.store.Open(files.Submission, sub.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			httpx.RenderError(w, r, httpx.NotFound("submission file missing"))
			return
		}
		httpx.RenderError(w, r, err)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", `attachment; filename="`+files.OriginalName(sub.FilePath)+`"`)
	if _, err := io.Copy(w, f); err != nil {
		slog.Error("failed to stream submission", "id", sub.ID, "err", err)
	}
}

type markRequest struct {
	Marks *int `json:"marks" validate:"required"`
}

// Mark sets the score. There is no range check, and marking an id with no
// row behind it is a no-op reported as success.
func (h *Handler) Mark(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("invalid id"))
		return
	}

	var req markRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RenderError(w, r, err)
		return
	}

	if err := h.repo.SetMarks(r.Context(), id, *req.Marks); err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]bool{"success": true})
}

func (h *Handler) Marks(w http.ResponseWriter, r *http.Request) {
	studentID := r.URL.Query().Get("student_id")
	if studentID == "" {
		httpx.RenderError(w, r, httpx.BadRequest("student_id is required"))
		return
	}

	list, err := h.repo.MarksByStudent(r.Context(), studentID)
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}
