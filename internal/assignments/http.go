package assignments

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"school-portal/internal/auth"
	"school-portal/internal/httpx"
)

type Handler struct {
	repo Repo
}

func NewHandler(repo Repo) *Handler {
	return &Handler{repo: repo}
}

type createRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	DueAt       string `json:"due_at" validate:"required"`
}

// Create records a new assignment. The creator is the teacher session on
// the request; assignments are immutable once created.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RenderError(w, r, err)
		return
	}

	dueAt, err := time.Parse(time.RFC3339, req.DueAt)
	if err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("due_at must be an RFC3339 timestamp"))
		return
	}

	sess, ok := auth.FromContext(r.Context())
	if !ok {
		httpx.RenderError(w, r, httpx.Unauthorized("session token required"))
		return
	}

	a := &Assignment{
		Title:       req.Title,
		Description: req.Description,
		DueAt:       dueAt,
		CreatedBy:   sess.UserID,
	}
	if err := h.repo.Create(r.Context(), a); err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, a)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}
