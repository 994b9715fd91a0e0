package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"school-portal/internal/files"
	"school-portal/internal/httpx"
)

type Handler struct {
	repo  Repo
	store *files.Store
}

func NewHandler(repo Repo, store *files.Store) *Handler {
	return &Handler{repo: repo, store: store}
}

type signupRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Role   string `json:"role" validate:"required"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	if !ValidRole(req.Role) {
		httpx.RenderError(w, r, httpx.BadRequest("role must be student or teacher"))
		return
	}

	u := &User{ID: req.UserID, Name: req.Name, Role: req.Role}
	if err := h.repo.Create(r.Context(), u); err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, u)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	if role != "" && !ValidRole(role) {
		httpx.RenderError(w, r, httpx.BadRequest("role must be student or teacher"))
		return
	}

	list, err := h.repo.List(r.Context(), role)
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, list)
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	u, err := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	if u == nil {
		httpx.RenderError(w, r, httpx.NotFound("user not found"))
		return
	}
	render.JSON(w, r, u)
}

// Update changes a user's name and/or photo. Supplying a new photo deletes
// the previous one from disk so only the current photo remains.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	u, err := h.repo.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	if u == nil {
		httpx.RenderError(w, r, httpx.NotFound("user not found"))
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httpx.RenderError(w, r, httpx.BadRequest("invalid multipart form"))
		return
	}

	name := r.FormValue("name")
	photo, header, photoErr := r.FormFile("photo")
	if name == "" && photoErr != nil {
		httpx.RenderError(w, r, httpx.BadRequest("name or photo is required"))
		return
	}

	var stored string
	if photoErr == nil {
		defer photo.Close()
		stored, err = h.store.Save(files.Photo, header.Filename, photo)
		if err != nil {
			httpx.RenderError(w, r, err)
			return
		}
		if u.PhotoPath != nil {
			if err := h.store.Remove(files.Photo, *u.PhotoPath); err != nil {
				slog.Warn("could not delete previous photo", "user_id", u.ID, "err", err)
			}
		}
		u.PhotoPath = &stored
	}
	if name != "" {
		u.Name = name
	}

	if err := h.repo.Update(r.Context(), u); err != nil {
		if stored != "" {
			_ = h.store.Remove(files.Photo, stored)
		}
		httpx.RenderError(w, r, err)
		return
	}
	render.JSON(w, r, u)
}
