package auth

import (
	"net/http"

	"github.com/go-chi/render"

	"school-portal/internal/httpx"
	"school-portal/internal/session"
	"school-portal/internal/users"
)

type Handler struct {
	users    users.Repo
	sessions *session.Registry
}

func NewHandler(userRepo users.Repo, registry *session.Registry) *Handler {
	return &Handler{users: userRepo, sessions: registry}
}

type loginRequest struct {
	UserID   string `json:"user_id" validate:"required"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required"`
}

type loginResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
	Role      string `json:"role"`
}

// Login checks that a user with the given id and role exists and opens a
// session for it. The password must be present but its value is never
// compared against anything; the portal stores no credentials.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpx.DecodeValid(r, &req); err != nil {
		httpx.RenderError(w, r, err)
		return
	}

	u, err := h.users.Get(r.Context(), req.UserID)
	if err != nil {
		httpx.RenderError(w, r, err)
		return
	}
	if u == nil || u.Role != req.Role {
		httpx.RenderError(w, r, httpx.Unauthorized("invalid credentials"))
		return
	}

	token := h.sessions.Create(u.ID, u.Name, u.Role)
	render.JSON(w, r, loginResponse{
		Success:   true,
		SessionID: token,
		Name:      u.Name,
		Role:      u.Role,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.sessions.Revoke(TokenFromRequest(r))
	render.JSON(w, r, map[string]bool{"success": true})
}

// Check echoes the session back, confirming the token is still valid.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	sess, ok := FromContext(r.Context())
	if !ok {
		httpx.RenderError(w, r, httpx.Unauthorized("session token required"))
		return
	}
	render.JSON(w, r, sess)
}
