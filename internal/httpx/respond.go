package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

type errResponse struct {
	Error string `json:"error"`
}

// RenderError translates a handler error into the single {"error": msg}
// body every endpoint uses. Errors without a status render as 500 and get
// logged; the 4xx taxonomy passes through silently.
func RenderError(w http.ResponseWriter, r *http.Request, err error) {
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		apiErr = Internal(err)
	}
	if apiErr.Status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	}
	render.Status(r, apiErr.Status)
	render.JSON(w, r, errResponse{Error: apiErr.Message})
}
