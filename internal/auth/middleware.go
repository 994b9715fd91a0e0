package auth

import (
	"context"
	"net/http"

	"school-portal/internal/httpx"
	"school-portal/internal/session"
)

type ctxKey struct{}

const headerSessionID = "X-Session-Id"

// TokenFromRequest reads the session token from the X-Session-Id header,
// falling back to the session_id query parameter.
func TokenFromRequest(r *http.Request) string {
	if token := r.Header.Get(headerSessionID); token != "" {
		return token
	}
	return r.URL.Query().Get("session_id")
}

// RequireAuth rejects requests without a known session token, and, when
// role is non-empty, requests whose session has a different role. The
// session ends up on the request context for FromContext.
func RequireAuth(registry *session.Registry, role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				httpx.RenderError(w, r, httpx.Unauthorized("session token required"))
				return
			}
			sess, ok := registry.Lookup(token)
			if !ok {
				httpx.RenderError(w, r, httpx.Unauthorized("invalid session token"))
				return
			}
			if role != "" && sess.Role != role {
				httpx.RenderError(w, r, httpx.Forbidden("requires "+role+" role"))
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
		})
	}
}

// FromContext returns the session RequireAuth stored on the context.
func FromContext(ctx context.Context) (session.Session, bool) {
	sess, ok := ctx.Value(ctxKey{}).(session.Session)
	return sess, ok
}
