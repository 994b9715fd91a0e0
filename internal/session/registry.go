package session

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Session is the snapshot of a logged-in user taken at login time.
type Session struct {
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Registry maps opaque tokens to sessions. It lives in process memory only,
// so restarting the server logs everyone out. A token is valid exactly as
// long as it is present here.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Create issues a fresh token for the user. The token is the current time
// in base 36 joined with a random UUID, which keeps it unguessable for the
// lifetime of the process.
func (r *Registry) Create(userID, name, role string) string {
	token := strconv.FormatInt(time.Now().UnixMilli(), 36) + "-" + uuid.NewString()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = Session{
		UserID:    userID,
		Name:      name,
		Role:      role,
		CreatedAt: time.Now(),
	}
	return token
}

// Lookup resolves a token to its session, if the token is known.
func (r *Registry) Lookup(token string) (Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[token]
	return sess, ok
}

// Revoke drops a token. Revoking an unknown token is a no-op.
func (r *Registry) Revoke(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, token)
}
