package http

import (
	"sync"

	"console/internal/core/application/pipeline"

	"github.com/google/uuid"
)

// session is one live intake form: a pipeline plus its notification buffer.
type session struct {
	pipeline *pipeline.Pipeline
	notifier *Collector
}

// sessionRegistry holds the live intake sessions keyed by opaque ID.
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

func (r *sessionRegistry) add(s *session) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.sessions[id] = s
	r.mu.Unlock()
	return id
}

func (r *sessionRegistry) get(id string) (*session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// remove detaches the session and returns it so the caller can close the
// pipeline outside the registry lock.
func (r *sessionRegistry) remove(id string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	return s, ok
}
