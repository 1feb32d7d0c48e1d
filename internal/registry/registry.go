package registry

import "sync"

// Session is the live connection a participant identity resolves to.
type Session interface {
	SessionID() string
}

// Registry maps participant identities to their active session. One slot
// per identity: a reconnect under the same name overwrites the previous
// mapping without touching the old session itself.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func New() *Registry {
	return &Registry{sessions: make(map[string]Session)}
}

// Register inserts or overwrites the mapping for identity. Latest wins.
func (r *Registry) Register(identity string, s Session) {
	r.mu.Lock()
	r.sessions[identity] = s
	r.mu.Unlock()
}

// Unregister removes the mapping only if it still points at s. A reconnect
// may already have claimed the slot, in which case the old session's
// teardown must not evict the newcomer. Absence is a no-op.
func (r *Registry) Unregister(identity string, s Session) {
	r.mu.Lock()
	if current, ok := r.sessions[identity]; ok && current == s {
		delete(r.sessions, identity)
	}
	r.mu.Unlock()
}

// Lookup returns the session currently registered for identity.
func (r *Registry) Lookup(identity string) (Session, bool) {
	r.mu.RLock()
	s, ok := r.sessions[identity]
	r.mu.RUnlock()
	return s, ok
}

// Len reports how many identities are currently registered.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
