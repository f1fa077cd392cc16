package server

import "sync"

// Registry is the single source of truth for who is online: an
// insertion-ordered mapping from username to the session that delivers
// records to that user. All access goes through the mutex; callers never
// touch the map directly.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	order    []string
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Add inserts the session under its username. A concurrent second login with
// the same name overwrites the existing entry (last-writer-wins) and keeps
// its position in the ordering; the displaced session is returned so the
// caller can log it. The displaced connection stays open.
func (r *Registry) Add(sess *Session) (displaced *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	old, exists := r.sessions[sess.Username]
	r.sessions[sess.Username] = sess
	if exists {
		return old
	}

	r.order = append(r.order, sess.Username)
	return nil
}

// Remove deletes the session's entry if it still owns it. Removing an absent
// username is a no-op, and a session displaced by a later login cannot evict
// its successor.
func (r *Registry) Remove(sess *Session) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[sess.Username]
	if !ok || current != sess {
		return false
	}

	delete(r.sessions, sess.Username)
	for i, name := range r.order {
		if name == sess.Username {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Snapshot returns the current sessions in insertion order. The copy is
// taken once per fan-out and may go stale immediately; delivery failures are
// handled by the broadcaster, not by holding the lock.
func (r *Registry) Snapshot() []*Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Session, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.sessions[name])
	}
	return out
}

// Usernames returns the current membership in insertion order.
func (r *Registry) Usernames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.order...)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}
