package interaction

import (
	"sync"
	"time"
)

// DefaultSession is used by clients that do not name a session
const DefaultSession = "default"

type session struct {
	drag *DragConnect
	seen time.Time
}

// Registry keeps one drag interaction per browser session
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*session
	edges    EdgeAdder
	locator  Locator
	now      func() time.Time
}

// NewRegistry creates an empty registry
func NewRegistry(edges EdgeAdder, locator Locator) *Registry {
	return &Registry{
		sessions: make(map[string]*session),
		edges:    edges,
		locator:  locator,
		now:      time.Now,
	}
}

// Begin presses on nodeID in session. A session is only tracked once a press
// starts a drag; a press on an unknown node leaves no session behind.
func (r *Registry) Begin(name, nodeID string) (*DragConnect, bool) {
	if name == "" {
		name = DefaultSession
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[name]
	if !ok {
		s = &session{drag: NewDragConnect(r.edges, r.locator)}
	}
	s.drag.OnPointerDown(nodeID)
	if s.drag.State() != Dragging {
		return s.drag, ok
	}
	s.seen = r.now()
	r.sessions[name] = s
	return s.drag, true
}

// Lookup returns the interaction for session without creating one
func (r *Registry) Lookup(name string) (*DragConnect, bool) {
	if name == "" {
		name = DefaultSession
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[name]
	if !ok {
		return nil, false
	}
	s.seen = r.now()
	return s.drag, true
}

// Reset abandons any drag in progress for every session
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.sessions {
		s.drag.OnPointerLeave()
	}
}

// Remove forgets session
func (r *Registry) Remove(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, name)
}

// Prune forgets sessions not looked up for maxIdle, such as a tab closed in
// the middle of a drag. It returns how many were dropped.
func (r *Registry) Prune(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	dropped := 0
	for name, s := range r.sessions {
		if s.seen.Before(cutoff) {
			s.drag.OnPointerLeave()
			delete(r.sessions, name)
			dropped++
		}
	}
	return dropped
}

// Len returns the number of tracked sessions
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}
