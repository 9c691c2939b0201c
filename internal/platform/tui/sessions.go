package tui

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrTooManySessions is returned when the server is at its session limit.
var ErrTooManySessions = errors.New("too many sessions")

// SessionInfo describes one connected SSH player.
type SessionInfo struct {
	ID      uuid.UUID
	User    string
	Remote  string
	Started time.Time
}

// SessionTracker keeps the set of live SSH sessions.
// It is safe for concurrent use.
type SessionTracker struct {
	mu       sync.Mutex
	max      int // 0 means unlimited
	sessions map[uuid.UUID]SessionInfo
}

// NewSessionTracker creates a tracker admitting at most max sessions.
func NewSessionTracker(max int) *SessionTracker {
	return &SessionTracker{
		max:      max,
		sessions: make(map[uuid.UUID]SessionInfo),
	}
}

// Add registers a new session, or fails with ErrTooManySessions.
func (t *SessionTracker) Add(user, remote string) (SessionInfo, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.max > 0 && len(t.sessions) >= t.max {
		return SessionInfo{}, ErrTooManySessions
	}

	info := SessionInfo{
		ID:      uuid.New(),
		User:    user,
		Remote:  remote,
		Started: time.Now(),
	}
	t.sessions[info.ID] = info
	return info, nil
}

// Remove forgets a session. Unknown ids are ignored.
func (t *SessionTracker) Remove(id uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, id)
}

// Count returns the number of live sessions.
func (t *SessionTracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// List returns the live sessions, oldest first.
func (t *SessionTracker) List() []SessionInfo {
	t.mu.Lock()
	out := make([]SessionInfo, 0, len(t.sessions))
	for _, s := range t.sessions {
		out = append(out, s)
	}
	t.mu.Unlock()

	sort.Slice(out, func(i, j int) bool {
		return out[i].Started.Before(out[j].Started)
	})
	return out
}
