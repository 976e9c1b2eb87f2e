// Package docs holds the session registry guarding the API documentation pages.
package docs

import (
	"crypto/rand"
	"encoding/base64"
	"sync"
	"time"
)

// SessionTTL bounds how long a docs session stays valid server-side. The
// browser cookie carries the same lifetime.
const SessionTTL = 12 * time.Hour

// SessionRegistry tracks browser sessions that have presented the docs API
// key. Sessions live in memory only, expire after SessionTTL and vanish on
// restart.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]time.Time
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[string]time.Time),
		ttl:      SessionTTL,
		now:      time.Now,
	}
}

// CreateSession mints a new session token and registers it. Entries past
// their deadline are swept here, so the map stays bounded by login activity.
func (r *SessionRegistry) CreateSession() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := base64.RawURLEncoding.EncodeToString(buf)

	r.mu.Lock()
	now := r.now()
	for existing, deadline := range r.sessions {
		if now.After(deadline) {
			delete(r.sessions, existing)
		}
	}
	r.sessions[token] = now.Add(r.ttl)
	r.mu.Unlock()

	return token, nil
}

// IsValid reports whether the token belongs to a live session.
func (r *SessionRegistry) IsValid(token string) bool {
	if token == "" {
		return false
	}

	r.mu.RLock()
	deadline, ok := r.sessions[token]
	r.mu.RUnlock()
	if !ok {
		return false
	}

	if r.now().After(deadline) {
		r.Remove(token)

		return false
	}

	return true
}

// Remove drops a session token from the registry.
func (r *SessionRegistry) Remove(token string) {
	r.mu.Lock()
	delete(r.sessions, token)
	r.mu.Unlock()
}
