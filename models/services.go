// govdir/models/services.go
package models

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// --- Stateful Services ---

// SessionStore holds bearer-token sessions in memory. Sessions do not survive
// a restart; users simply sign in again.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]session
}

type session struct {
	UserID    string
	ExpiresAt time.Time
}

// NewSessionStore creates a session store and starts its cleanup loop.
func NewSessionStore(ttl time.Duration) *SessionStore {
	s := &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]session),
	}
	go s.cleanup()
	return s
}

// Create opens a new session for a user and returns its token.
func (s *SessionStore) Create(userID string) string {
	token := uuid.New().String()
	s.mu.Lock()
	s.sessions[token] = session{UserID: userID, ExpiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return token
}

// Resolve returns the user id behind a token, if the session exists and has
// not expired.
func (s *SessionStore) Resolve(token string) (string, bool) {
	s.mu.RLock()
	sess, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || time.Now().After(sess.ExpiresAt) {
		return "", false
	}
	return sess.UserID, true
}

// Destroy removes a session. Destroying an unknown token is a no-op.
func (s *SessionStore) Destroy(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// cleanup periodically drops expired sessions.
func (s *SessionStore) cleanup() {
	for range time.Tick(10 * time.Minute) {
		now := time.Now()
		s.mu.Lock()
		for token, sess := range s.sessions {
			if now.After(sess.ExpiresAt) {
				delete(s.sessions, token)
			}
		}
		s.mu.Unlock()
	}
}
