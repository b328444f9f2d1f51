package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/team-feedback/internal/application/ports"
)

var (
	_ ports.SessionStore = (*SessionStore)(nil)
	_ ports.LoginLimiter = (*LoginLimiter)(nil)
)

// SessionStore sesiones revocadas con su vencimiento.
type SessionStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

// NewSessionStore construye el store.
func NewSessionStore() *SessionStore {
	return &SessionStore{revoked: make(map[string]time.Time), now: time.Now}
}

func (s *SessionStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[tokenID] = s.now().Add(ttl)
	return nil
}

func (s *SessionStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}

type window struct {
	count int
	ends  time.Time
}

// LoginLimiter ventana fija de intentos fallidos por clave.
type LoginLimiter struct {
	mu          sync.Mutex
	maxAttempts int
	window      time.Duration
	entries     map[string]window
	now         func() time.Time
}

// NewLoginLimiter bloquea una clave tras maxAttempts fallos dentro de w.
func NewLoginLimiter(maxAttempts int, w time.Duration) *LoginLimiter {
	return &LoginLimiter{maxAttempts: maxAttempts, window: w, entries: make(map[string]window), now: time.Now}
}

func (l *LoginLimiter) Blocked(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		return false, nil
	}
	if !l.now().Before(e.ends) {
		delete(l.entries, key)
		return false, nil
	}
	return e.count >= l.maxAttempts, nil
}

func (l *LoginLimiter) RegisterFailure(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	e, ok := l.entries[key]
	if !ok || !now.Before(e.ends) {
		e = window{ends: now.Add(l.window)}
	}
	e.count++
	l.entries[key] = e
	return nil
}

func (l *LoginLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.entries, key)
	return nil
}
