package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jhoicas/team-feedback/internal/application/ports"
	"github.com/redis/go-redis/v9"
)

var (
	_ ports.SessionStore = (*SessionStore)(nil)
	_ ports.LoginLimiter = (*LoginLimiter)(nil)
)

// SessionStore lista de sesiones revocadas; cada clave expira junto con su token.
type SessionStore struct {
	client *Client
}

// NewSessionStore construye el store sobre el cliente.
func NewSessionStore(client *Client) *SessionStore {
	return &SessionStore{client: client}
}

func (s *SessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.client.RevokedSessionKey(tokenID), "1", ttl)
}

func (s *SessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return s.client.Exists(ctx, s.client.RevokedSessionKey(tokenID))
}

// LoginLimiter ventana fija de intentos fallidos por email.
type LoginLimiter struct {
	client      *Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginLimiter bloquea una clave tras maxAttempts fallos dentro de window.
func NewLoginLimiter(client *Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

func (l *LoginLimiter) Blocked(ctx context.Context, key string) (bool, error) {
	raw, err := l.client.Get(ctx, l.client.RateLimitKey("login", key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	count, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return false, nil
	}
	return count >= l.maxAttempts, nil
}

func (l *LoginLimiter) RegisterFailure(ctx context.Context, key string) error {
	_, err := l.client.IncrWithTTL(ctx, l.client.RateLimitKey("login", key), l.window)
	return err
}

func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	return l.client.Del(ctx, l.client.RateLimitKey("login", key))
}
