package memory

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/team-feedback/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentityProvider_Ciclo(t *testing.T) {
	ctx := context.Background()
	p := NewIdentityProvider()

	_, err := p.CreateCredential(ctx, "a@b.co", "12345")
	assert.ErrorIs(t, err, domain.ErrWeakCredential)

	uid, err := p.CreateCredential(ctx, "A@b.co", "secreto")
	require.NoError(t, err)

	_, err = p.CreateCredential(ctx, "a@b.co", "otro-secreto")
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	got, err := p.VerifyCredential(ctx, "a@b.co", "secreto")
	require.NoError(t, err)
	assert.Equal(t, uid, got)

	_, err = p.VerifyCredential(ctx, "a@b.co", "malo!!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
	_, err = p.VerifyCredential(ctx, "nadie@b.co", "secreto")
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)

	require.NoError(t, p.DeleteCredential(ctx, uid))
	assert.False(t, p.Has(uid))
}

func TestIdentityProvider_IsolatedCerrado(t *testing.T) {
	ctx := context.Background()
	p := NewIdentityProvider()
	iso, err := p.Isolated(ctx)
	require.NoError(t, err)

	uid, err := iso.CreateCredential(ctx, "x@b.co", "secreto")
	require.NoError(t, err)
	assert.True(t, p.Has(uid))

	iso.Close()
	_, err = iso.CreateCredential(ctx, "y@b.co", "secreto")
	assert.Error(t, err)
}

// ─── Sesiones y límite de login ─────────────────────────────────────────────

func TestSessionStore_ExpiraConElToken(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := NewSessionStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Revoke(ctx, "jti", time.Minute))
	revoked, err := s.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.True(t, revoked)

	now = now.Add(2 * time.Minute)
	revoked, err = s.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestLoginLimiter_VentanaFija(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	l := NewLoginLimiter(3, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		blocked, err := l.Blocked(ctx, "k")
		require.NoError(t, err)
		assert.False(t, blocked)
		require.NoError(t, l.RegisterFailure(ctx, "k"))
	}
	blocked, _ := l.Blocked(ctx, "k")
	assert.True(t, blocked)

	now = now.Add(time.Minute)
	blocked, _ = l.Blocked(ctx, "k")
	assert.False(t, blocked)
}
