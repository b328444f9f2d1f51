package redis

import (
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/jhoicas/team-feedback/pkg/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─── Cliente ─────────────────────────────────────────────────────────────────

func TestIncrWithTTL_ExpiraSoloEnPrimerIncremento(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	n, err := client.IncrWithTTL(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = client.IncrWithTTL(ctx, "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	require.Len(t, mock.expireCalls, 1)
	assert.Equal(t, time.Minute, mock.expireCalls[0].ttl)
}

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	assert.Equal(t, "tf:rate_limit:login:a@b.co", client.RateLimitKey("login", "a@b.co"))
	assert.Equal(t, "tf:session:revoked:jti-1", client.RevokedSessionKey("jti-1"))
	assert.Equal(t, "tf:rate_limit:login", client.RateLimitKey("login", ""))
}

func TestOptionsFromConfig_SinDireccion(t *testing.T) {
	_, err := optionsFromConfig(config.RedisConfig{})
	assert.Error(t, err)

	opts, err := optionsFromConfig(config.RedisConfig{Address: "localhost:6379", DB: 2})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, 2, opts.DB)
}

// ─── SessionStore / LoginLimiter ────────────────────────────────────────────

func TestSessionStore_Revoke(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore(&Client{store: newMockCmdable()})

	revoked, err := store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "jti-1", time.Hour))

	revoked, err = store.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestLoginLimiter_BloqueaTrasMaximo(t *testing.T) {
	ctx := context.Background()
	limiter := NewLoginLimiter(&Client{store: newMockCmdable()}, 2, time.Minute)

	blocked, err := limiter.Blocked(ctx, "a@b.co")
	require.NoError(t, err)
	assert.False(t, blocked)

	require.NoError(t, limiter.RegisterFailure(ctx, "a@b.co"))
	blocked, _ = limiter.Blocked(ctx, "a@b.co")
	assert.False(t, blocked)

	require.NoError(t, limiter.RegisterFailure(ctx, "a@b.co"))
	blocked, _ = limiter.Blocked(ctx, "a@b.co")
	assert.True(t, blocked)

	require.NoError(t, limiter.Reset(ctx, "a@b.co"))
	blocked, _ = limiter.Blocked(ctx, "a@b.co")
	assert.False(t, blocked)
}

// ─── mock ───────────────────────────────────────────────────────────────────

type mockCmdable struct {
	data        map[string]string
	expireCalls []expireCall
}

type expireCall struct {
	key string
	ttl time.Duration
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(_ context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) Exists(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.data[k]; ok {
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (m *mockCmdable) Incr(_ context.Context, key string) *redis.IntCmd {
	n, _ := strconv.ParseInt(m.data[key], 10, 64)
	n++
	m.data[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func (m *mockCmdable) Expire(_ context.Context, key string, ttl time.Duration) *redis.BoolCmd {
	m.expireCalls = append(m.expireCalls, expireCall{key: key, ttl: ttl})
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(_ context.Context, keys ...string) *redis.IntCmd {
	for _, key := range keys {
		delete(m.data, key)
	}
	return redis.NewIntResult(int64(len(keys)), nil)
}
