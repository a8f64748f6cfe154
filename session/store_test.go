package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/padraicbc/recipeapi/db/dbtest"
	"github.com/padraicbc/recipeapi/models"
)

func TestSQLStore(t *testing.T) {
	ctx := context.Background()
	s := NewSQLStore(dbtest.Open(t), time.Hour)

	token, err := s.Create(ctx, 7)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	id, err := s.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 7, id)

	other, err := s.Create(ctx, 7)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)

	require.NoError(t, s.Delete(ctx, token))
	_, err = s.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = s.Lookup(ctx, "unknown")
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, s.Delete(ctx, "unknown"))
}

func TestSQLStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewSQLStore(dbtest.Open(t), time.Minute)

	token, err := s.Create(ctx, 1)
	require.NoError(t, err)

	s.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	_, err = s.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)

	s.now = time.Now
	_, err = s.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession, "expired session is deleted on lookup")
}

func TestSQLStorePurgesExpiredOnCreate(t *testing.T) {
	ctx := context.Background()
	bdb := dbtest.Open(t)
	s := NewSQLStore(bdb, time.Minute)

	s.now = func() time.Time { return time.Now().Add(-time.Hour) }
	stale, err := s.Create(ctx, 1)
	require.NoError(t, err)
	_, err = s.Create(ctx, 2)
	require.NoError(t, err)

	s.now = time.Now
	fresh, err := s.Create(ctx, 3)
	require.NoError(t, err)

	var tokens []string
	require.NoError(t, bdb.NewSelect().Model((*models.Session)(nil)).Column("token").Scan(ctx, &tokens))
	assert.Equal(t, []string{fresh}, tokens)
	assert.NotContains(t, tokens, stale)

	n, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	s := NewRedisStore(rdb, time.Minute)

	token, err := s.Create(ctx, 42)
	require.NoError(t, err)
	assert.True(t, mr.Exists("session:"+token))

	id, err := s.Lookup(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, 42, id)

	require.NoError(t, s.Delete(ctx, token))
	_, err = s.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)

	token, err = s.Create(ctx, 42)
	require.NoError(t, err)
	mr.FastForward(2 * time.Minute)
	_, err = s.Lookup(ctx, token)
	assert.ErrorIs(t, err, ErrNoSession)
}
