// Package session keeps server-side login sessions.
//
// A session is an opaque token mapped to a user id by a Store. Clients hold
// the token in a signed cookie; the user id never leaves the server.
package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"

	"github.com/padraicbc/recipeapi/models"
)

// ErrNoSession is returned for unknown, expired or deleted tokens.
var ErrNoSession = errors.New("no session")

// Store maps session tokens to user ids.
type Store interface {
	Create(ctx context.Context, userID int) (string, error)
	Lookup(ctx context.Context, token string) (int, error)
	Delete(ctx context.Context, token string) error
}

func newToken() string {
	return uuid.NewString()
}

// SQLStore keeps sessions in the sessions table.
type SQLStore struct {
	db  *bun.DB
	ttl time.Duration
	now func() time.Time
}

// NewSQLStore creates a SQLStore whose sessions expire after ttl.
func NewSQLStore(db *bun.DB, ttl time.Duration) *SQLStore {
	return &SQLStore{db: db, ttl: ttl, now: time.Now}
}

// Create stores a new session for userID. Expired sessions are purged first.
func (s *SQLStore) Create(ctx context.Context, userID int) (string, error) {
	if _, err := s.DeleteExpired(ctx); err != nil {
		return "", err
	}

	sess := &models.Session{
		Token:     newToken(),
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl).UTC(),
	}
	if _, err := s.db.NewInsert().Model(sess).Exec(ctx); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return sess.Token, nil
}

func (s *SQLStore) Lookup(ctx context.Context, token string) (int, error) {
	sess := &models.Session{}
	err := s.db.NewSelect().Model(sess).
		Where("token = ?", token).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNoSession
		}
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	if s.now().After(sess.ExpiresAt) {
		if err := s.Delete(ctx, token); err != nil {
			return 0, err
		}
		return 0, ErrNoSession
	}
	return sess.UserID, nil
}

// DeleteExpired removes every session past its expiry and returns how many
// were removed.
func (s *SQLStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.NewDelete().Model((*models.Session)(nil)).
		Where("expires_at < ?", s.now().UTC()).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}

func (s *SQLStore) Delete(ctx context.Context, token string) error {
	_, err := s.db.NewDelete().Model((*models.Session)(nil)).
		Where("token = ?", token).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// RedisStore keeps sessions as expiring redis keys.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisStore creates a RedisStore whose sessions expire after ttl.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl}
}

func redisKey(token string) string {
	return "session:" + token
}

func (s *RedisStore) Create(ctx context.Context, userID int) (string, error) {
	token := newToken()
	if err := s.rdb.Set(ctx, redisKey(token), userID, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (int, error) {
	v, err := s.rdb.Get(ctx, redisKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrNoSession
		}
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("lookup session: %w", err)
	}
	return id, nil
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, redisKey(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
