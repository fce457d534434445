// Package session keeps each visitor's clue choices between requests,
// keyed by the hunt_session cookie.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"github.com/qrhunt/scavenger/internal/hunt"
)

// Store persists clue sessions. Load returns a fresh empty session for an
// unknown id.
type Store interface {
	Load(ctx context.Context, id string) (*hunt.ClueSession, error)
	Save(ctx context.Context, id string, sess *hunt.ClueSession) error
	Delete(ctx context.Context, id string) error
}

// NewID returns a random session id.
func NewID() string { return uuid.NewString() }

// MemoryStore keeps sessions in process memory; they expire after the TTL.
type MemoryStore struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 2*ttl), ttl: ttl}
}

func (m *MemoryStore) Load(_ context.Context, id string) (*hunt.ClueSession, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return hunt.NewClueSession(), nil
	}
	return copySession(v.(*hunt.ClueSession)), nil
}

func (m *MemoryStore) Save(_ context.Context, id string, sess *hunt.ClueSession) error {
	m.cache.Set(id, copySession(sess), m.ttl)
	return nil
}

// copySession keeps cached sessions private to the cache; concurrent
// requests for one visitor each work on their own copy.
func copySession(src *hunt.ClueSession) *hunt.ClueSession {
	sess := hunt.NewClueSession()
	maps.Copy(sess.Clues, src.Clues)
	return sess
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}

// RedisStore shares sessions between instances through Redis, stored as
// JSON under "hunt:session:<id>".
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(id string) string { return "hunt:session:" + id }

func (r *RedisStore) Load(ctx context.Context, id string) (*hunt.ClueSession, error) {
	data, err := r.client.Get(ctx, redisKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return hunt.NewClueSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	sess := hunt.NewClueSession()
	if err := json.Unmarshal(data, sess); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	if sess.Clues == nil {
		sess.Clues = make(map[int]hunt.Clue)
	}
	return sess, nil
}

func (r *RedisStore) Save(ctx context.Context, id string, sess *hunt.ClueSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	if err := r.client.Set(ctx, redisKey(id), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, redisKey(id)).Err(); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// Check pings Redis for the health endpoint.
func (r *RedisStore) Check(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
