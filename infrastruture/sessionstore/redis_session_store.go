// Package sessionstore keeps hosted maze games in Redis.
package sessionstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/beka-birhanu/vinom-maze/game"
	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
)

const (
	defaultPrefix     = "maze"
	sessionKeyFmt     = "%s:session:%s"
	lockSuffix        = ":lock"
	defaultLockExpiry = 5 * time.Second
)

var _ i.SessionStore = &RedisSessionStore{}

// RedisSessionStore stores game records as BSON documents with a sliding TTL
// and serializes access to a session with a redsync mutex.
type RedisSessionStore struct {
	client     *redis.Client
	locker     *redsync.Redsync
	ttl        time.Duration
	prefix     string
	lockExpiry time.Duration
}

// NewRedisSessionStore initializes a RedisSessionStore with the provided Redis client and TTL.
func NewRedisSessionStore(client *redis.Client, ttlSeconds int) (*RedisSessionStore, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if ttlSeconds <= 0 {
		return nil, fmt.Errorf("invalid session ttl: %d", ttlSeconds)
	}

	store := &RedisSessionStore{
		client:     client,
		ttl:        time.Duration(ttlSeconds) * time.Second,
		prefix:     defaultPrefix,
		lockExpiry: defaultLockExpiry,
	}
	pool := goredis.NewPool(client)
	store.locker = redsync.New(pool)
	return store, nil
}

// Load implements i.SessionStore.
func (s *RedisSessionStore) Load(ctx context.Context, playerID uuid.UUID) (*game.Record, error) {
	data, err := s.client.Get(ctx, s.key(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, i.ErrSessionNotFound
		}
		return nil, err
	}

	return decodeRecord(data)
}

// Save implements i.SessionStore. Every save pushes the expiry forward.
func (s *RedisSessionStore) Save(ctx context.Context, playerID uuid.UUID, record game.Record) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(playerID), data, s.ttl).Err()
}

// Lock implements i.SessionStore.
func (s *RedisSessionStore) Lock(ctx context.Context, playerID uuid.UUID) (func(), error) {
	mutex := s.locker.NewMutex(s.key(playerID)+lockSuffix, redsync.WithExpiry(s.lockExpiry))
	if err := mutex.LockContext(ctx); err != nil {
		return nil, fmt.Errorf("obtaining session lock: %w", err)
	}

	return func() {
		_, _ = mutex.Unlock()
	}, nil
}

func (s *RedisSessionStore) key(playerID uuid.UUID) string {
	return fmt.Sprintf(sessionKeyFmt, s.prefix, playerID)
}

func encodeRecord(record game.Record) ([]byte, error) {
	data, err := bson.Marshal(record)
	if err != nil {
		return nil, fmt.Errorf("encoding session record: %w", err)
	}
	return data, nil
}

func decodeRecord(data []byte) (*game.Record, error) {
	var record game.Record
	if err := bson.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("decoding session record: %w", err)
	}
	return &record, nil
}
