package sortedstorage

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/vinom-maze/service/i"
	"github.com/redis/go-redis/v9"
)

const (
	defaultKey = "maze:leaderboard"
)

var _ i.Leaderboard = &RedisLeaderboard{}

// RedisLeaderboard ranks members in a Redis sorted set.
type RedisLeaderboard struct {
	client *redis.Client
	key    string
}

// NewRedisLeaderboard initializes a RedisLeaderboard stored under key.
// An empty key falls back to the default one.
func NewRedisLeaderboard(client *redis.Client, key string) (*RedisLeaderboard, error) {
	if client == nil {
		return nil, errors.New("redis client is required")
	}
	if key == "" {
		key = defaultKey
	}

	return &RedisLeaderboard{
		client: client,
		key:    key,
	}, nil
}

// Increment adds by to the score of member, creating it when missing.
func (rl *RedisLeaderboard) Increment(ctx context.Context, member string, by float64) error {
	if err := rl.client.ZIncrBy(ctx, rl.key, by, member).Err(); err != nil {
		return fmt.Errorf("incrementing %s: %w", member, err)
	}
	return nil
}

// Top returns up to n members with the highest scores.
func (rl *RedisLeaderboard) Top(ctx context.Context, n int64) ([]i.Score, error) {
	if n <= 0 {
		return []i.Score{}, nil
	}

	members, err := rl.client.ZRevRangeWithScores(ctx, rl.key, 0, n-1).Result()
	if err != nil {
		return nil, err
	}

	scores := make([]i.Score, 0, len(members))
	for _, m := range members {
		scores = append(scores, i.Score{Member: fmt.Sprint(m.Member), Score: m.Score})
	}
	return scores, nil
}
