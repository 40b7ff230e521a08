package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"tourneyhub/api/dto"
	"tourneyhub/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "leaderboard:group:%d:game:%s"

// LeaderboardRedis is the part of the redis client the leaderboard cache uses.
type LeaderboardRedis interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// LeaderboardCache keeps built leaderboards for a short time.
type LeaderboardCache interface {
	GetLeaderboard(ctx context.Context, groupId uint, gameId *uint) ([]dto.LeaderboardEntry, bool, error)
	SetLeaderboard(ctx context.Context, groupId uint, gameId *uint, entries []dto.LeaderboardEntry) error
}

type leaderboardCache struct {
	redis LeaderboardRedis
	ttl   time.Duration
}

// NewLeaderboardCache creates a leaderboard cache with the given ttl.
func NewLeaderboardCache(redis LeaderboardRedis, ttl time.Duration) LeaderboardCache {
	return &leaderboardCache{
		redis: redis,
		ttl:   ttl,
	}
}

// LeaderboardKey is the key of a group leaderboard, "all" when there's no game filter.
func LeaderboardKey(groupId uint, gameId *uint) string {
	game := "all"
	if gameId != nil {
		game = fmt.Sprintf("%d", *gameId)
	}
	return fmt.Sprintf(leaderboardKey, groupId, game)
}

// GetLeaderboard returns the cached leaderboard, the bool is false on a miss.
func (lc *leaderboardCache) GetLeaderboard(ctx context.Context, groupId uint, gameId *uint) ([]dto.LeaderboardEntry, bool, error) {
	raw, err := lc.redis.Get(ctx, LeaderboardKey(groupId, gameId)).Result()
	if errors.Is(err, redis.Nil) {
		metrics.LeaderboardCache.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		metrics.LeaderboardCache.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("couldn't read the leaderboard cache: %w", err)
	}

	var entries []dto.LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		metrics.LeaderboardCache.WithLabelValues("error").Inc()
		return nil, false, fmt.Errorf("couldn't decode the cached leaderboard: %w", err)
	}

	metrics.LeaderboardCache.WithLabelValues("hit").Inc()
	return entries, true, nil
}

// SetLeaderboard caches a leaderboard.
func (lc *leaderboardCache) SetLeaderboard(ctx context.Context, groupId uint, gameId *uint, entries []dto.LeaderboardEntry) error {
	j, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	return lc.redis.Set(ctx, LeaderboardKey(groupId, gameId), string(j), lc.ttl).Err()
}
