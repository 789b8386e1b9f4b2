// Package cache holds the optional Redis-backed cache for derived
// aggregates. The friends leaderboard reads one weekly study total per
// friend; caching those totals for a short TTL keeps a leaderboard refresh
// from rescanning every friend's session window.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const weeklyKeyPrefix = "studyhub:weekly:"

// WeeklyStudyCache caches per-user weekly study minutes. A nil
// *WeeklyStudyCache (or one built over a nil client) disables caching;
// every method degrades to a miss or a no-op. Cache failures are treated
// as misses, never surfaced to the caller.
type WeeklyStudyCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewWeeklyStudyCache creates a cache over the given client. Pass a nil
// client to disable caching.
func NewWeeklyStudyCache(client *redis.Client, ttl time.Duration) *WeeklyStudyCache {
	return &WeeklyStudyCache{client: client, ttl: ttl}
}

// Get returns the cached weekly minutes for userID and whether the value
// was present.
func (c *WeeklyStudyCache) Get(ctx context.Context, userID string) (int, bool) {
	if c == nil || c.client == nil {
		return 0, false
	}

	minutes, err := c.client.Get(ctx, weeklyKey(userID)).Int()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Treat transport failures as misses.
			return 0, false
		}
		return 0, false
	}

	return minutes, true
}

// Set stores the weekly minutes for userID.
func (c *WeeklyStudyCache) Set(ctx context.Context, userID string, minutes int) {
	if c == nil || c.client == nil {
		return
	}

	c.client.Set(ctx, weeklyKey(userID), minutes, c.ttl)
}

// Invalidate drops the cached value for userID. Called whenever a session
// is recorded so a fresh total is computed on the next read.
func (c *WeeklyStudyCache) Invalidate(ctx context.Context, userID string) {
	if c == nil || c.client == nil {
		return
	}

	c.client.Del(ctx, weeklyKey(userID))
}

func weeklyKey(userID string) string {
	return fmt.Sprintf("%s%s", weeklyKeyPrefix, userID)
}
