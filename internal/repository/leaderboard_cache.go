package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
)

// LeaderboardEntry is one ranked row of a quiz leaderboard.
type LeaderboardEntry struct {
	Rank       int             `json:"rank"`
	ResponseID uint            `json:"responseId"`
	UserID     uint            `json:"userId"`
	UserName   string          `json:"userName"`
	Score      decimal.Decimal `json:"score"`
	StartTime  time.Time       `json:"startTime"`
}

// LeaderboardCache keeps the computed ranking of a quiz in redis so repeated
// leaderboard reads do not rescan the responses table. Entries are stored as
// one JSON blob per quiz and dropped whenever a response for that quiz is
// written.
type LeaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewLeaderboardCache(client *redis.Client, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{client: client, ttl: ttl}
}

func (c *LeaderboardCache) key(quizID uint) string {
	return fmt.Sprintf("quiz:%d:leaderboard", quizID)
}

// Get returns the cached ranking and whether there was one. A nil client
// (redis disabled in tests) behaves as a permanent miss.
func (c *LeaderboardCache) Get(ctx context.Context, quizID uint) ([]LeaderboardEntry, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.key(quizID)).Result()
	if err != nil {
		return nil, false
	}
	var entries []LeaderboardEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

func (c *LeaderboardCache) Set(ctx context.Context, quizID uint, entries []LeaderboardEntry) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	c.client.Set(ctx, c.key(quizID), raw, c.ttl)
}

func (c *LeaderboardCache) Invalidate(ctx context.Context, quizID uint) {
	if c == nil || c.client == nil {
		return
	}
	c.client.Del(ctx, c.key(quizID))
}
