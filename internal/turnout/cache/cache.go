// Package cache is the dashboard read cache: a Redis-backed snapshot of the
// resolved all-station turnout list with a bounded TTL, an explicit
// invalidation operation, and a poll-based refresher. It replaces ambient
// shared state with an object the service owns outright.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"tallyboard/internal/turnout"
)

const snapshotKey = "tallyboard:turnouts:snapshot"

// Snapshot caches the resolved turnout list in Redis.
type Snapshot struct {
	client *redis.Client
	ttl    time.Duration
}

// New constructs the snapshot cache. ttl bounds how stale a dashboard read
// can be between updates.
func New(client *redis.Client, ttl time.Duration) *Snapshot {
	return &Snapshot{client: client, ttl: ttl}
}

// Get returns the cached snapshot, reporting a miss with ok=false when the
// key is absent or expired.
func (c *Snapshot) Get(ctx context.Context) ([]turnout.Current, bool, error) {
	raw, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}

	var snapshot []turnout.Current
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// A corrupt value is treated as a miss; the next Set overwrites it.
		return nil, false, nil
	}
	return snapshot, true, nil
}

// Set stores the snapshot with the configured TTL.
func (c *Snapshot) Set(ctx context.Context, snapshot []turnout.Current) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot so the next read resolves from the
// store. Called after every committed update.
func (c *Snapshot) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}
