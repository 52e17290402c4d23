package persistence

import (
	"context"
	"fmt"
	"time"
)

const dedupTTL = time.Hour

// DedupChecker provides idempotency checks for notification delivery,
// backed by Redis. Key format: notify:<event_id>.
type DedupChecker struct {
	redis *Redis
}

// NewDedupChecker wraps the shared Redis handle.
func NewDedupChecker(redis *Redis) *DedupChecker {
	return &DedupChecker{redis: redis}
}

// Seen reports whether the event was already processed. A Redis outage
// counts as unseen.
func (d *DedupChecker) Seen(ctx context.Context, eventID string) bool {
	if d == nil || d.redis == nil || d.redis.Client == nil {
		return false
	}
	n, err := d.redis.Client.Exists(ctx, d.key(eventID)).Result()
	if err != nil {
		return false
	}
	return n > 0
}

// Mark records that the event has been processed (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, eventID string) error {
	if d == nil || d.redis == nil || d.redis.Client == nil {
		return nil
	}
	return d.redis.Client.Set(ctx, d.key(eventID), "1", dedupTTL).Err()
}

func (d *DedupChecker) key(eventID string) string {
	return fmt.Sprintf("notify:%s", eventID)
}
