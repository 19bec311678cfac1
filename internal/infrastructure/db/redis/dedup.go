package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const notifyTTL = 24 * time.Hour

// NotificationDedup suppresses repeat comment notifications backed by Redis.
// Key format: notify:<code>:<sha256(comment)[:16]>
type NotificationDedup struct {
	client *redis.Client
}

func NewNotificationDedup(client *redis.Client) *NotificationDedup {
	return &NotificationDedup{client: client}
}

// AlreadySent reports whether this exact comment was already notified for
// the shipment.
func (d *NotificationDedup) AlreadySent(ctx context.Context, code, comment string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(code, comment)).Result()
	if err != nil {
		return false, fmt.Errorf("notify dedup check: %w", err)
	}
	return n > 0, nil
}

// MarkSent records the notification (expires after notifyTTL, so an
// administrator re-posting the same comment much later notifies again).
func (d *NotificationDedup) MarkSent(ctx context.Context, code, comment string) error {
	return d.client.Set(ctx, d.key(code, comment), "1", notifyTTL).Err()
}

func (d *NotificationDedup) key(code, comment string) string {
	sum := sha256.Sum256([]byte(comment))
	return fmt.Sprintf("notify:%s:%s", code, hex.EncodeToString(sum[:8]))
}
