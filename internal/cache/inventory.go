package cache

import (
	"context"
	"fmt"
	"time"
)

// Key prefixes. Ratings are deliberately absent: the title rating is
// recomputed from reviews on every read and must never be served stale.
const (
	userKeyPrefix = "user:%d"
)

// UserTTL bounds staleness of cached user records.
const UserTTL = 5 * time.Minute

// UserKey returns the cache key for a user record.
func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

// Invalidate removes a key, best effort.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser removes the cached record for a user.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}
