package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/formgate/formgate/internal/domain"
)

// cooldownKey marks one (workspace, form, user) cooldown entry. The
// entry's TTL is the cooldown itself.
func cooldownKey(ref domain.FormRef, user domain.UserID) string {
	return fmt.Sprintf("forms:%s:%s:%s", ref.Workspace, ref.Form, user)
}

// CooldownTracker tracks per-user submission cooldowns as self-expiring
// Redis keys.
type CooldownTracker struct {
	client *Client
}

// NewCooldownTracker creates a Redis-backed cooldown tracker.
func NewCooldownTracker(client *Client) *CooldownTracker {
	return &CooldownTracker{client: client}
}

func (t *CooldownTracker) Remaining(ctx context.Context, ref domain.FormRef, user domain.UserID) (time.Duration, error) {
	// TTL returns negative values for missing keys and keys without
	// expiry; both mean unrestricted.
	ttl, err := t.client.rdb.TTL(ctx, cooldownKey(ref, user)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to read cooldown: %w", err)
	}
	if ttl <= 0 {
		return 0, nil
	}
	return ttl, nil
}

func (t *CooldownTracker) Trigger(ctx context.Context, ref domain.FormRef, user domain.UserID, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}

	if err := t.client.rdb.Set(ctx, cooldownKey(ref, user), 1, duration).Err(); err != nil {
		return fmt.Errorf("failed to set cooldown: %w", err)
	}

	return nil
}

func (t *CooldownTracker) Clear(ctx context.Context, ref domain.FormRef, user domain.UserID) (bool, error) {
	removed, err := t.client.rdb.Del(ctx, cooldownKey(ref, user)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to clear cooldown: %w", err)
	}
	return removed > 0, nil
}
