package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/formgate/formgate/internal/domain"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTracker(t *testing.T) (*CooldownTracker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := &Client{rdb: goredis.NewClient(&goredis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { client.Close() })
	return NewCooldownTracker(client), mr
}

func TestCooldownTracker(t *testing.T) {
	ctx := context.Background()
	ref := domain.FormRef{Workspace: "ws-1", Form: domain.NewFormID()}
	user := domain.UserID("user-1")

	t.Run("no entry means unrestricted", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		remaining, err := tracker.Remaining(ctx, ref, user)
		require.NoError(t, err)
		assert.Zero(t, remaining)
	})

	t.Run("trigger blocks for at most the duration", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		require.NoError(t, tracker.Trigger(ctx, ref, user, 5*time.Second))

		remaining, err := tracker.Remaining(ctx, ref, user)
		require.NoError(t, err)
		assert.Greater(t, remaining, time.Duration(0))
		assert.LessOrEqual(t, remaining, 5*time.Second)
	})

	t.Run("entry expires on its own", func(t *testing.T) {
		tracker, mr := newTestTracker(t)

		require.NoError(t, tracker.Trigger(ctx, ref, user, 5*time.Second))
		mr.FastForward(5 * time.Second)

		remaining, err := tracker.Remaining(ctx, ref, user)
		require.NoError(t, err)
		assert.Zero(t, remaining)
	})

	t.Run("clear lifts the block early", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		require.NoError(t, tracker.Trigger(ctx, ref, user, time.Hour))

		cleared, err := tracker.Clear(ctx, ref, user)
		require.NoError(t, err)
		assert.True(t, cleared)

		remaining, err := tracker.Remaining(ctx, ref, user)
		require.NoError(t, err)
		assert.Zero(t, remaining)

		cleared, err = tracker.Clear(ctx, ref, user)
		require.NoError(t, err)
		assert.False(t, cleared)
	})

	t.Run("zero duration is a no-op", func(t *testing.T) {
		tracker, _ := newTestTracker(t)

		require.NoError(t, tracker.Trigger(ctx, ref, user, 0))

		remaining, err := tracker.Remaining(ctx, ref, user)
		require.NoError(t, err)
		assert.Zero(t, remaining)
	})

	t.Run("entries are scoped per user", func(t *testing.T) {
		tracker, _ := newTestTracker(t)
		other := domain.UserID("user-2")

		require.NoError(t, tracker.Trigger(ctx, ref, user, time.Minute))

		remaining, err := tracker.Remaining(ctx, ref, other)
		require.NoError(t, err)
		assert.Zero(t, remaining)
	})
}
