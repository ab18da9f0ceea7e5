package entitlement_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinicore/clinicore/pkg/entitlement"
)

func TestMemoryCache(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	snap := entitlement.EmptySnapshot()
	snap.PlanID = "basico"

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		c := entitlement.NewMemoryCache()
		t.Cleanup(func() { _ = c.Close() })

		c.Set(ctx, "basico", snap, time.Minute)

		got, ok := c.Get(ctx, "basico")
		require.True(t, ok)
		assert.Equal(t, "basico", got.PlanID)
	})

	t.Run("miss for unknown key", func(t *testing.T) {
		t.Parallel()

		c := entitlement.NewMemoryCache()
		t.Cleanup(func() { _ = c.Close() })

		_, ok := c.Get(ctx, "missing")
		assert.False(t, ok)
	})

	t.Run("expired entry is a miss", func(t *testing.T) {
		t.Parallel()

		c := entitlement.NewMemoryCache()
		t.Cleanup(func() { _ = c.Close() })

		c.Set(ctx, "basico", snap, time.Nanosecond)
		time.Sleep(5 * time.Millisecond)

		_, ok := c.Get(ctx, "basico")
		assert.False(t, ok)
	})

	t.Run("delete removes entry", func(t *testing.T) {
		t.Parallel()

		c := entitlement.NewMemoryCache()
		t.Cleanup(func() { _ = c.Close() })

		c.Set(ctx, "basico", snap, time.Minute)
		c.Delete(ctx, "basico")

		_, ok := c.Get(ctx, "basico")
		assert.False(t, ok)
	})

	t.Run("non-positive ttl is not stored", func(t *testing.T) {
		t.Parallel()

		c := entitlement.NewMemoryCache()
		t.Cleanup(func() { _ = c.Close() })

		c.Set(ctx, "basico", snap, 0)

		_, ok := c.Get(ctx, "basico")
		assert.False(t, ok)
	})

	t.Run("close is idempotent and stops writes", func(t *testing.T) {
		t.Parallel()

		c := entitlement.NewMemoryCache()
		require.NoError(t, c.Close())
		require.NoError(t, c.Close())

		c.Set(ctx, "basico", snap, time.Minute)
		_, ok := c.Get(ctx, "basico")
		assert.False(t, ok)
	})
}
