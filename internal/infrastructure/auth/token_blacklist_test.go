package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryTokenBlacklist(t *testing.T) {
	ctx := context.Background()

	t.Run("blacklisted jti is reported", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		err := bl.AddToBlacklist(ctx, "jti-1", time.Minute)
		require.NoError(t, err)

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-1")
		require.NoError(t, err)
		assert.True(t, blacklisted)
	})

	t.Run("unknown jti is not blacklisted", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		blacklisted, err := bl.IsBlacklisted(ctx, "unknown")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})

	t.Run("expired entries are purged", func(t *testing.T) {
		bl := NewInMemoryTokenBlacklist()

		err := bl.AddToBlacklist(ctx, "jti-2", -time.Second)
		require.NoError(t, err)

		blacklisted, err := bl.IsBlacklisted(ctx, "jti-2")
		require.NoError(t, err)
		assert.False(t, blacklisted)
	})
}
