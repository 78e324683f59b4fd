package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStatementArchive(t *testing.T) {
	ctx := context.Background()

	t.Run("stores and retrieves files", func(t *testing.T) {
		archive := NewMemoryStatementArchive()

		err := archive.Store(ctx, "statements/u1/balanta.csv", "text/csv", []byte("a,b\n"))
		require.NoError(t, err)

		data, contentType, ok := archive.Get("statements/u1/balanta.csv")
		require.True(t, ok)
		assert.Equal(t, "text/csv", contentType)
		assert.Equal(t, []byte("a,b\n"), data)
		assert.Equal(t, 1, archive.Len())
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		archive := NewMemoryStatementArchive()
		assert.Error(t, archive.Store(ctx, "", "text/csv", []byte("x")))
	})

	t.Run("stored data is copied", func(t *testing.T) {
		archive := NewMemoryStatementArchive()
		original := []byte("immutable")
		require.NoError(t, archive.Store(ctx, "k", "", original))

		original[0] = 'X'
		data, _, _ := archive.Get("k")
		assert.Equal(t, byte('i'), data[0])
	})

	t.Run("unknown key reports missing", func(t *testing.T) {
		archive := NewMemoryStatementArchive()
		_, _, ok := archive.Get("missing")
		assert.False(t, ok)
	})
}
