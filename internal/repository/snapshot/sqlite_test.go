package snapshot

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visijn/haccp/internal/domain/models"
)

func TestSQLiteRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "slot.db"), 0)
	require.NoError(t, err)
	defer repo.Close()

	_, ok, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Write(ctx, []byte(`{"v":1}`)))

	blob, ok, err := repo.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte(`{"v":1}`), blob)

	require.NoError(t, repo.Write(ctx, []byte(`{"v":2}`)))
	blob, _, err = repo.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"v":2}`), blob)

	require.NoError(t, repo.Clear(ctx))
	_, ok, err = repo.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLiteRepositoryQuota(t *testing.T) {
	ctx := context.Background()
	repo, err := NewSQLiteRepository(ctx, filepath.Join(t.TempDir(), "slot.db"), 8)
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.Write(ctx, []byte("small")))

	err = repo.Write(ctx, []byte("definitely too large for the slot"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrQuotaExceeded))

	// The rejected write left the previous payload in place.
	blob, ok, err := repo.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("small"), blob)
}
