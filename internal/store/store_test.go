package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visijn/haccp/internal/domain/models"
	"github.com/visijn/haccp/internal/repository/snapshot"
)

func sampleRecord() models.TemperatureRecord {
	return models.TemperatureRecord{
		ID:          "rec-1",
		Equipment:   "Chambre Froide 1",
		Temperature: 3.2,
		Timestamp:   models.NewTimestamp(time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)),
		Status:      models.StatusOK,
		User:        "Chef Michel",
	}
}

func TestLoadWithoutSnapshotStartsFromDefaults(t *testing.T) {
	st := NewStore(snapshot.NewMemoryRepository(0), nil)
	st.Load(context.Background())

	snap := st.Snapshot()
	assert.Empty(t, snap.TempLogs)
	assert.NotEmpty(t, snap.Settings.EquipmentList)
	assert.NotEmpty(t, snap.CleaningTasks)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := snapshot.NewMemoryRepository(0)
	ctx := context.Background()

	st := NewStore(repo, nil)
	st.Load(ctx)
	st.Update(ctx, func(snap *models.Snapshot) {
		snap.TempLogs = append([]models.TemperatureRecord{sampleRecord()}, snap.TempLogs...)
		snap.Settings.CompanyName = "La Belle Assiette"
	})

	reloaded := NewStore(repo, nil)
	reloaded.Load(ctx)

	snap := reloaded.Snapshot()
	require.Len(t, snap.TempLogs, 1)
	assert.Equal(t, sampleRecord(), snap.TempLogs[0])
	assert.Equal(t, "La Belle Assiette", snap.Settings.CompanyName)
	// Timestamps come back as real time values, not strings.
	assert.Equal(t, 2024, snap.TempLogs[0].Timestamp.Year())
}

func TestSaveIsIdempotent(t *testing.T) {
	repo := snapshot.NewMemoryRepository(0)
	ctx := context.Background()

	st := NewStore(repo, nil)
	st.Load(ctx)
	st.Update(ctx, func(snap *models.Snapshot) {
		snap.TempLogs = append(snap.TempLogs, sampleRecord())
	})

	first, ok, err := repo.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	st.Update(ctx, func(*models.Snapshot) {})

	second, ok, err := repo.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, second)
}

func TestLoadMalformedSnapshotStartsEmpty(t *testing.T) {
	repo := snapshot.NewMemoryRepository(0)
	ctx := context.Background()
	require.NoError(t, repo.Write(ctx, []byte("{not json")))

	st := NewStore(repo, nil)
	st.Load(ctx)

	assert.Empty(t, st.Snapshot().TempLogs)
	assert.False(t, st.StorageFull())
}

func TestQuotaExceededKeepsMutationAndRaisesFlag(t *testing.T) {
	repo := snapshot.NewMemoryRepository(0)
	ctx := context.Background()

	st := NewStore(repo, nil)
	st.Load(ctx)
	st.Update(ctx, func(snap *models.Snapshot) {
		snap.TempLogs = append(snap.TempLogs, sampleRecord())
	})
	require.False(t, st.StorageFull())

	previous, ok, err := repo.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	repo.SetQuota(10)
	st.Update(ctx, func(snap *models.Snapshot) {
		rec := sampleRecord()
		rec.ID = "rec-2"
		snap.TempLogs = append(snap.TempLogs, rec)
	})

	// The mutation stands in memory, the warning is up, the previous
	// snapshot is untouched on disk.
	assert.True(t, st.StorageFull())
	assert.Len(t, st.Snapshot().TempLogs, 2)
	current, ok, err := repo.Read(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, previous, current)
}

func TestQuotaWarningClearsOnNextSuccessfulSave(t *testing.T) {
	repo := snapshot.NewMemoryRepository(0)
	ctx := context.Background()

	st := NewStore(repo, nil)
	st.Load(ctx)

	repo.SetQuota(10)
	st.Update(ctx, func(snap *models.Snapshot) {
		snap.TempLogs = append(snap.TempLogs, sampleRecord())
	})
	require.True(t, st.StorageFull())

	repo.SetQuota(0)
	st.Update(ctx, func(*models.Snapshot) {})
	assert.False(t, st.StorageFull())
}

func TestRestoreReplacesStateAndSaves(t *testing.T) {
	repo := snapshot.NewMemoryRepository(0)
	ctx := context.Background()

	st := NewStore(repo, nil)
	st.Load(ctx)
	st.Update(ctx, func(snap *models.Snapshot) {
		snap.TempLogs = append(snap.TempLogs, sampleRecord())
	})

	incoming := models.DefaultSnapshot()
	incoming.Settings.CompanyName = "Restaurant du Port"
	st.Restore(ctx, incoming)

	snap := st.Snapshot()
	assert.Empty(t, snap.TempLogs)
	assert.Equal(t, "Restaurant du Port", snap.Settings.CompanyName)

	reloaded := NewStore(repo, nil)
	reloaded.Load(ctx)
	assert.Equal(t, "Restaurant du Port", reloaded.Snapshot().Settings.CompanyName)
}

func TestResetClearsSlotAndState(t *testing.T) {
	repo := snapshot.NewMemoryRepository(0)
	ctx := context.Background()

	st := NewStore(repo, nil)
	st.Load(ctx)
	st.Update(ctx, func(snap *models.Snapshot) {
		snap.TempLogs = append(snap.TempLogs, sampleRecord())
	})

	st.Reset(ctx)

	assert.Empty(t, st.Snapshot().TempLogs)
	_, ok, err := repo.Read(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotCopyDoesNotAliasState(t *testing.T) {
	st := NewStore(snapshot.NewMemoryRepository(0), nil)
	st.Load(context.Background())
	st.Update(context.Background(), func(snap *models.Snapshot) {
		snap.TempLogs = append(snap.TempLogs, sampleRecord())
	})

	copy1 := st.Snapshot()
	copy1.TempLogs[0].Equipment = "mutated"

	assert.Equal(t, "Chambre Froide 1", st.Snapshot().TempLogs[0].Equipment)
}
