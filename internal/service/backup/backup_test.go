package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/visijn/haccp/internal/domain/models"
	"github.com/visijn/haccp/internal/repository/snapshot"
	"github.com/visijn/haccp/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	st := store.NewStore(snapshot.NewMemoryRepository(0), nil)
	st.Load(context.Background())

	svc := NewService(st, nil)
	svc.now = func() time.Time { return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC) }
	seq := 0
	svc.newID = func() string {
		seq++
		return fmt.Sprintf("id-%d", seq)
	}
	return svc, st
}

func TestExportFilename(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	st.Update(ctx, func(snap *models.Snapshot) {
		snap.Settings.CompanyName = "Le Petit Bistrot"
	})

	_, filename, err := svc.Export()
	require.NoError(t, err)
	assert.Equal(t, "PACKAGE_VISIJN_Le_Petit_Bistrot_2024-03-15.json", filename)

	st.Update(ctx, func(snap *models.Snapshot) {
		snap.Settings.CompanyName = "   "
	})
	_, filename, err = svc.Export()
	require.NoError(t, err)
	assert.Equal(t, "PACKAGE_VISIJN_HACCP_2024-03-15.json", filename)
}

func TestExportImportRoundTrip(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	stamp := models.NewTimestamp(time.Date(2024, 3, 15, 9, 15, 0, 0, time.UTC))
	st.Update(ctx, func(snap *models.Snapshot) {
		snap.TempLogs = []models.TemperatureRecord{
			{ID: "t-1", Equipment: "Chambre Froide 1", Temperature: 3.2, Timestamp: stamp, Status: models.StatusOK, User: "Alice"},
		}
		snap.Settings.CompanyName = "Le Petit Bistrot"
	})

	blob, _, err := svc.Export()
	require.NoError(t, err)
	assert.True(t, json.Valid(blob))

	// Blow the state away, then restore from the exported package.
	st.Reset(ctx)
	require.NoError(t, svc.Import(ctx, blob))

	got := st.Snapshot()
	require.Len(t, got.TempLogs, 1)
	assert.Equal(t, "t-1", got.TempLogs[0].ID)
	assert.Equal(t, stamp, got.TempLogs[0].Timestamp)
	assert.Equal(t, "Le Petit Bistrot", got.Settings.CompanyName)
}

func TestImportRejectsMalformedFile(t *testing.T) {
	svc, st := newTestService(t)
	ctx := context.Background()

	st.Update(ctx, func(snap *models.Snapshot) {
		snap.Settings.CompanyName = "Le Petit Bistrot"
	})

	err := svc.Import(ctx, []byte("not a backup"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidImport))

	// Rejected imports leave the state untouched.
	assert.Equal(t, "Le Petit Bistrot", st.Snapshot().Settings.CompanyName)
}

func TestImportNormalizesPartialFile(t *testing.T) {
	svc, st := newTestService(t)

	require.NoError(t, svc.Import(context.Background(), []byte(`{"settings":{"company_name":"Chez Momo"}}`)))

	got := st.Snapshot()
	assert.Equal(t, "Chez Momo", got.Settings.CompanyName)
	// Missing collections come back as empty slices, not nil.
	assert.NotNil(t, got.TempLogs)
	assert.NotNil(t, got.Documents)
}

func TestParseEquipmentList(t *testing.T) {
	text := "Chambre Froide 1\r\n\nFrigo Bar\n  Congélateur  \n"
	assert.Equal(t, []string{"Chambre Froide 1", "Frigo Bar", "Congélateur"}, ParseEquipmentList(text))
	assert.Empty(t, ParseEquipmentList("\n\n"))
}

func TestParseCleaningTemplates(t *testing.T) {
	svc, _ := newTestService(t)

	text := "Cuisine, Nettoyer les plans de travail, weekly\n" +
		"Plonge, Vidange lave-vaisselle, HEBDO\n" +
		"Salle, Balayer\n" +
		"Stockage, Ranger, tous les jours\n" +
		"ligne-invalide\n" +
		"\n"
	tasks := svc.ParseCleaningTemplates(text)
	require.Len(t, tasks, 4)

	assert.Equal(t, "Cuisine", tasks[0].Area)
	assert.Equal(t, "Nettoyer les plans de travail", tasks[0].TaskName)
	assert.Equal(t, models.FrequencyWeekly, tasks[0].Frequency)
	assert.Equal(t, models.FrequencyWeekly, tasks[1].Frequency)
	// No frequency column, or an unrecognized one, defaults to daily.
	assert.Equal(t, models.FrequencyDaily, tasks[2].Frequency)
	assert.Equal(t, models.FrequencyDaily, tasks[3].Frequency)

	// Each template gets a fresh identifier.
	assert.NotEqual(t, tasks[0].ID, tasks[1].ID)
}
