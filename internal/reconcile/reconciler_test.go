package reconcile

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdantiq/esgtrack/internal/clock"
	"github.com/verdantiq/esgtrack/internal/domain"
	"github.com/verdantiq/esgtrack/internal/ledger"
	esgrequire "github.com/verdantiq/esgtrack/internal/require"
	"github.com/verdantiq/esgtrack/internal/storage"
)

func testReconciler(t *testing.T) (*Reconciler, *ledger.Service) {
	t.Helper()
	store, err := storage.NewStore(t.TempDir(), "user_example_com")
	require.NoError(t, err)
	clk := clock.Fixed{T: time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)}
	svc := ledger.NewService(store, clk, zerolog.Nop())
	extractor := esgrequire.NewExtractor(clk, esgrequire.PeriodModeCurrent, 0, zerolog.Nop())
	return NewReconciler(svc, extractor, zerolog.Nop()), svc
}

func electricityLocations() []domain.Location {
	return []domain.Location{
		{
			Name: "Main Office",
			Meters: []domain.RawMeter{
				{MeterNumber: "ELC0001", Type: "electricity", Provider: "DEWA"},
			},
		},
	}
}

func billsTask() domain.Task {
	return domain.Task{
		ID:             "task-1",
		Title:          "Upload monthly electricity bills",
		ActionRequired: "Upload 1 month of electricity bills",
		Category:       domain.CategoryEnvironmental,
	}
}

func TestSyncInitializesUnknownTasks(t *testing.T) {
	rec, svc := testReconciler(t)

	changed, err := rec.Sync([]domain.Task{billsTask()}, electricityLocations())
	require.NoError(t, err)
	assert.True(t, changed)

	entry, err := svc.Entry("task-1")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Files.Required, "one required bill document for ELC0001")
	assert.NotEmpty(t, entry.DataEntries.RequiredFields)
	assert.Equal(t, domain.CategoryEnvironmental, entry.Category)
}

func TestSyncIsIdempotent(t *testing.T) {
	rec, _ := testReconciler(t)
	tasks := []domain.Task{billsTask()}
	locations := electricityLocations()

	changed, err := rec.Sync(tasks, locations)
	require.NoError(t, err)
	require.True(t, changed)

	changed, err = rec.Sync(tasks, locations)
	require.NoError(t, err)
	assert.False(t, changed, "second pass over identical server state changes nothing")
}

func TestSyncReplacesDivergedFileList(t *testing.T) {
	rec, svc := testReconciler(t)
	locations := electricityLocations()

	_, err := rec.Sync([]domain.Task{billsTask()}, locations)
	require.NoError(t, err)

	// Locally record an upload the server does not know about, then present
	// a server view with a different attachment set.
	require.NoError(t, svc.LogFileUpload("task-1", domain.FileSummary{ID: "local-1", Filename: "draft.pdf"}))

	task := billsTask()
	task.Attachments = []domain.Evidence{
		{ID: "srv-1", Title: "march.pdf", OriginalFilename: "march.pdf", FileSize: 1024, AttachmentType: domain.AttachmentTypeEvidence},
		{ID: "srv-2", Title: "april.pdf", OriginalFilename: "april.pdf", FileSize: 2048, AttachmentType: domain.AttachmentTypeEvidence},
	}

	changed, err := rec.Sync([]domain.Task{task}, locations)
	require.NoError(t, err)
	assert.True(t, changed)

	entry, err := svc.Entry("task-1")
	require.NoError(t, err)
	assert.Equal(t, 2, entry.Files.Uploaded)
	assert.Len(t, entry.Files.Items, 2)
	assert.Equal(t, "march.pdf", entry.Files.Items[0].Filename)
}

func TestSyncPreservesLocalFileMetadata(t *testing.T) {
	rec, svc := testReconciler(t)
	locations := electricityLocations()

	_, err := rec.Sync([]domain.Task{billsTask()}, locations)
	require.NoError(t, err)

	local := domain.FileSummary{ID: "srv-1", Filename: "my-nice-name.pdf", Size: 999}
	require.NoError(t, svc.LogFileUpload("task-1", local))

	task := billsTask()
	task.Attachments = []domain.Evidence{
		{ID: "srv-1", OriginalFilename: "server-name.pdf", FileSize: 1024},
		{ID: "srv-2", OriginalFilename: "other.pdf", FileSize: 2048},
	}

	_, err = rec.Sync([]domain.Task{task}, locations)
	require.NoError(t, err)

	entry, err := svc.Entry("task-1")
	require.NoError(t, err)
	require.Len(t, entry.Files.Items, 2)

	// The logged upload defaulted its type and timestamp; what must survive
	// the replace is the locally chosen name and size, not the server's.
	got := entry.Files.Items[0]
	assert.Equal(t, "srv-1", got.ID)
	assert.Equal(t, "my-nice-name.pdf", got.Filename, "known ids keep their local summary")
	assert.Equal(t, int64(999), got.Size)
	assert.Equal(t, domain.AttachmentTypeEvidence, got.Type)
	assert.Equal(t, "other.pdf", entry.Files.Items[1].Filename)
}

func TestSyncIgnoresDataWhenServerCarriesNone(t *testing.T) {
	rec, svc := testReconciler(t)
	locations := electricityLocations()
	tasks := []domain.Task{billsTask()}

	_, err := rec.Sync(tasks, locations)
	require.NoError(t, err)

	// A locally logged value must not make every later sync against a
	// server task without data entries report a change.
	require.NoError(t, svc.LogDataEntry("task-1", "ELC0001_current", "1250"))

	for i := 0; i < 2; i++ {
		changed, err := rec.Sync(tasks, locations)
		require.NoError(t, err)
		assert.False(t, changed, "pass %d over a task without data entries", i+1)
	}

	entry, err := svc.Entry("task-1")
	require.NoError(t, err)
	assert.Equal(t, "1250", entry.DataEntries.Entries["ELC0001_current"].Value)
}

func TestSyncMergesServerDataEntries(t *testing.T) {
	rec, svc := testReconciler(t)
	locations := electricityLocations()

	_, err := rec.Sync([]domain.Task{billsTask()}, locations)
	require.NoError(t, err)

	task := billsTask()
	task.DataEntries = map[string]string{
		"ELC0001_current": "1250",
		"blank":           "",
	}

	changed, err := rec.Sync([]domain.Task{task}, locations)
	require.NoError(t, err)
	assert.True(t, changed)

	entry, err := svc.Entry("task-1")
	require.NoError(t, err)
	assert.Equal(t, "1250", entry.DataEntries.Entries["ELC0001_current"].Value)
	_, blankStored := entry.DataEntries.Entries["blank"]
	assert.False(t, blankStored, "empty server values are not adopted")
	assert.Contains(t, entry.DataEntries.CompletedFields, "ELC0001_current")
}

func TestSyncSkipsTasksWithoutID(t *testing.T) {
	rec, svc := testReconciler(t)

	changed, err := rec.Sync([]domain.Task{{Title: "nameless"}}, nil)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Empty(t, svc.Log().Tasks)
}

func TestFallbackMatchesLedgerNumbers(t *testing.T) {
	rec, svc := testReconciler(t)
	locations := electricityLocations()

	task := billsTask()
	task.Attachments = []domain.Evidence{{ID: "srv-1", OriginalFilename: "march.pdf", FileSize: 1024}}
	task.DataEntries = map[string]string{"ELC0001_current": "1250"}
	tasks := []domain.Task{task}

	_, err := rec.Sync(tasks, locations)
	require.NoError(t, err)

	ledgerSummary := svc.ProgressSummary()
	fallbackSummary := rec.FallbackSummary(tasks, locations)

	assert.Equal(t, ledgerSummary, fallbackSummary)

	assert.Equal(t, svc.NextSteps(), rec.FallbackNextSteps(tasks, locations))
}
