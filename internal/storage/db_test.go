package storage

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdash/internal"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// openPair opens two independent handles on one file, as two processes would.
func openPair(t *testing.T) (*DB, *DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "session.db")
	a, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	b, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return a, b
}

func TestLoadSessionEmpty(t *testing.T) {
	db := openTemp(t)
	inv, gen, err := db.LoadSession()
	require.NoError(t, err)
	assert.Zero(t, gen)
	assert.Empty(t, inv.Notebooks)
	assert.Empty(t, inv.Handhelds)
	assert.Empty(t, inv.Printers)
}

func TestRecordIngestIsWholesale(t *testing.T) {
	db := openTemp(t)

	first := internal.Inventory{
		Notebooks: []internal.Notebook{
			{SerialNumber: "B", Model: "Dell", Status: internal.StatusBackup},
			{SerialNumber: "A", Model: "HP", Status: internal.StatusFormatting},
			{SerialNumber: "B", Model: "Dell", Status: internal.StatusPoweredOff},
		},
		Handhelds: []internal.Handheld{{ID: "1", SerialNumber: "HH1", Status: "Ok"}},
		Printers:  []internal.Printer{{ID: "P", IPAddress: "10.1.1.1", SerialNumber: "XXZ1"}},
	}
	gen, err := db.RecordIngest(first, internal.RunRecord{ID: "r1", Source: "file", ContentHash: "h1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)

	got, err := db.LoadInventory()
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := internal.Inventory{Handhelds: []internal.Handheld{{ID: "?", SerialNumber: "HH9", Status: "Erro"}}}
	gen, err = db.RecordIngest(second, internal.RunRecord{ID: "r2", Source: "file", ContentHash: "h2"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), gen)

	got, err = db.LoadInventory()
	require.NoError(t, err)
	assert.Empty(t, got.Notebooks)
	assert.Empty(t, got.Printers)
	assert.Equal(t, second.Handhelds, got.Handhelds)
}

func TestRecordIngestRollsBackOnRunFailure(t *testing.T) {
	db := openTemp(t)
	kept := internal.Inventory{Printers: []internal.Printer{{ID: "P", IPAddress: "10.1.1.1", SerialNumber: "XXZ1"}}}
	_, err := db.RecordIngest(kept, internal.RunRecord{ID: "dup", Source: "file", ContentHash: "h1"})
	require.NoError(t, err)

	_, err = db.RecordIngest(internal.Inventory{}, internal.RunRecord{ID: "dup", Source: "file", ContentHash: "h2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record run")

	got, gen, err := db.LoadSession()
	require.NoError(t, err)
	assert.Equal(t, int64(1), gen)
	assert.Equal(t, kept.Printers, got.Printers)
}

func TestReplaceInventoryIfRejectsStaleGeneration(t *testing.T) {
	cli, watcher := openPair(t)

	_, loaded, err := cli.LoadSession()
	require.NoError(t, err)

	fresh := internal.Inventory{Handhelds: []internal.Handheld{
		{ID: "1", SerialNumber: "HH1", Status: "Ok"},
		{ID: "2", SerialNumber: "HH2", Status: "Ok"},
	}}
	_, err = watcher.RecordIngest(fresh, internal.RunRecord{ID: "r1", Source: "file", ContentHash: "h"})
	require.NoError(t, err)

	edited := internal.Inventory{Notebooks: []internal.Notebook{{SerialNumber: "NB1", Model: "Dell", Status: internal.StatusBackup}}}
	_, err = cli.ReplaceInventoryIf(edited, loaded)
	require.ErrorIs(t, err, ErrConflict)

	got, err := watcher.LoadInventory()
	require.NoError(t, err)
	assert.Equal(t, fresh.Handhelds, got.Handhelds)
	assert.Empty(t, got.Notebooks)

	_, current, err := cli.LoadSession()
	require.NoError(t, err)
	gen, err := cli.ReplaceInventoryIf(edited, current)
	require.NoError(t, err)
	assert.Equal(t, current+1, gen)
}

func TestIngestLockAcrossHandles(t *testing.T) {
	a, b := openPair(t)

	require.NoError(t, a.AcquireIngestLock("run-a", time.Minute))
	require.NoError(t, a.AcquireIngestLock("run-a", time.Minute))
	assert.ErrorIs(t, b.AcquireIngestLock("run-b", time.Minute), ErrLocked)

	_, gen, err := b.LoadSession()
	require.NoError(t, err)
	_, err = b.ReplaceInventoryIf(internal.Inventory{}, gen)
	assert.ErrorIs(t, err, ErrLocked)

	require.NoError(t, b.ReleaseIngestLock("run-b"))
	assert.ErrorIs(t, b.AcquireIngestLock("run-b", time.Minute), ErrLocked)

	require.NoError(t, a.ReleaseIngestLock("run-a"))
	require.NoError(t, b.AcquireIngestLock("run-b", time.Minute))
}

func TestExpiredIngestLockIsTakenOver(t *testing.T) {
	a, b := openPair(t)
	require.NoError(t, a.AcquireIngestLock("crashed", -time.Second))
	require.NoError(t, b.AcquireIngestLock("run-b", time.Minute))
	assert.ErrorIs(t, a.AcquireIngestLock("run-a", time.Minute), ErrLocked)
}

func TestRuns(t *testing.T) {
	db := openTemp(t)

	_, err := db.RecordIngest(internal.Inventory{}, internal.RunRecord{ID: "r1", Source: "file", ContentHash: "h1", Notebooks: 3})
	require.NoError(t, err)
	_, err = db.RecordIngest(internal.Inventory{}, internal.RunRecord{ID: "r2", Source: "file", ContentHash: "h2", MissingSheets: MissingSheetsJSON([]string{"Printers"})})
	require.NoError(t, err)

	runs, err := db.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "r2", runs[0].ID)
	assert.Equal(t, []string{"Printers"}, ParseMissingSheets(runs[0].MissingSheets))
	assert.Equal(t, 3, runs[1].Notebooks)
	assert.Empty(t, ParseMissingSheets(runs[1].MissingSheets))
}

func TestMetadata(t *testing.T) {
	db := openTemp(t)

	v, err := db.GetMetadata("source.last_hash")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, db.SetMetadata("source.last_hash", "abc"))
	require.NoError(t, db.SetMetadata("source.last_hash", "def"))

	v, err = db.GetMetadata("source.last_hash")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "def", *v)
}
