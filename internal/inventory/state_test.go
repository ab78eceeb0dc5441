package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdash/internal"
)

func seeded() *State {
	return NewFrom(internal.Inventory{
		Notebooks: []internal.Notebook{
			{SerialNumber: "NB1", Model: "Dell", Status: internal.StatusBackup},
			{SerialNumber: "NB2", Model: "Lenovo", Status: internal.StatusFormatting},
			{SerialNumber: "NB1", Model: "HP", Status: internal.StatusPoweredOff},
		},
		Handhelds: []internal.Handheld{
			{ID: "4", SerialNumber: "HH1", Status: "Ok"},
			{ID: "5", SerialNumber: "HH2", Status: "Erro"},
		},
		Printers: []internal.Printer{
			{ID: "P-10", IPAddress: "10.123.450.67", SerialNumber: "XXZ998877"},
		},
	})
}

func TestNewIsEmpty(t *testing.T) {
	inv := New().Snapshot()
	assert.Empty(t, inv.Notebooks)
	assert.Empty(t, inv.Handhelds)
	assert.Empty(t, inv.Printers)
}

func TestReplaceDiscardsPriorContents(t *testing.T) {
	s := seeded()
	s.Replace(internal.Inventory{Printers: []internal.Printer{{ID: "?", SerialNumber: "XXZ1"}}})

	inv := s.Snapshot()
	assert.Empty(t, inv.Notebooks)
	assert.Empty(t, inv.Handhelds)
	require.Len(t, inv.Printers, 1)
}

func TestSnapshotIsCopy(t *testing.T) {
	s := seeded()
	inv := s.Snapshot()
	inv.Notebooks[0].Model = "changed"
	assert.Equal(t, "Dell", s.Snapshot().Notebooks[0].Model)
}

func TestFind(t *testing.T) {
	s := seeded()

	got, ok := s.Find(internal.CategoryNotebooks, "  nb1 ")
	require.True(t, ok)
	assert.Equal(t, "Dell", got.(internal.Notebook).Model)

	_, ok = s.Find(internal.CategoryPrinters, "missing")
	assert.False(t, ok)
}

func TestSaveRejectsEmptySerial(t *testing.T) {
	s := seeded()
	before := s.Snapshot()

	_, err := s.SaveNotebook("   ", "Dell", "Backup")
	assert.ErrorIs(t, err, ErrEmptySerial)
	_, err = s.SaveHandheld("", "Ok")
	assert.ErrorIs(t, err, ErrEmptySerial)
	_, err = s.SavePrinter("", "10.0.0.1")
	assert.ErrorIs(t, err, ErrEmptySerial)

	assert.Equal(t, before, s.Snapshot())
}

func TestSaveNotebookStatus(t *testing.T) {
	s := New()
	_, err := s.SaveNotebook("nb9", "", "Lost")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	created, err := s.SaveNotebook(" nb9 ", "", "in operation")
	require.NoError(t, err)
	assert.True(t, created)

	nb := s.Snapshot().Notebooks[0]
	assert.Equal(t, "NB9", nb.SerialNumber)
	assert.Equal(t, internal.DefaultNotebookModel, nb.Model)
	assert.Equal(t, internal.StatusInOperation, nb.Status)
}

func TestSaveNotebookEditsFirstMatch(t *testing.T) {
	s := seeded()
	created, err := s.SaveNotebook("nb1", "Latitude", "InOperation")
	require.NoError(t, err)
	assert.False(t, created)

	inv := s.Snapshot()
	require.Len(t, inv.Notebooks, 3)
	assert.Equal(t, "Latitude", inv.Notebooks[0].Model)
	assert.Equal(t, "HP", inv.Notebooks[2].Model)
}

func TestSaveHandheldKeepsID(t *testing.T) {
	s := seeded()

	created, err := s.SaveHandheld("hh2", "Ok")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = s.SaveHandheld("hh3", "")
	require.NoError(t, err)
	assert.True(t, created)

	inv := s.Snapshot()
	assert.Equal(t, internal.Handheld{ID: "5", SerialNumber: "HH2", Status: "Ok"}, inv.Handhelds[1])
	assert.Equal(t, internal.Handheld{ID: internal.ManualRecordID, SerialNumber: "HH3", Status: "Ok"}, inv.Handhelds[2])
}

func TestSavePrinter(t *testing.T) {
	s := seeded()

	created, err := s.SavePrinter("xxz998877", " 10.1.1.1 ")
	require.NoError(t, err)
	assert.False(t, created)

	created, err = s.SavePrinter("XXZ000001", "10.1.1.2")
	require.NoError(t, err)
	assert.True(t, created)

	inv := s.Snapshot()
	assert.Equal(t, internal.Printer{ID: "P-10", IPAddress: "10.1.1.1", SerialNumber: "XXZ998877"}, inv.Printers[0])
	assert.Equal(t, internal.ManualRecordID, inv.Printers[1].ID)
}

func TestDeleteRemovesDuplicates(t *testing.T) {
	s := seeded()

	n, err := s.Delete(internal.CategoryNotebooks, "Nb1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, s.Snapshot().Notebooks, 1)

	n, err = s.Delete(internal.CategoryPrinters, "nope")
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.Delete(internal.Category("tablets"), "x")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestBeginIngestGuard(t *testing.T) {
	s := New()

	done, err := s.BeginIngest()
	require.NoError(t, err)

	_, err = s.BeginIngest()
	assert.ErrorIs(t, err, ErrIngestInProgress)

	done()
	done()

	done2, err := s.BeginIngest()
	require.NoError(t, err)
	done2()
}
