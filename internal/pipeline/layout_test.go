package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdash/internal"
)

func TestDefaultLayoutIsValid(t *testing.T) {
	layout := DefaultLayout()
	require.NoError(t, layout.Validate())
	assert.Equal(t, 3, layout.Notebooks.HeaderRows)
	assert.Equal(t, []int{1, 8, 14}, []int{
		layout.Notebooks.Zones[0].SerialColumn,
		layout.Notebooks.Zones[1].SerialColumn,
		layout.Notebooks.Zones[2].SerialColumn,
	})
	assert.Equal(t, PrinterSheet, layout.Printers.Sheet)
}

func TestLoadLayoutEmptyPath(t *testing.T) {
	layout, err := LoadLayout("")
	require.NoError(t, err)
	assert.Equal(t, NotebookSheet, layout.Notebooks.Sheet)
}

func TestLoadLayoutOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
notebooks:
  sheet: Notebooks Estoque
  zones:
    - serialColumn: 0
      modelOffset: 1
      status: Backup
printers:
  sheet: Impressoras
`), 0o644))

	layout, err := LoadLayout(path)
	require.NoError(t, err)
	assert.Equal(t, "Notebooks Estoque", layout.Notebooks.Sheet)
	assert.Equal(t, 3, layout.Notebooks.HeaderRows)
	assert.Equal(t, []Zone{{SerialColumn: 0, ModelOffset: 1, Status: internal.StatusBackup}}, layout.Notebooks.Zones)
	assert.Equal(t, "Impressoras", layout.Printers.Sheet)
	assert.Equal(t, -2, layout.Printers.IDOffset)
	assert.Equal(t, HandheldSheet, layout.Handhelds.Sheet)
}

func TestLoadLayoutInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
notebooks:
  headerRows: -1
  zones:
    - serialColumn: -4
      status: Broken
handhelds:
  sheet: ""
  serialAliases: []
`), 0o644))

	_, err := LoadLayout(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "headerRows")
	assert.Contains(t, err.Error(), "serialColumn")
	assert.Contains(t, err.Error(), "Broken")
	assert.Contains(t, err.Error(), "handhelds.sheet")
	assert.Contains(t, err.Error(), "serialAliases")
}

func TestLoadLayoutMissingFile(t *testing.T) {
	_, err := LoadLayout(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
