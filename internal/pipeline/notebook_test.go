package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invdash/internal"
)

func stock(rows ...[]string) [][]string {
	return append(append([][]string{}, stockHeader...), rows...)
}

func TestParseNotebooksAllZones(t *testing.T) {
	rows := stock(nbRow("a1", "Latitude", "b1", "Vostro", "c1", "ThinkPad"))
	got := ParseNotebooks(rows, DefaultLayout().Notebooks)

	assert.Equal(t, []internal.Notebook{
		{SerialNumber: "A1", Model: "Latitude", Status: internal.StatusFormatting},
		{SerialNumber: "B1", Model: "Vostro", Status: internal.StatusBackup},
		{SerialNumber: "C1", Model: "ThinkPad", Status: internal.StatusPoweredOff},
	}, got)
}

func TestParseNotebooksOnlyBackupZone(t *testing.T) {
	rows := stock(nbRow("", "", "b1", "", "", ""))
	got := ParseNotebooks(rows, DefaultLayout().Notebooks)

	require.Len(t, got, 1)
	assert.Equal(t, internal.Notebook{SerialNumber: "B1", Model: internal.DefaultNotebookModel, Status: internal.StatusBackup}, got[0])
}

func TestParseNotebooksOrder(t *testing.T) {
	rows := stock(
		nbRow("a1", "", "b1", "", "", ""),
		nbRow("a2", "", "", "", "c2", ""),
	)
	got := ParseNotebooks(rows, DefaultLayout().Notebooks)

	serials := make([]string, 0, len(got))
	for _, n := range got {
		serials = append(serials, n.SerialNumber)
	}
	assert.Equal(t, []string{"A1", "B1", "A2", "C2"}, serials)
}

func TestParseNotebooksSkipsHeaderRowsAndSentinel(t *testing.T) {
	header := nbRow("real1", "", "", "", "", "")
	rows := [][]string{header, header, header,
		nbRow("S/N", "", "s/n", "", " s/n 2 ", ""),
		nbRow("  x9 ", "", "", "", "", ""),
	}
	got := ParseNotebooks(rows, DefaultLayout().Notebooks)

	require.Len(t, got, 1)
	assert.Equal(t, "X9", got[0].SerialNumber)
}

func TestParseNotebooksShortAndEmptyRows(t *testing.T) {
	rows := stock(
		nil,
		[]string{"", "a1"},
		[]string{"", "   "},
	)
	got := ParseNotebooks(rows, DefaultLayout().Notebooks)

	require.Len(t, got, 1)
	assert.Equal(t, internal.Notebook{SerialNumber: "A1", Model: "Dell", Status: internal.StatusFormatting}, got[0])
}

func TestParseNotebooksNeverInOperation(t *testing.T) {
	rows := stock(nbRow("a", "", "b", "", "c", ""))
	for _, n := range ParseNotebooks(rows, DefaultLayout().Notebooks) {
		assert.NotEqual(t, internal.StatusInOperation, n.Status)
	}
}
