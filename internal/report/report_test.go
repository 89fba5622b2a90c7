package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSummary() core.RunSummary {
	return core.RunSummary{
		RunID:    "run-1",
		Workbook: "seed.xlsx",
		Structure: core.ValidationResult{
			Valid:    true,
			Errors:   []string{},
			Warnings: []string{"unexpected sheet: Hoja1"},
		},
		Sheets: []core.SheetReport{
			{
				Sheet: "Sedes", Exists: true, Rows: 2,
				Result: core.ValidationResult{Valid: true, Errors: []string{}, Warnings: []string{}},
			},
			{
				Sheet: "Grupos", Exists: true, Rows: 4,
				Result: core.ValidationResult{
					Valid:    false,
					Errors:   []string{"1 unknown campus(es) in 'Sedes asociadas': Campus X"},
					Warnings: []string{"unexpected column: Notas"},
				},
			},
		},
		TotalErrors:   1,
		TotalWarnings: 2,
		ValidSheets:   []string{"Sedes"},
		InvalidSheets: []string{"Grupos"},
		MissingSheets: []string{},
		ExtraSheets:   []string{"Hoja1"},
		Valid:         false,
	}
}

func TestLines(t *testing.T) {
	got := Lines(sampleSummary())

	assert.Equal(t, []Line{
		{WorkbookScope, core.SeverityWarning, "unexpected sheet: Hoja1", 0},
		{"Grupos", core.SeverityError, "1 unknown campus(es) in 'Sedes asociadas': Campus X", 4},
		{"Grupos", core.SeverityWarning, "unexpected column: Notas", 4},
	}, got)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleSummary()))

	require.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))
	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)

	assert.Equal(t, [][]string{
		CSVHeader,
		{"(workbook)", "warning", "unexpected sheet: Hoja1", "0"},
		{"Grupos", "error", "1 unknown campus(es) in 'Sedes asociadas': Campus X", "4"},
		{"Grupos", "warning", "unexpected column: Notas", "4"},
	}, records)
}

func TestWriteCSV_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, core.RunSummary{Valid: true}))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[len(utf8BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{CSVHeader}, records)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleSummary()))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-1", got["run_id"])
	assert.Equal(t, false, got["valid"])
	assert.EqualValues(t, 1, got["total_errors"])
	assert.Len(t, got["sheets"], 2)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleSummary(), TextOptions{}))
	out := buf.String()

	assert.Contains(t, out, "Workbook: seed.xlsx\n")
	assert.Contains(t, out, "Result: INVALID (1 errors, 2 warnings)\n")
	assert.Contains(t, out, "  warning: unexpected sheet: Hoja1\n")
	assert.Contains(t, out, "[ok] Sedes (2 rows)\n")
	assert.Contains(t, out, "[FAIL] Grupos (4 rows)\n  error: 1 unknown campus(es) in 'Sedes asociadas': Campus X\n  warning: unexpected column: Notas\n")
	assert.NotContains(t, out, "\x1b[", "no colour codes when disabled")
}

func TestWriteText_Quiet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleSummary(), TextOptions{Quiet: true}))

	assert.NotContains(t, buf.String(), "Sedes (2 rows)")
	assert.Contains(t, buf.String(), "Grupos (4 rows)")
}

func TestWriteText_Color(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, sampleSummary(), TextOptions{Color: true}))

	assert.Contains(t, buf.String(), "\x1b[")
	assert.Contains(t, buf.String(), "INVALID")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestWriters_PropagateWriteErrors(t *testing.T) {
	s := sampleSummary()

	assert.Error(t, WriteCSV(failingWriter{}, s))
	assert.Error(t, WriteJSON(failingWriter{}, s))
	err := WriteText(failingWriter{}, s, TextOptions{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "closed pipe"))
}
