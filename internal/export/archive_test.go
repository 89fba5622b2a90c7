package export

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/JonMunkholm/seedcheck/internal/schema"
	"github.com/JonMunkholm/seedcheck/internal/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleWorkbook() *workbook.Workbook {
	wb := workbook.New("seed.xlsx")

	areas := workbook.NewTable(schema.SheetAreas, schema.ColAreaName)
	areas.Append(workbook.Text("Matemáticas"))
	wb.Add(areas)

	subjects := workbook.NewTable(schema.SheetSubjects, schema.Default().Columns(schema.SheetSubjects)...)
	subjects.Append(workbook.Text("Aritmética"), workbook.Text("Matemáticas"), workbook.Text("1, 2"))
	wb.Add(subjects)

	grades := workbook.NewTable(schema.SheetAnnualGrades, schema.ColSubjectName, schema.ColAnnualAvg)
	grades.Append(workbook.Text("Aritmética"), workbook.Number(4.5))
	grades.Append(workbook.Text("Química"), workbook.Number(3))
	grades.Append(workbook.Text("Aritmética"), workbook.Null)
	wb.Add(grades)
	return wb
}

func readArchive(t *testing.T, data []byte) map[string][]byte {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	out := make(map[string][]byte, len(zr.File))
	for _, f := range zr.File {
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[f.Name] = b
	}
	return out
}

func TestArchive_Export(t *testing.T) {
	wb := sampleWorkbook()
	ref := core.BuildReference(wb)
	summary := core.RunSummary{RunID: "run-1", Workbook: wb.Name, Valid: true}

	var buf bytes.Buffer
	require.NoError(t, NewArchive(&buf, nil).Export(context.Background(), wb, ref, summary))

	files := readArchive(t, buf.Bytes())
	assert.Len(t, files, 5)
	assert.Contains(t, files, SummaryEntry)

	var gotRef map[string][]string
	require.NoError(t, json.Unmarshal(files[ReferenceEntry], &gotRef))
	assert.Equal(t, []string{"Aritmética"}, gotRef[string(core.CategorySubjects)])

	var areas []map[string]any
	require.NoError(t, json.Unmarshal(files["sheets/areas.json"], &areas))
	assert.Equal(t, []map[string]any{{schema.ColAreaName: "Matemáticas"}}, areas)

	var grades []map[string]any
	require.NoError(t, json.Unmarshal(files["sheets/calificaciones_anuales.json"], &grades))
	require.Len(t, grades, 2, "unknown subject row is left out")
	assert.Equal(t, 4.5, grades[0][schema.ColAnnualAvg])
	assert.Nil(t, grades[1][schema.ColAnnualAvg])
}

func TestRecords_WithoutSubjectsKeepsEveryRow(t *testing.T) {
	wb := sampleWorkbook()
	tbl, _ := wb.Table(schema.SheetAnnualGrades)

	got := Records(tbl, core.Reference{})

	assert.Len(t, got, 3)
}

func TestArchive_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	err := NewArchive(&buf, nil).Export(ctx, sampleWorkbook(), core.Reference{}, core.RunSummary{})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestEntryName(t *testing.T) {
	tests := map[string]string{
		schema.SheetCourses:      "sheets/cursos_academicos.json",
		schema.SheetAreas:        "sheets/areas.json",
		schema.SheetEnrollments:  "sheets/matriculas.json",
		schema.SheetHeadquarters: "sheets/sede_principal.json",
	}
	for sheet, want := range tests {
		assert.Equal(t, want, EntryName(sheet), sheet)
	}
}

func TestRecords_DateCellsFromWorkbook(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := schema.SheetCourses
	require.NoError(t, f.SetSheetName("Sheet1", sheet))
	rows := [][]any{
		{"Un año escolar por fila"},
		{schema.ColCourseName, schema.ColStartDate, schema.ColEndDate},
		{2024, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)},
	}
	for i := range rows {
		axis, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, axis, &rows[i]))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	wb, err := workbook.Read(context.Background(), "seed.xlsx", buf)
	require.NoError(t, err)
	tbl, ok := wb.Table(sheet)
	require.True(t, ok)

	got := Records(tbl, core.BuildReference(wb))

	require.Len(t, got, 1)
	assert.Equal(t, map[string]any{
		schema.ColCourseName: float64(2024),
		schema.ColStartDate:  "2024-02-01 00:00:00",
		schema.ColEndDate:    "2024-12-01 00:00:00",
	}, got[0])
}
