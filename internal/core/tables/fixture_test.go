package tables_test

import (
	"bytes"
	"regexp"
	"testing"
	"time"

	"github.com/JonMunkholm/seedcheck/internal/core/tables"
	"github.com/JonMunkholm/seedcheck/internal/schema"
	"github.com/JonMunkholm/seedcheck/internal/workbook"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func text(s string) workbook.Value { return workbook.Text(s) }

func num(f float64) workbook.Value { return workbook.Number(f) }

func date(s string) workbook.Value {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return workbook.Date(t)
}

// seed builds a complete workbook that passes every rule. Tests mutate a
// fresh copy to provoke one finding at a time.
func seed() *workbook.Workbook {
	wb := workbook.New("seed.xlsx")
	add := func(sheet string, rows ...workbook.Row) {
		tbl := workbook.NewTable(sheet, schema.Default().Columns(sheet)...)
		for _, r := range rows {
			tbl.AppendRow(r)
		}
		wb.Add(tbl)
	}

	add(schema.SheetInstructions)
	add(schema.SheetHeadquarters, workbook.Row{
		schema.ColInstitutionName:            text("Institución Educativa Pablo Neruda"),
		"INSTITUCIÓN EDUCATIVA PABLO NERUDA": text("Pablo Neruda"),
	})
	add(schema.SheetCampuses,
		workbook.Row{
			schema.ColInstitutionName: text("Sede Norte"),
			"Dirección":               text("Calle 1 # 2-3"),
			schema.ColPhone:           text("6041234567"),
			schema.ColEmail:           text("norte@ie.edu.co"),
			schema.ColDaneCode:        num(105001000111),
		},
		workbook.Row{
			schema.ColInstitutionName: text("Sede Sur"),
			"Dirección":               text("Carrera 4 # 5-6"),
			schema.ColPhone:           text("6047654321"),
			schema.ColEmail:           text("sur@ie.edu.co"),
			schema.ColDaneCode:        num(105001000222),
		},
	)
	add(schema.SheetAdmins, staff("Ana", "Ruiz", "ana@ie.edu.co", 1001, "3101112233"))
	add(schema.SheetCoordinators, staff("Jorge", "Pérez", "jorge@ie.edu.co", 1002, "3102223344"))
	add(schema.SheetCourses, workbook.Row{
		schema.ColCourseName: num(2024),
		schema.ColStartDate:  date("2024-01-15"),
		schema.ColEndDate:    date("2024-11-30"),
	})
	add(schema.SheetPeriods,
		period("Periodo 1", "2024-01-15", "2024-06-15"),
		period("Periodo 2", "2024-07-01", "2024-11-30"),
	)
	add(schema.SheetGrades,
		grade("Primaria", "1", "EDUCACION_BASICA_PRIMARIA", "No"),
		grade("Primaria", "2", "EDUCACION_BASICA_PRIMARIA", "No"),
		grade("Media", "11", "EDUCACION_MEDIA", "Sí"),
	)
	add(schema.SheetGroups, workbook.Row{
		schema.ColGroupName:        text("1A"),
		schema.ColGradeName:        text("1"),
		schema.ColAssociatedCampus: text("Sede Norte, Sede Sur"),
		schema.ColCapacity:         num(30),
	})
	add(schema.SheetAreas,
		workbook.Row{schema.ColAreaName: text("Matemáticas")},
		workbook.Row{schema.ColAreaName: text("Ciencias")},
	)
	add(schema.SheetSubjects,
		workbook.Row{
			schema.ColSubjectName:      text("Aritmética"),
			schema.ColAssociatedArea:   text("Matemáticas"),
			schema.ColAssociatedGrades: text("1, 2"),
		},
		workbook.Row{
			schema.ColSubjectName:      text("Física"),
			schema.ColAssociatedArea:   text("Ciencias"),
			schema.ColAssociatedGrades: text("11"),
		},
	)
	teacher := staff("Luis", "Gómez", "luis@ie.edu.co", 2001, "3203334455")
	teacher["Dirección"] = text("Calle 9 # 8-7")
	teacher[schema.ColAssignedCampus] = text("Sede Norte")
	teacher[schema.ColSubjectsInCharge] = text("Aritmética, Física")
	add(schema.SheetTeachers, teacher)
	add(schema.SheetClasses, class("Aritmética", 2001))
	add(schema.SheetEnrollments, workbook.Row{
		schema.ColDocumentNumber: num(3001),
		"Tipo de documento":      text("TI"),
		"Nombres":                text("Sofía"),
		"Apellidos":              text("Mora"),
		schema.ColBirthDate:      date("2015-03-02"),
		schema.ColAssignedCampus: text("Sede Norte"),
		schema.ColSchoolYear:     num(2024),
		"Grado":                  text("1"),
		"Grupo":                  text("1A"),
		schema.ColEmail:          text("sofia@familia.co"),
		"Nombres.1":              text("Marta"),
		"Parentesco":             text("Madre"),
	})
	add(schema.SheetAnnualGrades, annualGrade("Aritmética", tables.GradeKindQuantitative, num(4.5)))
	return wb
}

func staff(first, last, email string, doc float64, phone string) workbook.Row {
	return workbook.Row{
		"Nombres":                text(first),
		"Apellidos":              text(last),
		schema.ColEmail:          text(email),
		"Tipo de documento":      text("CC"),
		schema.ColDocumentNumber: num(doc),
		schema.ColPhone:          text(phone),
	}
}

func period(name, start, end string) workbook.Row {
	return workbook.Row{
		schema.ColPeriodName:     text(name),
		schema.ColStartDate:      date(start),
		schema.ColEndDate:        date(end),
		schema.ColAssociatedYear: num(2024),
	}
}

func grade(level, name, kind, final string) workbook.Row {
	return workbook.Row{
		schema.ColLevel:      text(level),
		schema.ColGradeName:  text(name),
		schema.ColGradeType:  text(kind),
		schema.ColFinalGrade: text(final),
	}
}

func class(subject string, teacherDoc float64) workbook.Row {
	return workbook.Row{
		schema.ColSubjectName:         text(subject),
		schema.ColGradeName:           text("1"),
		schema.ColGroupName:           text("1A"),
		schema.ColClassCampus:         text("Sede Norte"),
		schema.ColAssociatedYear:      num(2024),
		"Periodos asociados":          text("Periodo 1, Periodo 2"),
		"Jornada":                     text("Mañana"),
		"Nombre del profesor a cargo": text("Luis Gómez"),
		schema.ColTeacherDocument:     num(teacherDoc),
	}
}

func annualGrade(subject, kind string, avg workbook.Value) workbook.Row {
	return workbook.Row{
		"Número de documento del estudiante": num(3001),
		"Nombre del estudiante":              text("Sofía Mora"),
		schema.ColSubjectName:                text(subject),
		schema.ColSchoolYear:                 num(2024),
		schema.ColAssignedCampus:             text("Sede Norte"),
		schema.ColGradeKind:                  text(kind),
		schema.ColAnnualAvg:                  avg,
		schema.ColPassed:                     text("Sí"),
	}
}

func table(t *testing.T, wb *workbook.Workbook, sheet string) *workbook.Table {
	t.Helper()
	tbl, ok := wb.Table(sheet)
	require.True(t, ok, "sheet %s", sheet)
	return tbl
}

var repeatSuffix = regexp.MustCompile(`\.\d+$`)

// toXLSX writes wb the way the template lays it out: an instruction line on
// row 1, the header on row 2 with repeated guardian headers left unsuffixed.
func toXLSX(t *testing.T, wb *workbook.Workbook) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for _, name := range wb.SheetNames() {
		tbl := table(t, wb, name)
		_, err := f.NewSheet(name)
		require.NoError(t, err)

		rows := [][]any{{"Diligencie una fila por registro"}}
		if len(tbl.Columns) > 0 {
			header := make([]any, len(tbl.Columns))
			for i, c := range tbl.Columns {
				header[i] = repeatSuffix.ReplaceAllString(c, "")
			}
			rows = append(rows, header)
		}
		for _, r := range tbl.Rows {
			cells := make([]any, len(tbl.Columns))
			for i, c := range tbl.Columns {
				cells[i] = cell(r.Get(c))
			}
			rows = append(rows, cells)
		}
		for i := range rows {
			axis, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, axis, &rows[i]))
		}
	}
	require.NoError(t, f.DeleteSheet("Sheet1"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func cell(v workbook.Value) any {
	switch v.Kind() {
	case workbook.KindNumber:
		n, _ := v.Float()
		return n
	case workbook.KindDate:
		t, _ := v.Time()
		return t
	case workbook.KindNull:
		return nil
	default:
		return v.String()
	}
}
