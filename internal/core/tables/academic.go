package tables

import (
	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/JonMunkholm/seedcheck/internal/schema"
)

func init() {
	registerCourses()
	registerPeriods()
	registerGrades()
	registerGroups()
	registerAreas()
	registerSubjects()
}

func registerCourses() {
	core.Register(core.RuleSet{
		Sheet: schema.SheetCourses,
		Checks: []core.Check{
			core.Unique{Columns: []string{schema.ColCourseName}, Label: "school year name", Severity: core.SeverityError},
			core.DateOrder{Start: schema.ColStartDate, End: schema.ColEndDate, Label: "course(s)"},
		},
	})
}

func registerPeriods() {
	core.Register(core.RuleSet{
		Sheet: schema.SheetPeriods,
		Checks: []core.Check{
			core.ScopedUnique{
				Column:   schema.ColPeriodName,
				Scope:    schema.ColAssociatedYear,
				Label:    "period name",
				Severity: core.SeverityError,
			},
			core.DateOrder{Start: schema.ColStartDate, End: schema.ColEndDate, Label: "period(s)"},
			core.CrossRef{
				Column:   schema.ColAssociatedYear,
				Category: core.CategoryAcademicCourses,
				Label:    "school year(s)",
				Severity: core.SeverityError,
			},
		},
	})
}

func registerGrades() {
	core.Register(core.RuleSet{
		Sheet: schema.SheetGrades,
		Checks: []core.Check{
			core.Unique{
				Columns:  []string{schema.ColLevel, schema.ColGradeName},
				Label:    "level-grade combination",
				Severity: core.SeverityError,
			},
			core.Enum{Column: schema.ColGradeType, Allowed: GradeTypes, Label: "grade type(s)", Severity: core.SeverityError},
			core.Enum{Column: schema.ColFinalGrade, Allowed: YesNo, Label: "value(s) in '" + schema.ColFinalGrade + "'", Severity: core.SeverityError},
		},
	})
}

func registerGroups() {
	core.Register(core.RuleSet{
		Sheet: schema.SheetGroups,
		Checks: []core.Check{
			core.Unique{Columns: []string{schema.ColGroupName}, Label: "group name", Severity: core.SeverityError},
			core.CrossRef{
				Column:   schema.ColGradeName,
				Category: core.CategoryGrades,
				Label:    "grade(s)",
				Severity: core.SeverityError,
			},
			core.CrossRef{
				Column:   schema.ColAssociatedCampus,
				Category: core.CategoryCampuses,
				Label:    "campus(es)",
				Severity: core.SeverityError,
				List:     true,
			},
			core.Positive{Column: schema.ColCapacity, Label: "group(s)"},
		},
	})
}

func registerAreas() {
	core.Register(core.RuleSet{
		Sheet: schema.SheetAreas,
		Checks: []core.Check{
			core.Unique{Columns: []string{schema.ColAreaName}, Label: "area name", Severity: core.SeverityError},
		},
	})
}

func registerSubjects() {
	core.Register(core.RuleSet{
		Sheet: schema.SheetSubjects,
		Checks: []core.Check{
			core.Unique{Columns: []string{schema.ColSubjectName}, Label: "subject name", Severity: core.SeverityError},
			core.CrossRef{
				Column:   schema.ColAssociatedArea,
				Category: core.CategoryAreas,
				Label:    "area(s)",
				Severity: core.SeverityError,
			},
			core.CrossRef{
				Column:   schema.ColAssociatedGrades,
				Category: core.CategoryGrades,
				Label:    "grade(s)",
				Severity: core.SeverityError,
				List:     true,
			},
		},
	})
}
