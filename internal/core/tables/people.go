package tables

import (
	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/JonMunkholm/seedcheck/internal/schema"
)

func init() {
	registerTeachers()
	registerClasses()
	registerEnrollments()
	registerAnnualGrades()
}

func registerTeachers() {
	checks := append(staffChecks(),
		core.CrossRef{
			Column:   schema.ColAssignedCampus,
			Category: core.CategoryCampuses,
			Label:    "campus(es)",
			Severity: core.SeverityError,
		},
		core.CrossRef{
			Column:   schema.ColSubjectsInCharge,
			Category: core.CategorySubjects,
			Label:    "subject(s)",
			Severity: core.SeverityError,
			List:     true,
		},
	)
	core.Register(core.RuleSet{
		Sheet:    schema.SheetTeachers,
		Optional: true,
		Checks:   checks,
	})
}

func registerClasses() {
	core.Register(core.RuleSet{
		Sheet:    schema.SheetClasses,
		Optional: true,
		Checks: []core.Check{
			// The same class may legitimately be split, so repeats only warn.
			core.Unique{
				Columns: []string{
					schema.ColSubjectName,
					schema.ColGradeName,
					schema.ColGroupName,
					schema.ColClassCampus,
					schema.ColAssociatedYear,
				},
				Label:     "class",
				Severity:  core.SeverityWarning,
				KeepNulls: true,
			},
			core.CrossRef{
				Column:   schema.ColTeacherDocument,
				Category: core.CategoryTeacherDocuments,
				Label:    "teacher document(s)",
				Severity: core.SeverityWarning,
			},
		},
	})
}

func registerEnrollments() {
	core.Register(core.RuleSet{
		Sheet:    schema.SheetEnrollments,
		Optional: true,
		Checks: []core.Check{
			core.Unique{Columns: []string{schema.ColDocumentNumber}, Label: "document number", Severity: core.SeverityError},
			core.EmailFormat{Column: schema.ColEmail, Severity: core.SeverityWarning},
			core.NotFuture{Column: schema.ColBirthDate, Label: "student(s)"},
		},
	})
}

func registerAnnualGrades() {
	core.Register(core.RuleSet{
		Sheet:    schema.SheetAnnualGrades,
		Optional: true,
		Checks: []core.Check{
			core.CrossRef{
				Column:   schema.ColSchoolYear,
				Category: core.CategoryAcademicCourses,
				Label:    "school year(s)",
				Severity: core.SeverityError,
			},
			core.CrossRef{
				Column:   schema.ColAssignedCampus,
				Category: core.CategoryCampuses,
				Label:    "campus(es)",
				Severity: core.SeverityError,
			},
			core.Enum{Column: schema.ColGradeKind, Allowed: GradeKinds, Label: "grade kind(s)", Severity: core.SeverityError},
			core.QuantitativeRange{
				Kind:  schema.ColGradeKind,
				When:  GradeKindQuantitative,
				Value: schema.ColAnnualAvg,
				Min:   MinAverage,
				Max:   MaxAverage,
			},
			core.CrossRef{
				Column:   schema.ColSubjectName,
				Category: core.CategorySubjects,
				Label:    "subject(s)",
				Severity: core.SeverityWarning,
				Note:     "rows with these subjects are left out of the export",
			},
			core.DistinctValues{Column: schema.ColAnnualAvg, Limit: DistinctValueLimit},
			core.DistinctValues{Column: schema.ColPassed, Limit: DistinctValueLimit},
		},
	})
}
