package core

import (
	"github.com/JonMunkholm/seedcheck/internal/schema"
	"github.com/JonMunkholm/seedcheck/internal/workbook"
)

// Category names one set of referenceable values.
type Category string

const (
	CategoryCampuses         Category = "campuses"
	CategoryAcademicCourses  Category = "academic_courses"
	CategoryGrades           Category = "grades"
	CategoryAreas            Category = "areas"
	CategorySubjects         Category = "subjects"
	CategoryTeacherDocuments Category = "teacher_documents"
)

// Reference maps each category to its distinct canonical values, in the order
// they first appear in the source sheet. A category missing from the map was
// not available in the workbook and is not cross-validated.
type Reference map[Category][]string

// Has reports whether category c was built.
func (r Reference) Has(c Category) bool {
	_, ok := r[c]
	return ok
}

// Contains reports whether v is a known value of c.
func (r Reference) Contains(c Category, v string) bool {
	for _, known := range r[c] {
		if known == v {
			return true
		}
	}
	return false
}

// set returns the values of c as a lookup set, or nil if c was not built.
func (r Reference) set(c Category) map[string]struct{} {
	vals, ok := r[c]
	if !ok {
		return nil
	}
	out := make(map[string]struct{}, len(vals))
	for _, v := range vals {
		out[v] = struct{}{}
	}
	return out
}

// referenceSource locates the key column of a category.
type referenceSource struct {
	category Category
	sheet    string
	column   string
}

var referenceSources = []referenceSource{
	{CategoryCampuses, schema.SheetCampuses, schema.ColInstitutionName},
	{CategoryAcademicCourses, schema.SheetCourses, schema.ColCourseName},
	{CategoryGrades, schema.SheetGrades, schema.ColGradeName},
	{CategoryAreas, schema.SheetAreas, schema.ColAreaName},
	{CategorySubjects, schema.SheetSubjects, schema.ColSubjectName},
	{CategoryTeacherDocuments, schema.SheetTeachers, schema.ColDocumentNumber},
}

// BuildReference scans the source sheets of wb once. It only reads wb.
func BuildReference(wb *workbook.Workbook) Reference {
	ref := make(Reference, len(referenceSources))
	if wb == nil {
		return ref
	}

	for _, src := range referenceSources {
		t, ok := wb.Table(src.sheet)
		if !ok || !t.HasColumn(src.column) {
			continue
		}
		seen := make(map[string]bool)
		vals := make([]string, 0, t.Len())
		for _, v := range t.Values(src.column) {
			s := v.String()
			if seen[s] {
				continue
			}
			seen[s] = true
			vals = append(vals, s)
		}
		ref[src.category] = vals
	}
	return ref
}
