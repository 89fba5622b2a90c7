package tables

// Grade types accepted in "Tipo de grado".
var GradeTypes = []string{
	"EDUCACION_PREESCOLAR",
	"EDUCACION_BASICA_PRIMARIA",
	"EDUCACION_BASICA_SECUNDARIA",
	"EDUCACION_MEDIA",
}

// YesNo are the accepted values of boolean flag columns.
var YesNo = []string{"Sí", "No"}

// Grade kinds accepted in "Tipo de nota".
const (
	GradeKindQuantitative = "Cuantitativa (Números)"
	GradeKindQualitative  = "Cualitativa (Letras)"
)

// GradeKinds lists the accepted grade kinds.
var GradeKinds = []string{GradeKindQuantitative, GradeKindQualitative}

// Quantitative annual averages must fall within this range.
const (
	MinAverage = 0
	MaxAverage = 5
)

// DistinctValueLimit caps the values listed by informational reports.
const DistinctValueLimit = 20
