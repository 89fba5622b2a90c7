package schema

// Sheet names as they appear in the workbook.
const (
	SheetInstructions = "Instrucciones"
	SheetHeadquarters = "Sede principal"
	SheetCampuses     = "Sedes"
	SheetAdmins       = "Administradores"
	SheetCoordinators = "Coordinadores"
	SheetCourses      = "Cursos académicos"
	SheetPeriods      = "Periodos"
	SheetGrades       = "Grados"
	SheetGroups       = "Grupos"
	SheetAreas        = "Áreas"
	SheetSubjects     = "Asignaturas"
	SheetTeachers     = "Profesores"
	SheetClasses      = "Clases"
	SheetEnrollments  = "Matrículas"
	SheetAnnualGrades = "Calificaciones anuales"
)

// Column headers referenced by validation rules. Several sheets share a
// header text; the constant names the text, not the sheet.
const (
	ColInstitutionName = "Nombre de la institución"
	ColPhone           = "Teléfono"
	ColEmail           = "Correo electrónico"
	ColDaneCode        = "Código Dane"
	ColDocumentNumber  = "Número de documento"

	ColCourseName = "Nombre del año escolar"
	ColStartDate  = "Fecha de inicio"
	ColEndDate    = "Fecha fin"

	ColPeriodName     = "Nombre del periodo"
	ColAssociatedYear = "Año escolar asociado"

	ColLevel      = "Nivel"
	ColGradeName  = "Nombre del grado"
	ColGradeType  = "Tipo de grado"
	ColFinalGrade = "¿Último grado culminante?"

	ColGroupName        = "Nombre del grupo"
	ColAssociatedCampus = "Sedes asociadas"
	ColCapacity         = "Capacidad"

	ColAreaName = "Nombre del área"

	ColSubjectName      = "Nombre de la asignatura"
	ColAssociatedArea   = "Área asociada"
	ColAssociatedGrades = "Grados asociados"

	ColAssignedCampus   = "Sede asignada"
	ColSubjectsInCharge = "Asignaturas a cargo"

	ColClassCampus     = "Sede asociada"
	ColTeacherDocument = "Número de documento del profesor"

	ColBirthDate = "Fecha de nacimiento"

	ColSchoolYear = "Año escolar"
	ColGradeKind  = "Tipo de nota"
	ColAnnualAvg  = "Promedio anual"
	ColPassed     = "Aprobó"
)
