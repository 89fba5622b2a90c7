package tables

import (
	"github.com/JonMunkholm/seedcheck/internal/core"
	"github.com/JonMunkholm/seedcheck/internal/schema"
)

func init() {
	registerHeadquarters()
	registerCampuses()
	registerAdmins()
	registerCoordinators()
}

func registerHeadquarters() {
	core.Register(core.RuleSet{
		Sheet: schema.SheetHeadquarters,
	})
}

func registerCampuses() {
	core.Register(core.RuleSet{
		Sheet: schema.SheetCampuses,
		Checks: []core.Check{
			core.EmailFormat{Column: schema.ColEmail, Severity: core.SeverityError},
			core.Unique{Columns: []string{schema.ColInstitutionName}, Label: "institution name", Severity: core.SeverityError},
			// Campuses may share a switchboard or a mailbox.
			core.Unique{Columns: []string{schema.ColPhone}, Label: "phone", Severity: core.SeverityWarning},
			core.Unique{Columns: []string{schema.ColEmail}, Label: "email", Severity: core.SeverityWarning},
			core.Unique{Columns: []string{schema.ColDaneCode}, Label: "DANE code", Severity: core.SeverityError},
		},
	})
}

func registerAdmins() {
	core.Register(core.RuleSet{
		Sheet:  schema.SheetAdmins,
		Checks: staffChecks(),
	})
}

// Campus assignment and coordinator type are descriptive only.
func registerCoordinators() {
	core.Register(core.RuleSet{
		Sheet:    schema.SheetCoordinators,
		Optional: true,
		Checks:   staffChecks(),
	})
}

// staffChecks are the personal-field checks shared by staff sheets.
func staffChecks() []core.Check {
	return []core.Check{
		core.EmailFormat{Column: schema.ColEmail, Severity: core.SeverityError},
		core.Unique{Columns: []string{schema.ColEmail}, Label: "email", Severity: core.SeverityError},
		core.Unique{Columns: []string{schema.ColDocumentNumber}, Label: "document number", Severity: core.SeverityError},
		core.Unique{Columns: []string{schema.ColPhone}, Label: "phone", Severity: core.SeverityError},
	}
}
