package models

import "time"

// Program is a named curriculum grouping subjects, visible to students via
// cohort linkage. The institution field is a free-text label, deliberately
// not a foreign key to the institutions table.
type Program struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Code        string    `json:"code" db:"code"`
	Description *string   `json:"description,omitempty" db:"description"`
	Institution string    `json:"institution" db:"institution"`
	Visible     bool      `json:"visible" db:"visible"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	ModifiedAt  time.Time `json:"modifiedAt" db:"modified_at"`

	// Relations (populated when needed)
	Subjects []*ProgramSubject `json:"subjects,omitempty"`
	Cohorts  []*ProgramCohort  `json:"cohorts,omitempty"`
}

// Institution is a standalone directory entry. It coexists with the
// free-text Program.Institution label; the two are not reconciled here.
type Institution struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	Visible bool   `json:"visible" db:"visible"`
}
