package models

import "time"

// Subject is a named grouping of one or more platform courses, with a
// credit weight.
type Subject struct {
	ID         int64     `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	Code       string    `json:"code" db:"code"`
	Summary    *string   `json:"summary,omitempty" db:"summary"`
	Credits    int       `json:"credits" db:"credits"`
	SortOrder  int       `json:"sortorder" db:"sortorder"`
	Visible    bool      `json:"visible" db:"visible"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	ModifiedAt time.Time `json:"modifiedAt" db:"modified_at"`

	// Relations (populated when needed)
	Courses []*SubjectCourse `json:"courses,omitempty"`
}
