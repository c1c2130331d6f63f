package models

import "time"

// ProgramSubject links a subject into a program. SortOrder is unique-enough
// within one program to support swap-based reordering; only relative order
// matters, not contiguity.
type ProgramSubject struct {
	ID         int64     `json:"id" db:"id"`
	ProgramID  int64     `json:"programId" db:"program_id"`
	SubjectID  int64     `json:"subjectId" db:"subject_id"`
	SortOrder  int       `json:"sortorder" db:"sortorder"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	ModifiedAt time.Time `json:"modifiedAt" db:"modified_at"`

	Subject *Subject `json:"subject,omitempty"`
}

// SubjectCourse links a platform course into a subject, ordered within the
// subject.
type SubjectCourse struct {
	ID         int64     `json:"id" db:"id"`
	SubjectID  int64     `json:"subjectId" db:"subject_id"`
	CourseID   int64     `json:"courseId" db:"course_id"`
	SortOrder  int       `json:"sortorder" db:"sortorder"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	ModifiedAt time.Time `json:"modifiedAt" db:"modified_at"`

	Course *Course `json:"course,omitempty"`
}

// ProgramCohort links a platform cohort to a program. This relation is the
// sole mechanism granting students visibility into a program.
type ProgramCohort struct {
	ID        int64     `json:"id" db:"id"`
	ProgramID int64     `json:"programId" db:"program_id"`
	CohortID  int64     `json:"cohortId" db:"cohort_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	Cohort *Cohort `json:"cohort,omitempty"`
}
