package models

import "time"

// User mirrors the platform's users table. The dashboard never writes to it
// except through the seeded demo accounts.
type User struct {
	ID          int64      `json:"id" db:"id"`
	Username    string     `json:"username" db:"username"`
	Password    string     `json:"-" db:"password"`
	FirstName   string     `json:"firstName" db:"first_name"`
	LastName    string     `json:"lastName" db:"last_name"`
	Email       string     `json:"email" db:"email"`
	IsSiteAdmin bool       `json:"isSiteAdmin" db:"is_site_admin"`
	IsActive    bool       `json:"isActive" db:"is_active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty" db:"last_login_at"`
}

// FullName returns the display name used by the dashboard lists.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// StudentInfo is supplementary per-student display data owned by the
// dashboard, with fallbacks to platform-native user fields when absent.
type StudentInfo struct {
	ID             int64   `json:"id" db:"id"`
	UserID         int64   `json:"userId" db:"user_id"`
	CohortLabel    *string `json:"cohortLabel,omitempty" db:"cohort_label"`
	EnrollmentYear *int    `json:"enrollmentYear,omitempty" db:"enrollment_year"`
	Address        *string `json:"address,omitempty" db:"address"`
	City           *string `json:"city,omitempty" db:"city"`
	Snils          *string `json:"snils,omitempty" db:"snils"`

	User *User `json:"user,omitempty"`
}

// StudentExternalCredit records credit transferred from outside the
// platform. At most one per (student, subject).
type StudentExternalCredit struct {
	ID              int64      `json:"id" db:"id"`
	StudentID       int64      `json:"studentId" db:"student_id"`
	SubjectID       int64      `json:"subjectId" db:"subject_id"`
	Grade           string     `json:"grade" db:"grade"`
	GradePercent    float64    `json:"gradePercent" db:"grade_percent"`
	InstitutionName string     `json:"institutionName" db:"institution_name"`
	CreditedDate    *time.Time `json:"creditedDate,omitempty" db:"credited_date"`
	DocumentNumber  *string    `json:"documentNumber,omitempty" db:"document_number"`
	Notes           *string    `json:"notes,omitempty" db:"notes"`
	CreatedBy       int64      `json:"createdBy" db:"created_by"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
	ModifiedAt      time.Time  `json:"modifiedAt" db:"modified_at"`

	Subject *Subject `json:"subject,omitempty"`
}
