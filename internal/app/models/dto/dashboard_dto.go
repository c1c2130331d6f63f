package dto

import "github.com/avdeyev/eduboard/internal/app/models"

// DashboardResponse is the role-routed landing payload.
type DashboardResponse struct {
	View    models.RoleView `json:"view"`
	Roles   models.RoleSet  `json:"roles"`
	Student *StudentView    `json:"student,omitempty"`
	Teacher *TeacherView    `json:"teacher,omitempty"`
	Admin   *AdminView      `json:"admin,omitempty"`
}

// StudentView is the student dashboard payload.
type StudentView struct {
	Programs   []ProgramProgress   `json:"programs"`
	GradeTable []CourseGradeRow    `json:"gradeTable"`
	Info       *models.StudentInfo `json:"info,omitempty"`
	Credits    []ExternalCreditRow `json:"externalCredits,omitempty"`
}

// TeacherView is the teacher dashboard payload.
type TeacherView struct {
	Courses         []models.Course `json:"courses"`
	UngradedCount   int             `json:"ungradedCount"`
	FailedQuizCount int             `json:"failedQuizCount"`
	UnansweredCount int             `json:"unansweredCount"`
}

// AdminView is the admin dashboard payload.
type AdminView struct {
	Programs     []*models.Program     `json:"programs"`
	Subjects     []*models.Subject     `json:"subjects"`
	Institutions []*models.Institution `json:"institutions"`
}

// ProgramProgress is one program with per-subject progress for a student.
type ProgramProgress struct {
	Program  *models.Program   `json:"program"`
	Subjects []SubjectProgress `json:"subjects"`
}

// SubjectProgress reports whether a subject is started and lists the
// courses the student is enrolled in. Unenrolled courses are omitted, not
// shown as locked.
type SubjectProgress struct {
	Subject   *models.Subject  `json:"subject"`
	SortOrder int              `json:"sortorder"`
	Started   bool             `json:"started"`
	Courses   []CourseGradeRow `json:"courses"`

	// ExternalCredit, when set, stands in for platform-derived status: the
	// subject was credited from outside and is shown as such.
	ExternalCredit *models.StudentExternalCredit `json:"externalCredit,omitempty"`
}

// CourseGradeRow is one line of the student's personal grade table.
type CourseGradeRow struct {
	CourseID     int64                   `json:"courseId"`
	CourseName   string                  `json:"courseName"`
	GradePercent *float64                `json:"gradePercent,omitempty"`
	Completion   models.CompletionStatus `json:"completion"`
	Tier         models.GradeTier        `json:"tier"`
}

// ExternalCreditRow is an external credit joined with its subject name.
type ExternalCreditRow struct {
	Credit      *models.StudentExternalCredit `json:"credit"`
	SubjectName string                        `json:"subjectName"`
}
