package models

// RoleView identifies which dashboard a user is routed to. Precedence for
// routing is strict and exclusive: admin > teacher > student.
type RoleView string

const (
	RoleAdmin   RoleView = "admin"
	RoleTeacher RoleView = "teacher"
	RoleStudent RoleView = "student"
)

// RoleSet is the outcome of role resolution for one user.
type RoleSet struct {
	IsAdmin   bool `json:"isAdmin"`
	IsTeacher bool `json:"isTeacher"`
	IsStudent bool `json:"isStudent"`
}

// View returns the single view the user is routed to, or "" when the user
// qualifies for none.
func (r RoleSet) View() RoleView {
	switch {
	case r.IsAdmin:
		return RoleAdmin
	case r.IsTeacher:
		return RoleTeacher
	case r.IsStudent:
		return RoleStudent
	}
	return ""
}

// CompletionStatus classifies a student's progress in a single course.
type CompletionStatus string

const (
	NotCompleted       CompletionStatus = "not_completed"
	PartiallyCompleted CompletionStatus = "partially_completed"
	FullyCompleted     CompletionStatus = "fully_completed"
)

// GradeTier is the coarse bucket derived from the final grade percentage,
// independent of completion status.
type GradeTier string

const (
	TierNoGrade      GradeTier = "no_grade"
	TierFailed       GradeTier = "failed"
	TierSatisfactory GradeTier = "satisfactory" // 70-79
	TierGood         GradeTier = "good"         // 80-89
	TierExcellent    GradeTier = "excellent"    // >= 90
)

// ItemTag is the explicit classification of a gradable item. When present it
// wins over legacy name-substring matching.
type ItemTag string

const (
	TagNone          ItemTag = ""
	TagReadingReport ItemTag = "reading_report"
	TagWrittenWork   ItemTag = "written_work"
	TagExam          ItemTag = "exam"
)

// OrderDirection is accepted by the reorder operation. It is validated but
// does not change the effect: a swap is a swap regardless of stated direction.
type OrderDirection string

const (
	OrderUp   OrderDirection = "up"
	OrderDown OrderDirection = "down"
)

// SystemCourseID is the platform's front-page course, excluded from every
// teacher course set by convention.
const SystemCourseID int64 = 1
