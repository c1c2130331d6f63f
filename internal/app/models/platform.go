package models

import "time"

// The types below mirror platform-owned tables. The dashboard reads them
// through narrow repository queries and never mutates them.

// Course is a platform course.
type Course struct {
	ID         int64  `json:"id" db:"id"`
	CategoryID int64  `json:"categoryId" db:"category_id"`
	FullName   string `json:"fullname" db:"fullname"`
	ShortName  string `json:"shortname" db:"shortname"`
	Visible    bool   `json:"visible" db:"visible"`
}

// CourseCategory is one node of the platform's self-referential category tree.
type CourseCategory struct {
	ID       int64  `json:"id" db:"id"`
	ParentID int64  `json:"parentId" db:"parent_id"`
	Name     string `json:"name" db:"name"`
	Visible  bool   `json:"visible" db:"visible"`
}

// Cohort is a platform user group; the sole admission mechanism into a
// program's visibility.
type Cohort struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	IDNumber string `json:"idNumber" db:"id_number"`
	Visible  bool   `json:"visible" db:"visible"`
}

// GradeItemType distinguishes the sources a grade item can come from.
type GradeItemType string

const (
	ItemAssign GradeItemType = "assign"
	ItemQuiz   GradeItemType = "quiz"
	ItemCourse GradeItemType = "course"
)

// GradeItem is one gradable entry in a course's gradebook. ItemRefID points
// at the assignment or quiz the item belongs to.
type GradeItem struct {
	ID        int64         `json:"id" db:"id"`
	CourseID  int64         `json:"courseId" db:"course_id"`
	ItemType  GradeItemType `json:"itemType" db:"item_type"`
	ItemRefID int64         `json:"itemRefId" db:"item_ref_id"`
	Name      string        `json:"name" db:"name"`
	Tag       ItemTag       `json:"itemTag" db:"item_tag"`
	GradeMax  float64       `json:"gradeMax" db:"grade_max"`
}

// Submission is a student's assignment submission, reduced to the fields
// the completion and outstanding-work checks need.
type Submission struct {
	ID           int64      `json:"id" db:"id"`
	AssignmentID int64      `json:"assignmentId" db:"assignment_id"`
	UserID       int64      `json:"userId" db:"user_id"`
	Status       string     `json:"status" db:"status"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty" db:"submitted_at"`
	HasFile      bool       `json:"hasFile" db:"has_file"`
	OnlineText   *string    `json:"onlineText,omitempty" db:"online_text"`
}

// HasWork reports whether the submission carries an attached file or
// non-empty online text.
func (s *Submission) HasWork() bool {
	if s == nil {
		return false
	}
	return s.HasFile || (s.OnlineText != nil && *s.OnlineText != "")
}

// UngradedSubmission is one row of the teacher's ungraded-work list.
type UngradedSubmission struct {
	SubmissionID   int64     `json:"submissionId"`
	AssignmentName string    `json:"assignmentName"`
	CourseID       int64     `json:"courseId"`
	CourseName     string    `json:"courseName"`
	StudentID      int64     `json:"studentId"`
	StudentName    string    `json:"studentName"`
	SubmittedAt    time.Time `json:"submittedAt"`
}

// FailedQuizAttempt is a finished attempt that did not reach the quiz's
// maximal sum of grades.
type FailedQuizAttempt struct {
	AttemptID   int64      `json:"attemptId"`
	QuizID      int64      `json:"quizId"`
	QuizName    string     `json:"quizName"`
	CourseID    int64      `json:"courseId"`
	CourseName  string     `json:"courseName"`
	StudentID   int64      `json:"studentId"`
	StudentName string     `json:"studentName"`
	SumGrades   float64    `json:"sumGrades"`
	MaxGrades   float64    `json:"maxGrades"`
	FinishedAt  *time.Time `json:"finishedAt,omitempty"`
}

// UnansweredForumPost is a student post with no later teacher reply in the
// same discussion. Preview holds a truncated message excerpt.
type UnansweredForumPost struct {
	PostID         int64     `json:"postId"`
	DiscussionID   int64     `json:"discussionId"`
	DiscussionName string    `json:"discussionName"`
	CourseID       int64     `json:"courseId"`
	CourseName     string    `json:"courseName"`
	AuthorID       int64     `json:"authorId"`
	AuthorName     string    `json:"authorName"`
	Preview        string    `json:"preview"`
	CreatedAt      time.Time `json:"createdAt"`
}
