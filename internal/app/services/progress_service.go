package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/app/models/dto"
	"github.com/avdeyev/eduboard/internal/config"
)

// Narrow store contracts so classification can be tested without a database.

type programLinkStore interface {
	GetProgramSubjects(ctx context.Context, programID int64) ([]*models.ProgramSubject, error)
}

type subjectLinkStore interface {
	GetSubjectCourses(ctx context.Context, subjectID int64) ([]*models.SubjectCourse, error)
}

type enrollmentStore interface {
	EnrolledCourseIDs(ctx context.Context, userID int64) (map[int64]bool, error)
}

type gradebookStore interface {
	CourseFinalGrade(ctx context.Context, courseID, userID int64) (*float64, error)
	CourseGradeItems(ctx context.Context, courseID int64) ([]*models.GradeItem, error)
	ItemGradePercent(ctx context.Context, itemID, userID int64) (*float64, error)
}

type submissionStore interface {
	GetSubmission(ctx context.Context, assignmentID, userID int64) (*models.Submission, error)
}

// ProgressService computes subject-level started flags and course-level
// completion classification for a student.
type ProgressService struct {
	programLinks  programLinkStore
	subjectLinks  subjectLinkStore
	enrollments   enrollmentStore
	gradebook     gradebookStore
	submissions   submissionStore
	markers       config.MarkerConfig
	passThreshold float64
	logger        zerolog.Logger
}

// NewProgressService creates a new ProgressService
func NewProgressService(
	programLinks programLinkStore,
	subjectLinks subjectLinkStore,
	enrollments enrollmentStore,
	gradebook gradebookStore,
	submissions submissionStore,
	cfg config.DashboardConfig,
	logger zerolog.Logger,
) *ProgressService {
	return &ProgressService{
		programLinks:  programLinks,
		subjectLinks:  subjectLinks,
		enrollments:   enrollments,
		gradebook:     gradebook,
		submissions:   submissions,
		markers:       cfg.Markers,
		passThreshold: cfg.PassThreshold,
		logger:        logger,
	}
}

// ClassifyGradeTier buckets a final grade percentage. Nil means no grade is
// recorded at all.
func ClassifyGradeTier(gradePercent *float64) models.GradeTier {
	if gradePercent == nil {
		return models.TierNoGrade
	}
	switch {
	case *gradePercent >= 90:
		return models.TierExcellent
	case *gradePercent >= 80:
		return models.TierGood
	case *gradePercent >= 70:
		return models.TierSatisfactory
	default:
		return models.TierFailed
	}
}

// ClassifyCompletion derives the completion status of a course from the
// final grade percentage and the gradable-item tally. A fully graded course
// counts as completed even below the pass threshold; completion tracking
// signals coverage, not pass/fail.
func ClassifyCompletion(gradePercent *float64, gradableCount, satisfiedCount int, passThreshold float64) models.CompletionStatus {
	if gradableCount == 0 {
		return models.NotCompleted
	}

	allSatisfied := satisfiedCount >= gradableCount

	if gradePercent == nil || *gradePercent < passThreshold {
		if allSatisfied {
			return models.FullyCompleted
		}
		return models.NotCompleted
	}

	if allSatisfied {
		return models.FullyCompleted
	}
	return models.PartiallyCompleted
}

// matchesMarkers reports whether every substring of the marker set occurs in
// the name, case-insensitively. An empty marker set never matches.
func matchesMarkers(name string, markers []string) bool {
	if len(markers) == 0 {
		return false
	}
	lower := strings.ToLower(name)
	for _, marker := range markers {
		if !strings.Contains(lower, strings.ToLower(marker)) {
			return false
		}
	}
	return true
}

// ClassifyItem resolves the tag of a grade item. An explicit tag wins; the
// legacy name-substring markers only apply to untagged items, and quizzes
// can only become exams.
func ClassifyItem(item *models.GradeItem, markers config.MarkerConfig) models.ItemTag {
	if item.Tag != models.TagNone {
		return item.Tag
	}

	switch item.ItemType {
	case models.ItemAssign:
		if matchesMarkers(item.Name, markers.ReadingReport) {
			return models.TagReadingReport
		}
		if matchesMarkers(item.Name, markers.WrittenWork) {
			return models.TagWrittenWork
		}
	case models.ItemQuiz:
		if matchesMarkers(item.Name, markers.Exam) {
			return models.TagExam
		}
	}

	return models.TagNone
}

// CourseRow builds one grade-table line for an enrolled course.
func (s *ProgressService) CourseRow(ctx context.Context, course *models.Course, userID int64) (dto.CourseGradeRow, error) {
	row := dto.CourseGradeRow{
		CourseID:   course.ID,
		CourseName: course.FullName,
	}

	gradePercent, err := s.gradebook.CourseFinalGrade(ctx, course.ID, userID)
	if err != nil {
		return row, fmt.Errorf("final grade for course %d: %w", course.ID, err)
	}
	row.GradePercent = gradePercent
	row.Tier = ClassifyGradeTier(gradePercent)

	gradable, satisfied, err := s.tallyGradableItems(ctx, course.ID, userID)
	if err != nil {
		return row, err
	}
	row.Completion = ClassifyCompletion(gradePercent, gradable, satisfied, s.passThreshold)

	return row, nil
}

// tallyGradableItems counts the course's gradable items and how many of them
// are satisfied. A written-work item is satisfied by a recorded grade or by
// an attached submission with actual work; other tags require a grade.
func (s *ProgressService) tallyGradableItems(ctx context.Context, courseID, userID int64) (gradable, satisfied int, err error) {
	items, err := s.gradebook.CourseGradeItems(ctx, courseID)
	if err != nil {
		return 0, 0, fmt.Errorf("grade items for course %d: %w", courseID, err)
	}

	for _, item := range items {
		tag := ClassifyItem(item, s.markers)
		if tag == models.TagNone {
			continue
		}
		gradable++

		grade, err := s.gradebook.ItemGradePercent(ctx, item.ID, userID)
		if err != nil {
			return 0, 0, err
		}
		if grade != nil {
			satisfied++
			continue
		}

		if tag == models.TagWrittenWork && item.ItemType == models.ItemAssign {
			sub, err := s.submissions.GetSubmission(ctx, item.ItemRefID, userID)
			if err != nil {
				return 0, 0, err
			}
			if sub.HasWork() {
				satisfied++
			}
		}
	}

	return gradable, satisfied, nil
}

// ProgramProgress builds the per-subject progress of one program for a
// student. Courses the student is not enrolled in are omitted from each
// subject's list, not shown as locked.
func (s *ProgressService) ProgramProgress(ctx context.Context, program *models.Program, userID int64) (*dto.ProgramProgress, error) {
	enrolled, err := s.enrollments.EnrolledCourseIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("enrollments for user %d: %w", userID, err)
	}

	links, err := s.programLinks.GetProgramSubjects(ctx, program.ID)
	if err != nil {
		return nil, err
	}

	progress := &dto.ProgramProgress{
		Program:  program,
		Subjects: make([]dto.SubjectProgress, 0, len(links)),
	}

	for _, link := range links {
		sp := dto.SubjectProgress{
			Subject:   link.Subject,
			SortOrder: link.SortOrder,
		}

		courseLinks, err := s.subjectLinks.GetSubjectCourses(ctx, link.SubjectID)
		if err != nil {
			return nil, err
		}

		for _, cl := range courseLinks {
			if !enrolled[cl.CourseID] {
				continue
			}
			sp.Started = true

			row, err := s.CourseRow(ctx, cl.Course, userID)
			if err != nil {
				return nil, err
			}
			sp.Courses = append(sp.Courses, row)
		}

		progress.Subjects = append(progress.Subjects, sp)
	}

	return progress, nil
}
