package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/app/models/dto"
	"github.com/avdeyev/eduboard/internal/config"
	"github.com/avdeyev/eduboard/internal/pkg/helpers"
)

type ungradedStore interface {
	UngradedSubmissions(ctx context.Context, courseIDs []int64) ([]*models.UngradedSubmission, error)
}

type quizAttemptStore interface {
	FailedAttempts(ctx context.Context, courseIDs []int64) ([]*models.FailedQuizAttempt, error)
}

type forumPostStore interface {
	UnansweredPosts(ctx context.Context, courseIDs []int64, teacherRoles []string) ([]*models.UnansweredForumPost, error)
}

// previewWordLimit caps forum post previews at the first ten words.
const previewWordLimit = 10

// OutstandingService collects the three outstanding-work lists for a
// teacher's course set. Each list is gathered whole and paged in memory
// with zero-based slice windows.
type OutstandingService struct {
	submissions  ungradedStore
	quizzes      quizAttemptStore
	forums       forumPostStore
	teacherRoles []string
	pageSize     int
	logger       zerolog.Logger
}

// NewOutstandingService creates a new OutstandingService
func NewOutstandingService(
	submissions ungradedStore,
	quizzes quizAttemptStore,
	forums forumPostStore,
	cfg config.DashboardConfig,
	logger zerolog.Logger,
) *OutstandingService {
	return &OutstandingService{
		submissions:  submissions,
		quizzes:      quizzes,
		forums:       forums,
		teacherRoles: cfg.TeacherRoles,
		pageSize:     cfg.CollectPageSize,
		logger:       logger,
	}
}

// PreviewWords truncates a message to its first n whitespace-delimited
// words, appending an ellipsis when anything was cut.
func PreviewWords(message string, n int) string {
	words := strings.Fields(message)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + "..."
}

func pagedList(items interface{}, page, pageSize, totalItems int) *dto.PagedList {
	return &dto.PagedList{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		TotalItems: totalItems,
		TotalPages: helpers.PageCount(totalItems, pageSize),
	}
}

// UngradedSubmissionsPage returns one page of submitted-but-ungraded
// assignment work across the given courses.
func (s *OutstandingService) UngradedSubmissionsPage(ctx context.Context, courseIDs []int64, page int) (*dto.PagedList, error) {
	all, err := s.submissions.UngradedSubmissions(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	start, end := helpers.SliceWindow(page, s.pageSize, len(all))
	return pagedList(all[start:end], page, s.pageSize, len(all)), nil
}

// FailedQuizAttemptsPage returns one page of finished-but-not-maximal quiz
// attempts across the given courses.
func (s *OutstandingService) FailedQuizAttemptsPage(ctx context.Context, courseIDs []int64, page int) (*dto.PagedList, error) {
	all, err := s.quizzes.FailedAttempts(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	start, end := helpers.SliceWindow(page, s.pageSize, len(all))
	return pagedList(all[start:end], page, s.pageSize, len(all)), nil
}

// UnansweredForumPostsPage returns one page of student posts with no later
// teacher reply, each with a truncated message preview.
func (s *OutstandingService) UnansweredForumPostsPage(ctx context.Context, courseIDs []int64, page int) (*dto.PagedList, error) {
	all, err := s.forums.UnansweredPosts(ctx, courseIDs, s.teacherRoles)
	if err != nil {
		return nil, err
	}

	for _, post := range all {
		post.Preview = PreviewWords(post.Preview, previewWordLimit)
	}

	start, end := helpers.SliceWindow(page, s.pageSize, len(all))
	return pagedList(all[start:end], page, s.pageSize, len(all)), nil
}

// Counts returns the sizes of all three lists for the teacher landing view.
func (s *OutstandingService) Counts(ctx context.Context, courseIDs []int64) (ungraded, failedQuizzes, unanswered int, err error) {
	subs, err := s.submissions.UngradedSubmissions(ctx, courseIDs)
	if err != nil {
		return 0, 0, 0, err
	}

	attempts, err := s.quizzes.FailedAttempts(ctx, courseIDs)
	if err != nil {
		return 0, 0, 0, err
	}

	posts, err := s.forums.UnansweredPosts(ctx, courseIDs, s.teacherRoles)
	if err != nil {
		return 0, 0, 0, err
	}

	return len(subs), len(attempts), len(posts), nil
}
