package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeyev/eduboard/internal/app/models"
)

// SubmissionRepository reads assignment submissions from platform tables.
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// GetSubmission returns the student's latest submission for the assignment,
// or nil when none exists.
func (r *SubmissionRepository) GetSubmission(ctx context.Context, assignmentID, userID int64) (*models.Submission, error) {
	var sub models.Submission
	err := r.db.QueryRow(ctx, `
		SELECT id, assignment_id, user_id, status, submitted_at, has_file, online_text
		FROM assignment_submissions
		WHERE assignment_id = $1 AND user_id = $2
		ORDER BY id DESC
		LIMIT 1`,
		assignmentID, userID).Scan(
		&sub.ID, &sub.AssignmentID, &sub.UserID, &sub.Status,
		&sub.SubmittedAt, &sub.HasFile, &sub.OnlineText)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving submission: %w", err)
	}

	return &sub, nil
}

// A row counts only with both submitted status and a submission timestamp;
// submitted_at is nullable in the platform schema.
const ungradedSubmissionsQuery = `
	SELECT s.id, a.name, c.id, c.fullname, u.id, u.first_name || ' ' || u.last_name, s.submitted_at
	FROM assignment_submissions s
	JOIN assignments a ON a.id = s.assignment_id
	JOIN courses c ON c.id = a.course_id
	JOIN users u ON u.id = s.user_id
	WHERE c.id = ANY($1)
	  AND s.status = 'submitted'
	  AND s.submitted_at IS NOT NULL
	  AND NOT EXISTS (
		SELECT 1
		FROM grade_items gi
		JOIN grades g ON g.item_id = gi.id AND g.user_id = s.user_id
		WHERE gi.course_id = c.id
		  AND gi.item_type = 'assign'
		  AND gi.item_ref_id = a.id
		  AND g.final_grade IS NOT NULL)
	ORDER BY s.submitted_at ASC`

// UngradedSubmissions returns every submitted assignment in the given
// courses that has no grade yet, oldest submission first.
func (r *SubmissionRepository) UngradedSubmissions(ctx context.Context, courseIDs []int64) ([]*models.UngradedSubmission, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, ungradedSubmissionsQuery, courseIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.UngradedSubmission
	for rows.Next() {
		var row models.UngradedSubmission
		if err := rows.Scan(&row.SubmissionID, &row.AssignmentName,
			&row.CourseID, &row.CourseName,
			&row.StudentID, &row.StudentName, &row.SubmittedAt); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
