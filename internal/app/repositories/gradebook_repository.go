package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeyev/eduboard/internal/app/models"
)

// GradebookRepository reads grade items and grades from the platform
// gradebook tables.
type GradebookRepository struct {
	db *pgxpool.Pool
}

// NewGradebookRepository creates a new gradebook repository
func NewGradebookRepository(db *pgxpool.Pool) *GradebookRepository {
	return &GradebookRepository{db: db}
}

// CourseFinalGrade returns the student's course-total grade as a percentage
// of the item maximum, or nil when no final grade is recorded. An
// overridden final grade wins over the aggregated one.
func (r *GradebookRepository) CourseFinalGrade(ctx context.Context, courseID, userID int64) (*float64, error) {
	var finalGrade, overridden *float64
	var gradeMax float64

	err := r.db.QueryRow(ctx, `
		SELECT g.final_grade, g.overridden_grade, gi.grade_max
		FROM grade_items gi
		JOIN grades g ON g.item_id = gi.id AND g.user_id = $2
		WHERE gi.course_id = $1 AND gi.item_type = 'course'`,
		courseID, userID).Scan(&finalGrade, &overridden, &gradeMax)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving final grade: %w", err)
	}

	grade := finalGrade
	if overridden != nil {
		grade = overridden
	}
	if grade == nil || gradeMax <= 0 {
		return nil, nil
	}

	percent := *grade / gradeMax * 100
	return &percent, nil
}

// CourseGradeItems returns the activity-level grade items of a course.
// The course-total item is excluded.
func (r *GradebookRepository) CourseGradeItems(ctx context.Context, courseID int64) ([]*models.GradeItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, course_id, item_type, item_ref_id, name, COALESCE(item_tag, ''), grade_max
		FROM grade_items
		WHERE course_id = $1 AND item_type <> 'course'
		ORDER BY id ASC`,
		courseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*models.GradeItem
	for rows.Next() {
		var item models.GradeItem
		if err := rows.Scan(&item.ID, &item.CourseID, &item.ItemType,
			&item.ItemRefID, &item.Name, &item.Tag, &item.GradeMax); err != nil {
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// ItemGradePercent returns the student's grade on a single item as a
// percentage of the item maximum, or nil when ungraded.
func (r *GradebookRepository) ItemGradePercent(ctx context.Context, itemID, userID int64) (*float64, error) {
	var finalGrade *float64
	var gradeMax float64

	err := r.db.QueryRow(ctx, `
		SELECT g.final_grade, gi.grade_max
		FROM grade_items gi
		JOIN grades g ON g.item_id = gi.id AND g.user_id = $2
		WHERE gi.id = $1`,
		itemID, userID).Scan(&finalGrade, &gradeMax)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving item grade: %w", err)
	}

	if finalGrade == nil || gradeMax <= 0 {
		return nil, nil
	}

	percent := *finalGrade / gradeMax * 100
	return &percent, nil
}
