package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/db"
	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
	"github.com/avdeyev/eduboard/internal/pkg/dberrors"
)

// SubjectRepository handles database operations for subjects and their
// course links.
type SubjectRepository struct {
	db *pgxpool.Pool
}

// NewSubjectRepository creates a new subject repository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// Create creates a new subject
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	query := `
		INSERT INTO subjects (name, code, summary, credits, sortorder, visible, created_at, modified_at)
		VALUES ($1, $2, $3, $4,
			COALESCE((SELECT MAX(sortorder) + 1 FROM subjects), 0),
			$5, NOW(), NOW())
		RETURNING id, sortorder, created_at, modified_at
	`

	err := r.db.QueryRow(ctx, query,
		subject.Name, subject.Code, subject.Summary, subject.Credits, subject.Visible,
	).Scan(&subject.ID, &subject.SortOrder, &subject.CreatedAt, &subject.ModifiedAt)
	if err != nil {
		return fmt.Errorf("error creating subject: %w", err)
	}

	return nil
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	query := `
		SELECT id, name, code, summary, credits, sortorder, visible, created_at, modified_at
		FROM subjects
		WHERE id = $1
	`

	var subject models.Subject
	err := r.db.QueryRow(ctx, query, id).Scan(
		&subject.ID,
		&subject.Name,
		&subject.Code,
		&subject.Summary,
		&subject.Credits,
		&subject.SortOrder,
		&subject.Visible,
		&subject.CreatedAt,
		&subject.ModifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}

	return &subject, nil
}

// Update updates an existing subject
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	query := `
		UPDATE subjects
		SET name = $1, code = $2, summary = $3, credits = $4, visible = $5, modified_at = NOW()
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		subject.Name, subject.Code, subject.Summary, subject.Credits, subject.Visible, subject.ID)
	if err != nil {
		return fmt.Errorf("error updating subject: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}

	return nil
}

// Delete removes the subject and, in the same transaction, every
// subject_courses and program_subjects row referencing it.
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM subject_courses WHERE subject_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting subject course links: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM program_subjects WHERE subject_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting program subject links: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM subjects WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting subject: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrSubjectNotFound
		}

		return nil
	})
}

// Search returns a bounded page of subjects ordered by name. Queries
// shorter than two characters return the unfiltered capped list. Subjects
// already attached to a program are intentionally not excluded here: the
// picker shows them so admins can see the full catalogue.
func (r *SubjectRepository) Search(ctx context.Context, query string, limit int) ([]*models.Subject, error) {
	sql := `
		SELECT id, name, code, summary, credits, sortorder, visible, created_at, modified_at
		FROM subjects
	`
	args := []interface{}{}

	if len([]rune(query)) >= 2 {
		sql += ` WHERE name ILIKE '%' || $1 || '%' OR code ILIKE '%' || $1 || '%'`
		args = append(args, query)
	}

	sql += fmt.Sprintf(` ORDER BY name ASC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*models.Subject
	for rows.Next() {
		var s models.Subject
		if err := rows.Scan(&s.ID, &s.Name, &s.Code, &s.Summary, &s.Credits,
			&s.SortOrder, &s.Visible, &s.CreatedAt, &s.ModifiedAt); err != nil {
			return nil, err
		}
		subjects = append(subjects, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// AttachCourse links a course into the subject with the next sortorder.
func (r *SubjectRepository) AttachCourse(ctx context.Context, subjectID, courseID int64) (*models.SubjectCourse, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM subject_courses WHERE subject_id = $1 AND course_id = $2)`,
		subjectID, courseID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("error checking subject course link: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyAttached
	}

	link := &models.SubjectCourse{SubjectID: subjectID, CourseID: courseID}
	err = r.db.QueryRow(ctx, `
		INSERT INTO subject_courses (subject_id, course_id, sortorder, created_at, modified_at)
		VALUES ($1, $2,
			COALESCE((SELECT MAX(sortorder) + 1 FROM subject_courses WHERE subject_id = $1), 0),
			NOW(), NOW())
		RETURNING id, sortorder, created_at, modified_at`,
		subjectID, courseID,
	).Scan(&link.ID, &link.SortOrder, &link.CreatedAt, &link.ModifiedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyAttached
		}
		return nil, fmt.Errorf("error attaching course to subject: %w", err)
	}

	return link, nil
}

// DetachCourse removes the link. Idempotent: reports whether a row existed.
func (r *SubjectRepository) DetachCourse(ctx context.Context, subjectID, courseID int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM subject_courses WHERE subject_id = $1 AND course_id = $2`,
		subjectID, courseID)
	if err != nil {
		return false, fmt.Errorf("error detaching course from subject: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// GetSubjectCourses returns the subject's course links in sortorder, each
// with its course populated.
func (r *SubjectRepository) GetSubjectCourses(ctx context.Context, subjectID int64) ([]*models.SubjectCourse, error) {
	query := `
		SELECT sc.id, sc.subject_id, sc.course_id, sc.sortorder, sc.created_at, sc.modified_at,
		       c.id, c.category_id, c.fullname, c.shortname, c.visible
		FROM subject_courses sc
		JOIN courses c ON c.id = sc.course_id
		WHERE sc.subject_id = $1
		ORDER BY sc.sortorder ASC
	`

	rows, err := r.db.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.SubjectCourse
	for rows.Next() {
		var link models.SubjectCourse
		var course models.Course
		if err := rows.Scan(
			&link.ID, &link.SubjectID, &link.CourseID, &link.SortOrder, &link.CreatedAt, &link.ModifiedAt,
			&course.ID, &course.CategoryID, &course.FullName, &course.ShortName, &course.Visible,
		); err != nil {
			return nil, err
		}
		link.Course = &course
		links = append(links, &link)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return links, nil
}
