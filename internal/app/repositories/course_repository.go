package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
)

// CourseRepository reads platform courses and enrollments through the
// narrow contracts the dashboard needs.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// GetByID retrieves a course by ID
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	var course models.Course
	err := r.db.QueryRow(ctx,
		`SELECT id, category_id, fullname, shortname, visible FROM courses WHERE id = $1`,
		id).Scan(&course.ID, &course.CategoryID, &course.FullName, &course.ShortName, &course.Visible)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return &course, nil
}

// SearchForSubject returns a bounded picker page of courses ordered by
// name, excluding courses already attached to the subject. Queries shorter
// than two characters return the unfiltered capped list.
func (r *CourseRepository) SearchForSubject(ctx context.Context, query string, subjectID int64, limit int) ([]*models.Course, error) {
	sql := `
		SELECT c.id, c.category_id, c.fullname, c.shortname, c.visible
		FROM courses c
		WHERE c.id <> $1
	`
	args := []interface{}{models.SystemCourseID}

	if subjectID > 0 {
		sql += ` AND NOT EXISTS (
			SELECT 1 FROM subject_courses sc WHERE sc.subject_id = $2 AND sc.course_id = c.id)`
		args = append(args, subjectID)
	}

	if len([]rune(query)) >= 2 {
		sql += fmt.Sprintf(` AND (c.fullname ILIKE '%%' || $%d || '%%' OR c.shortname ILIKE '%%' || $%d || '%%')`,
			len(args)+1, len(args)+1)
		args = append(args, query)
	}

	sql += fmt.Sprintf(` ORDER BY c.fullname ASC LIMIT %d`, limit)

	return r.queryCourses(ctx, sql, args...)
}

// CoursesInCategories returns visible courses belonging to any of the
// given category ids.
func (r *CourseRepository) CoursesInCategories(ctx context.Context, categoryIDs []int64) ([]*models.Course, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}

	sql := `
		SELECT id, category_id, fullname, shortname, visible
		FROM courses
		WHERE category_id = ANY($1) AND visible AND id <> $2
		ORDER BY fullname ASC
	`

	return r.queryCourses(ctx, sql, categoryIDs, models.SystemCourseID)
}

// EnrolledCourseIDs returns the ids of every course the user is enrolled in.
func (r *CourseRepository) EnrolledCourseIDs(ctx context.Context, userID int64) (map[int64]bool, error) {
	rows, err := r.db.Query(ctx,
		`SELECT course_id FROM enrollments WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

// TeacherCourses returns the courses the user is enrolled in with a
// course-management role, excluding the platform's system course.
func (r *CourseRepository) TeacherCourses(ctx context.Context, userID int64, teacherRoles []string) ([]*models.Course, error) {
	sql := `
		SELECT DISTINCT c.id, c.category_id, c.fullname, c.shortname, c.visible
		FROM courses c
		JOIN enrollments e ON e.course_id = c.id
		WHERE e.user_id = $1 AND e.role = ANY($2) AND c.id <> $3
		ORDER BY c.fullname ASC
	`

	return r.queryCourses(ctx, sql, userID, teacherRoles, models.SystemCourseID)
}

// UsersEnrolledWithRoles returns distinct users enrolled in any of the
// courses with one of the given enrollment roles. Backs the category
// student/teacher listings.
func (r *CourseRepository) UsersEnrolledWithRoles(ctx context.Context, courseIDs []int64, roles []string) ([]*models.User, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	sql := `
		SELECT DISTINCT u.id, u.username, u.first_name, u.last_name, u.email
		FROM users u
		JOIN enrollments e ON e.user_id = u.id
		WHERE e.course_id = ANY($1) AND e.role = ANY($2) AND u.is_active
		ORDER BY u.last_name ASC, u.first_name ASC
	`

	rows, err := r.db.Query(ctx, sql, courseIDs, roles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

// HasTeacherRole reports whether the user holds a course-management role in
// any course at all.
func (r *CourseRepository) HasTeacherRole(ctx context.Context, userID int64, teacherRoles []string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM enrollments
			WHERE user_id = $1 AND role = ANY($2) AND course_id <> $3)`,
		userID, teacherRoles, models.SystemCourseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking teacher enrollments: %w", err)
	}

	return exists, nil
}

func (r *CourseRepository) queryCourses(ctx context.Context, sql string, args ...interface{}) ([]*models.Course, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		var c models.Course
		if err := rows.Scan(&c.ID, &c.CategoryID, &c.FullName, &c.ShortName, &c.Visible); err != nil {
			return nil, err
		}
		courses = append(courses, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return courses, nil
}
