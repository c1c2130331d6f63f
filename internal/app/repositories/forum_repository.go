package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeyev/eduboard/internal/app/models"
)

// ForumRepository reads forum discussions and posts from platform tables.
type ForumRepository struct {
	db *pgxpool.Pool
}

// NewForumRepository creates a new forum repository
func NewForumRepository(db *pgxpool.Pool) *ForumRepository {
	return &ForumRepository{db: db}
}

// UnansweredPosts returns student posts in the given courses that have no
// later teacher post in the same discussion, oldest first. The message is
// returned raw; the service layer builds the preview.
func (r *ForumRepository) UnansweredPosts(ctx context.Context, courseIDs []int64, teacherRoles []string) ([]*models.UnansweredForumPost, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT p.id, d.id, d.name, c.id, c.fullname,
		       u.id, u.first_name || ' ' || u.last_name,
		       p.message, p.created_at
		FROM forum_posts p
		JOIN forum_discussions d ON d.id = p.discussion_id
		JOIN forums f ON f.id = d.forum_id
		JOIN courses c ON c.id = f.course_id
		JOIN users u ON u.id = p.user_id
		WHERE c.id = ANY($1)
		  AND NOT EXISTS (
			SELECT 1
			FROM enrollments e
			WHERE e.course_id = c.id AND e.user_id = p.user_id AND e.role = ANY($2))
		  AND NOT EXISTS (
			SELECT 1
			FROM forum_posts p2
			JOIN enrollments e2 ON e2.course_id = c.id AND e2.user_id = p2.user_id
			WHERE p2.discussion_id = p.discussion_id
			  AND p2.created_at > p.created_at
			  AND e2.role = ANY($2))
		ORDER BY p.created_at ASC`,
		courseIDs, teacherRoles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.UnansweredForumPost
	for rows.Next() {
		var row models.UnansweredForumPost
		if err := rows.Scan(&row.PostID, &row.DiscussionID, &row.DiscussionName,
			&row.CourseID, &row.CourseName,
			&row.AuthorID, &row.AuthorName,
			&row.Preview, &row.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
