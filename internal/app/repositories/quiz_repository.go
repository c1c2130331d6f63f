package repositories

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeyev/eduboard/internal/app/models"
)

// QuizRepository reads quiz attempts from platform tables.
type QuizRepository struct {
	db *pgxpool.Pool
}

// NewQuizRepository creates a new quiz repository
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{db: db}
}

const failedAttemptsQuery = `
	SELECT qa.id, q.id, q.name, c.id, c.fullname,
	       u.id, u.first_name || ' ' || u.last_name,
	       qa.sum_grades, q.sum_grades, qa.finished_at
	FROM quiz_attempts qa
	JOIN quizzes q ON q.id = qa.quiz_id
	JOIN courses c ON c.id = q.course_id
	JOIN users u ON u.id = qa.user_id
	WHERE c.id = ANY($1)
	  AND qa.state = 'finished'
	  AND qa.sum_grades < q.sum_grades
	ORDER BY qa.finished_at DESC`

// FailedAttempts returns finished quiz attempts in the given courses whose
// score fell short of the quiz maximum, most recent first. Every such
// attempt is listed, not just a student's best one per quiz.
func (r *QuizRepository) FailedAttempts(ctx context.Context, courseIDs []int64) ([]*models.FailedQuizAttempt, error) {
	if len(courseIDs) == 0 {
		return nil, nil
	}

	rows, err := r.db.Query(ctx, failedAttemptsQuery, courseIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.FailedQuizAttempt
	for rows.Next() {
		var row models.FailedQuizAttempt
		if err := rows.Scan(&row.AttemptID, &row.QuizID, &row.QuizName,
			&row.CourseID, &row.CourseName,
			&row.StudentID, &row.StudentName,
			&row.SumGrades, &row.MaxGrades, &row.FinishedAt); err != nil {
			return nil, err
		}
		result = append(result, &row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
