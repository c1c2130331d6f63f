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

// StudentInfoRepository handles database operations for the supplementary
// student info rows owned by the dashboard.
type StudentInfoRepository struct {
	db *pgxpool.Pool
}

// NewStudentInfoRepository creates a new student info repository
func NewStudentInfoRepository(db *pgxpool.Pool) *StudentInfoRepository {
	return &StudentInfoRepository{db: db}
}

// GetByUserID retrieves the info row for a user
func (r *StudentInfoRepository) GetByUserID(ctx context.Context, userID int64) (*models.StudentInfo, error) {
	var info models.StudentInfo
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, cohort_label, enrollment_year, address, city, snils
		FROM student_info
		WHERE user_id = $1`,
		userID).Scan(&info.ID, &info.UserID, &info.CohortLabel,
		&info.EnrollmentYear, &info.Address, &info.City, &info.Snils)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentInfoNotFound
		}
		return nil, fmt.Errorf("error retrieving student info: %w", err)
	}

	return &info, nil
}

// Upsert creates or replaces the info row for a user.
func (r *StudentInfoRepository) Upsert(ctx context.Context, info *models.StudentInfo) error {
	query := `
		INSERT INTO student_info (user_id, cohort_label, enrollment_year, address, city, snils)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET cohort_label = EXCLUDED.cohort_label,
		    enrollment_year = EXCLUDED.enrollment_year,
		    address = EXCLUDED.address,
		    city = EXCLUDED.city,
		    snils = EXCLUDED.snils
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query,
		info.UserID, info.CohortLabel, info.EnrollmentYear,
		info.Address, info.City, info.Snils,
	).Scan(&info.ID)
	if err != nil {
		return fmt.Errorf("error upserting student info: %w", err)
	}

	return nil
}

// GetForUsers returns info rows for the given users keyed by user id.
// Users without a row are simply absent from the map.
func (r *StudentInfoRepository) GetForUsers(ctx context.Context, userIDs []int64) (map[int64]*models.StudentInfo, error) {
	if len(userIDs) == 0 {
		return map[int64]*models.StudentInfo{}, nil
	}

	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, cohort_label, enrollment_year, address, city, snils
		FROM student_info
		WHERE user_id = ANY($1)`,
		userIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	infos := make(map[int64]*models.StudentInfo)
	for rows.Next() {
		var info models.StudentInfo
		if err := rows.Scan(&info.ID, &info.UserID, &info.CohortLabel,
			&info.EnrollmentYear, &info.Address, &info.City, &info.Snils); err != nil {
			return nil, err
		}
		infos[info.UserID] = &info
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return infos, nil
}
