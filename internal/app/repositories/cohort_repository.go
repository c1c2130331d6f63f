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

// CohortRepository reads platform cohorts and cohort membership.
type CohortRepository struct {
	db *pgxpool.Pool
}

// NewCohortRepository creates a new cohort repository
func NewCohortRepository(db *pgxpool.Pool) *CohortRepository {
	return &CohortRepository{db: db}
}

// GetByID retrieves a cohort by ID
func (r *CohortRepository) GetByID(ctx context.Context, id int64) (*models.Cohort, error) {
	var cohort models.Cohort
	err := r.db.QueryRow(ctx,
		`SELECT id, name, id_number, visible FROM cohorts WHERE id = $1`,
		id).Scan(&cohort.ID, &cohort.Name, &cohort.IDNumber, &cohort.Visible)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCohortNotFound
		}
		return nil, fmt.Errorf("error retrieving cohort: %w", err)
	}

	return &cohort, nil
}

// SearchForProgram returns a bounded picker page of cohorts ordered by
// name, excluding cohorts already attached to the program. Queries shorter
// than two characters return the unfiltered capped list.
func (r *CohortRepository) SearchForProgram(ctx context.Context, query string, programID int64, limit int) ([]*models.Cohort, error) {
	sql := `
		SELECT c.id, c.name, c.id_number, c.visible
		FROM cohorts c
		WHERE c.visible
	`
	args := []interface{}{}

	if programID > 0 {
		sql += ` AND NOT EXISTS (
			SELECT 1 FROM program_cohorts pc WHERE pc.program_id = $1 AND pc.cohort_id = c.id)`
		args = append(args, programID)
	}

	if len([]rune(query)) >= 2 {
		sql += fmt.Sprintf(` AND (c.name ILIKE '%%' || $%d || '%%' OR c.id_number ILIKE '%%' || $%d || '%%')`,
			len(args)+1, len(args)+1)
		args = append(args, query)
	}

	sql += fmt.Sprintf(` ORDER BY c.name ASC LIMIT %d`, limit)

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cohorts []*models.Cohort
	for rows.Next() {
		var c models.Cohort
		if err := rows.Scan(&c.ID, &c.Name, &c.IDNumber, &c.Visible); err != nil {
			return nil, err
		}
		cohorts = append(cohorts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return cohorts, nil
}

// UserCohortIDs returns the ids of every cohort the user belongs to.
func (r *CohortRepository) UserCohortIDs(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT cohort_id FROM cohort_members WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
