package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
	"github.com/avdeyev/eduboard/internal/pkg/dberrors"
)

// ExternalCreditRepository handles database operations for externally
// transferred subject credit. One row at most per (student, subject).
type ExternalCreditRepository struct {
	db *pgxpool.Pool
}

// NewExternalCreditRepository creates a new external credit repository
func NewExternalCreditRepository(db *pgxpool.Pool) *ExternalCreditRepository {
	return &ExternalCreditRepository{db: db}
}

// Create records a new external credit
func (r *ExternalCreditRepository) Create(ctx context.Context, credit *models.StudentExternalCredit) error {
	query := `
		INSERT INTO student_external_credits
			(student_id, subject_id, grade, grade_percent, institution_name,
			 credited_date, document_number, notes, created_by, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, modified_at
	`

	err := r.db.QueryRow(ctx, query,
		credit.StudentID, credit.SubjectID, credit.Grade, credit.GradePercent,
		credit.InstitutionName, credit.CreditedDate, credit.DocumentNumber,
		credit.Notes, credit.CreatedBy,
	).Scan(&credit.ID, &credit.CreatedAt, &credit.ModifiedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrExternalCreditExists
		}
		return fmt.Errorf("error creating external credit: %w", err)
	}

	return nil
}

// GetForStudent returns the student's external credits keyed by subject id.
func (r *ExternalCreditRepository) GetForStudent(ctx context.Context, studentID int64) (map[int64]*models.StudentExternalCredit, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, student_id, subject_id, grade, grade_percent, institution_name,
		       credited_date, document_number, notes, created_by, created_at, modified_at
		FROM student_external_credits
		WHERE student_id = $1`,
		studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	credits := make(map[int64]*models.StudentExternalCredit)
	for rows.Next() {
		var c models.StudentExternalCredit
		if err := rows.Scan(&c.ID, &c.StudentID, &c.SubjectID, &c.Grade, &c.GradePercent,
			&c.InstitutionName, &c.CreditedDate, &c.DocumentNumber, &c.Notes,
			&c.CreatedBy, &c.CreatedAt, &c.ModifiedAt); err != nil {
			return nil, err
		}
		credits[c.SubjectID] = &c
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return credits, nil
}

// Update replaces the mutable fields of an existing credit
func (r *ExternalCreditRepository) Update(ctx context.Context, credit *models.StudentExternalCredit) error {
	query := `
		UPDATE student_external_credits
		SET grade = $1, grade_percent = $2, institution_name = $3,
		    credited_date = $4, document_number = $5, notes = $6, modified_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		credit.Grade, credit.GradePercent, credit.InstitutionName,
		credit.CreditedDate, credit.DocumentNumber, credit.Notes, credit.ID)
	if err != nil {
		return fmt.Errorf("error updating external credit: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExternalCreditNotFound
	}

	return nil
}

// Delete removes a credit by ID
func (r *ExternalCreditRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM student_external_credits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting external credit: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrExternalCreditNotFound
	}

	return nil
}

// GetByID retrieves a credit by ID
func (r *ExternalCreditRepository) GetByID(ctx context.Context, id int64) (*models.StudentExternalCredit, error) {
	var c models.StudentExternalCredit
	err := r.db.QueryRow(ctx, `
		SELECT id, student_id, subject_id, grade, grade_percent, institution_name,
		       credited_date, document_number, notes, created_by, created_at, modified_at
		FROM student_external_credits
		WHERE id = $1`,
		id).Scan(&c.ID, &c.StudentID, &c.SubjectID, &c.Grade, &c.GradePercent,
		&c.InstitutionName, &c.CreditedDate, &c.DocumentNumber, &c.Notes,
		&c.CreatedBy, &c.CreatedAt, &c.ModifiedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExternalCreditNotFound
		}
		return nil, fmt.Errorf("error retrieving external credit: %w", err)
	}

	return &c, nil
}
