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

// InstitutionRepository handles database operations for the institution
// directory. Note that programs reference institutions by free-text label,
// not by id; deleting a row here does not touch any program.
type InstitutionRepository struct {
	db *pgxpool.Pool
}

// NewInstitutionRepository creates a new institution repository
func NewInstitutionRepository(db *pgxpool.Pool) *InstitutionRepository {
	return &InstitutionRepository{db: db}
}

// Create creates a new institution
func (r *InstitutionRepository) Create(ctx context.Context, institution *models.Institution) error {
	query := `
		INSERT INTO institutions (name, visible)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, institution.Name, institution.Visible).Scan(&institution.ID)
	if err != nil {
		return fmt.Errorf("error creating institution: %w", err)
	}

	return nil
}

// GetByID retrieves an institution by ID
func (r *InstitutionRepository) GetByID(ctx context.Context, id int64) (*models.Institution, error) {
	query := `
		SELECT id, name, visible
		FROM institutions
		WHERE id = $1
	`

	var institution models.Institution
	err := r.db.QueryRow(ctx, query, id).Scan(
		&institution.ID,
		&institution.Name,
		&institution.Visible,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrInstitutionNotFound
		}
		return nil, fmt.Errorf("error retrieving institution: %w", err)
	}

	return &institution, nil
}

// GetAll retrieves all institutions ordered by name
func (r *InstitutionRepository) GetAll(ctx context.Context) ([]*models.Institution, error) {
	query := `
		SELECT id, name, visible
		FROM institutions
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var institutions []*models.Institution
	for rows.Next() {
		var institution models.Institution
		if err := rows.Scan(&institution.ID, &institution.Name, &institution.Visible); err != nil {
			return nil, err
		}
		institutions = append(institutions, &institution)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return institutions, nil
}

// Update updates an existing institution
func (r *InstitutionRepository) Update(ctx context.Context, institution *models.Institution) error {
	query := `
		UPDATE institutions
		SET name = $1, visible = $2
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, institution.Name, institution.Visible, institution.ID)
	if err != nil {
		return fmt.Errorf("error updating institution: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}

	return nil
}

// Delete deletes an institution by ID
func (r *InstitutionRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM institutions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting institution: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrInstitutionNotFound
	}

	return nil
}
