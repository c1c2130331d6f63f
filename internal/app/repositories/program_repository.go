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

// ProgramRepository handles database operations for programs and their
// subject/cohort links.
type ProgramRepository struct {
	db *pgxpool.Pool
}

// NewProgramRepository creates a new program repository
func NewProgramRepository(db *pgxpool.Pool) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Create creates a new program
func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	query := `
		INSERT INTO programs (name, code, description, institution, visible, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, modified_at
	`

	err := r.db.QueryRow(ctx, query,
		program.Name, program.Code, program.Description, program.Institution, program.Visible,
	).Scan(&program.ID, &program.CreatedAt, &program.ModifiedAt)
	if err != nil {
		return fmt.Errorf("error creating program: %w", err)
	}

	return nil
}

// GetByID retrieves a program by ID
func (r *ProgramRepository) GetByID(ctx context.Context, id int64) (*models.Program, error) {
	query := `
		SELECT id, name, code, description, institution, visible, created_at, modified_at
		FROM programs
		WHERE id = $1
	`

	var program models.Program
	err := r.db.QueryRow(ctx, query, id).Scan(
		&program.ID,
		&program.Name,
		&program.Code,
		&program.Description,
		&program.Institution,
		&program.Visible,
		&program.CreatedAt,
		&program.ModifiedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProgramNotFound
		}
		return nil, fmt.Errorf("error retrieving program: %w", err)
	}

	return &program, nil
}

// Update updates an existing program
func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	query := `
		UPDATE programs
		SET name = $1, code = $2, description = $3, institution = $4, visible = $5, modified_at = NOW()
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		program.Name, program.Code, program.Description, program.Institution, program.Visible, program.ID)
	if err != nil {
		return fmt.Errorf("error updating program: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrProgramNotFound
	}

	return nil
}

// Delete removes the program and, in the same transaction, every
// program_subjects and program_cohorts row referencing it. Subjects and
// cohorts themselves are left intact.
func (r *ProgramRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM program_subjects WHERE program_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting program subject links: %w", err)
		}

		if _, err := tx.Exec(ctx, `DELETE FROM program_cohorts WHERE program_id = $1`, id); err != nil {
			return fmt.Errorf("error deleting program cohort links: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, `DELETE FROM programs WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("error deleting program: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrProgramNotFound
		}

		return nil
	})
}

// Search returns a bounded page of programs ordered by name. Queries
// shorter than two characters return the unfiltered capped list.
func (r *ProgramRepository) Search(ctx context.Context, query string, limit int) ([]*models.Program, error) {
	sql := `
		SELECT id, name, code, description, institution, visible, created_at, modified_at
		FROM programs
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

	var programs []*models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.Institution,
			&p.Visible, &p.CreatedAt, &p.ModifiedAt); err != nil {
			return nil, err
		}
		programs = append(programs, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}

// AttachSubject links a subject into the program with the next sortorder.
// Returns ErrAlreadyAttached when the pair exists; the unique constraint
// backs up the pre-check under concurrency.
func (r *ProgramRepository) AttachSubject(ctx context.Context, programID, subjectID int64) (*models.ProgramSubject, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM program_subjects WHERE program_id = $1 AND subject_id = $2)`,
		programID, subjectID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("error checking program subject link: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyAttached
	}

	link := &models.ProgramSubject{ProgramID: programID, SubjectID: subjectID}
	err = r.db.QueryRow(ctx, `
		INSERT INTO program_subjects (program_id, subject_id, sortorder, created_at, modified_at)
		VALUES ($1, $2,
			COALESCE((SELECT MAX(sortorder) + 1 FROM program_subjects WHERE program_id = $1), 0),
			NOW(), NOW())
		RETURNING id, sortorder, created_at, modified_at`,
		programID, subjectID,
	).Scan(&link.ID, &link.SortOrder, &link.CreatedAt, &link.ModifiedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyAttached
		}
		return nil, fmt.Errorf("error attaching subject to program: %w", err)
	}

	return link, nil
}

// DetachSubject removes the link. Idempotent: reports whether a row existed.
func (r *ProgramRepository) DetachSubject(ctx context.Context, programID, subjectID int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM program_subjects WHERE program_id = $1 AND subject_id = $2`,
		programID, subjectID)
	if err != nil {
		return false, fmt.Errorf("error detaching subject from program: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// GetProgramSubjects returns the program's subject links in sortorder, each
// with its subject populated.
func (r *ProgramRepository) GetProgramSubjects(ctx context.Context, programID int64) ([]*models.ProgramSubject, error) {
	query := `
		SELECT ps.id, ps.program_id, ps.subject_id, ps.sortorder, ps.created_at, ps.modified_at,
		       s.id, s.name, s.code, s.summary, s.credits, s.sortorder, s.visible, s.created_at, s.modified_at
		FROM program_subjects ps
		JOIN subjects s ON s.id = ps.subject_id
		WHERE ps.program_id = $1
		ORDER BY ps.sortorder ASC
	`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.ProgramSubject
	for rows.Next() {
		var link models.ProgramSubject
		var subject models.Subject
		if err := rows.Scan(
			&link.ID, &link.ProgramID, &link.SubjectID, &link.SortOrder, &link.CreatedAt, &link.ModifiedAt,
			&subject.ID, &subject.Name, &subject.Code, &subject.Summary, &subject.Credits,
			&subject.SortOrder, &subject.Visible, &subject.CreatedAt, &subject.ModifiedAt,
		); err != nil {
			return nil, err
		}
		link.Subject = &subject
		links = append(links, &link)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return links, nil
}

// SwapSubjectOrder swaps the sortorder values of two program_subjects rows.
// Both rows must belong to the same program; a mismatch is an error, not a
// silent no-op. The swap is atomic and is its own inverse.
func (r *ProgramRepository) SwapSubjectOrder(ctx context.Context, relationID, siblingID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var aProgram, aOrder, bProgram, bOrder int64

		err := tx.QueryRow(ctx,
			`SELECT program_id, sortorder FROM program_subjects WHERE id = $1 FOR UPDATE`,
			relationID).Scan(&aProgram, &aOrder)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotAttached
			}
			return fmt.Errorf("error loading relation: %w", err)
		}

		err = tx.QueryRow(ctx,
			`SELECT program_id, sortorder FROM program_subjects WHERE id = $1 FOR UPDATE`,
			siblingID).Scan(&bProgram, &bOrder)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotAttached
			}
			return fmt.Errorf("error loading sibling relation: %w", err)
		}

		if aProgram != bProgram {
			return apperrors.ErrOrderScopeMismatch
		}

		if _, err := tx.Exec(ctx,
			`UPDATE program_subjects SET sortorder = $1, modified_at = NOW() WHERE id = $2`,
			bOrder, relationID); err != nil {
			return fmt.Errorf("error updating relation order: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`UPDATE program_subjects SET sortorder = $1, modified_at = NOW() WHERE id = $2`,
			aOrder, siblingID); err != nil {
			return fmt.Errorf("error updating sibling order: %w", err)
		}

		return nil
	})
}

// AttachCohort links a cohort to the program (unordered).
func (r *ProgramRepository) AttachCohort(ctx context.Context, programID, cohortID int64) (*models.ProgramCohort, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM program_cohorts WHERE program_id = $1 AND cohort_id = $2)`,
		programID, cohortID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("error checking program cohort link: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyAttached
	}

	link := &models.ProgramCohort{ProgramID: programID, CohortID: cohortID}
	err = r.db.QueryRow(ctx, `
		INSERT INTO program_cohorts (program_id, cohort_id, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id, created_at`,
		programID, cohortID,
	).Scan(&link.ID, &link.CreatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return nil, apperrors.ErrAlreadyAttached
		}
		return nil, fmt.Errorf("error attaching cohort to program: %w", err)
	}

	return link, nil
}

// DetachCohort removes the link. Idempotent: reports whether a row existed.
func (r *ProgramRepository) DetachCohort(ctx context.Context, programID, cohortID int64) (bool, error) {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM program_cohorts WHERE program_id = $1 AND cohort_id = $2`,
		programID, cohortID)
	if err != nil {
		return false, fmt.Errorf("error detaching cohort from program: %w", err)
	}

	return cmdTag.RowsAffected() > 0, nil
}

// GetProgramCohorts returns the program's cohort links with cohorts populated.
func (r *ProgramRepository) GetProgramCohorts(ctx context.Context, programID int64) ([]*models.ProgramCohort, error) {
	query := `
		SELECT pc.id, pc.program_id, pc.cohort_id, pc.created_at, c.id, c.name
		FROM program_cohorts pc
		JOIN cohorts c ON c.id = pc.cohort_id
		WHERE pc.program_id = $1
		ORDER BY c.name ASC
	`

	rows, err := r.db.Query(ctx, query, programID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*models.ProgramCohort
	for rows.Next() {
		var link models.ProgramCohort
		var cohort models.Cohort
		if err := rows.Scan(&link.ID, &link.ProgramID, &link.CohortID, &link.CreatedAt,
			&cohort.ID, &cohort.Name); err != nil {
			return nil, err
		}
		link.Cohort = &cohort
		links = append(links, &link)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return links, nil
}

// VisibleProgramsByCohorts returns the visible programs linked to any of
// the given cohorts. This is the sole path granting students program
// visibility.
func (r *ProgramRepository) VisibleProgramsByCohorts(ctx context.Context, cohortIDs []int64) ([]*models.Program, error) {
	if len(cohortIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT DISTINCT p.id, p.name, p.code, p.description, p.institution, p.visible, p.created_at, p.modified_at
		FROM programs p
		JOIN program_cohorts pc ON pc.program_id = p.id
		WHERE pc.cohort_id = ANY($1) AND p.visible
		ORDER BY p.name ASC
	`

	rows, err := r.db.Query(ctx, query, cohortIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var programs []*models.Program
	for rows.Next() {
		var p models.Program
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.Description, &p.Institution,
			&p.Visible, &p.CreatedAt, &p.ModifiedAt); err != nil {
			return nil, err
		}
		programs = append(programs, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return programs, nil
}
