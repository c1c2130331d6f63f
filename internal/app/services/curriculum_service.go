package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/app/models/dto"
	"github.com/avdeyev/eduboard/internal/app/repositories"
	"github.com/avdeyev/eduboard/internal/config"
	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
)

// CurriculumService manages programs, subjects, institutions and their
// linkage rows. All multi-row mutations are transactional in the
// repository layer.
type CurriculumService struct {
	programRepo     *repositories.ProgramRepository
	subjectRepo     *repositories.SubjectRepository
	institutionRepo *repositories.InstitutionRepository
	courseRepo      *repositories.CourseRepository
	cohortRepo      *repositories.CohortRepository
	policy          config.DashboardConfig
	logger          zerolog.Logger
}

// NewCurriculumService creates a new CurriculumService
func NewCurriculumService(
	programRepo *repositories.ProgramRepository,
	subjectRepo *repositories.SubjectRepository,
	institutionRepo *repositories.InstitutionRepository,
	courseRepo *repositories.CourseRepository,
	cohortRepo *repositories.CohortRepository,
	policy config.DashboardConfig,
	logger zerolog.Logger,
) *CurriculumService {
	return &CurriculumService{
		programRepo:     programRepo,
		subjectRepo:     subjectRepo,
		institutionRepo: institutionRepo,
		courseRepo:      courseRepo,
		cohortRepo:      cohortRepo,
		policy:          policy,
		logger:          logger,
	}
}

// CreateProgram creates a program from the request fields.
func (s *CurriculumService) CreateProgram(ctx context.Context, req *dto.CreateProgramRequest) (*models.Program, error) {
	program := &models.Program{
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		Institution: req.Institution,
		Visible:     true,
	}
	if req.Visible != nil {
		program.Visible = *req.Visible
	}

	if err := s.programRepo.Create(ctx, program); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("programId", program.ID).Str("code", program.Code).Msg("Program created")
	return program, nil
}

// UpdateProgram applies the request fields to an existing program.
func (s *CurriculumService) UpdateProgram(ctx context.Context, id int64, req *dto.CreateProgramRequest) (*models.Program, error) {
	program, err := s.programRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	program.Name = req.Name
	program.Code = req.Code
	program.Description = req.Description
	program.Institution = req.Institution
	if req.Visible != nil {
		program.Visible = *req.Visible
	}

	if err := s.programRepo.Update(ctx, program); err != nil {
		return nil, err
	}

	return program, nil
}

// DeleteProgram removes a program and all its subject and cohort links.
func (s *CurriculumService) DeleteProgram(ctx context.Context, id int64) error {
	if err := s.programRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("programId", id).Msg("Program deleted")
	return nil
}

// CreateSubject creates a subject from the request fields.
func (s *CurriculumService) CreateSubject(ctx context.Context, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	subject := &models.Subject{
		Name:    req.Name,
		Code:    req.Code,
		Summary: req.Summary,
		Credits: req.Credits,
		Visible: true,
	}
	if req.Visible != nil {
		subject.Visible = *req.Visible
	}

	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subjectId", subject.ID).Str("code", subject.Code).Msg("Subject created")
	return subject, nil
}

// UpdateSubject applies the request fields to an existing subject.
func (s *CurriculumService) UpdateSubject(ctx context.Context, id int64, req *dto.CreateSubjectRequest) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	subject.Name = req.Name
	subject.Code = req.Code
	subject.Summary = req.Summary
	subject.Credits = req.Credits
	if req.Visible != nil {
		subject.Visible = *req.Visible
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

// DeleteSubject removes a subject and all its course and program links.
func (s *CurriculumService) DeleteSubject(ctx context.Context, id int64) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("subjectId", id).Msg("Subject deleted")
	return nil
}

// CreateInstitution creates an institution directory entry.
func (s *CurriculumService) CreateInstitution(ctx context.Context, req *dto.CreateInstitutionRequest) (*models.Institution, error) {
	institution := &models.Institution{
		Name:    req.Name,
		Visible: true,
	}
	if req.Visible != nil {
		institution.Visible = *req.Visible
	}

	if err := s.institutionRepo.Create(ctx, institution); err != nil {
		return nil, err
	}

	return institution, nil
}

// ListInstitutions returns the full institution directory.
func (s *CurriculumService) ListInstitutions(ctx context.Context) ([]*models.Institution, error) {
	return s.institutionRepo.GetAll(ctx)
}

// DeleteInstitution removes a directory entry. Programs referencing the
// institution by label keep their free-text value.
func (s *CurriculumService) DeleteInstitution(ctx context.Context, id int64) error {
	return s.institutionRepo.Delete(ctx, id)
}

// AttachCourseToSubject links an existing course into a subject.
func (s *CurriculumService) AttachCourseToSubject(ctx context.Context, subjectID, courseID int64) (*models.SubjectCourse, error) {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}
	if _, err := s.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	return s.subjectRepo.AttachCourse(ctx, subjectID, courseID)
}

// DetachCourseFromSubject unlinks a course. Missing links are NotFound.
func (s *CurriculumService) DetachCourseFromSubject(ctx context.Context, subjectID, courseID int64) error {
	existed, err := s.subjectRepo.DetachCourse(ctx, subjectID, courseID)
	if err != nil {
		return err
	}
	if !existed {
		return apperrors.ErrNotAttached
	}
	return nil
}

// AttachSubjectToProgram links an existing subject into a program.
func (s *CurriculumService) AttachSubjectToProgram(ctx context.Context, programID, subjectID int64) (*models.ProgramSubject, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return nil, err
	}
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	return s.programRepo.AttachSubject(ctx, programID, subjectID)
}

// DetachSubjectFromProgram unlinks a subject. Missing links are NotFound.
func (s *CurriculumService) DetachSubjectFromProgram(ctx context.Context, programID, subjectID int64) error {
	existed, err := s.programRepo.DetachSubject(ctx, programID, subjectID)
	if err != nil {
		return err
	}
	if !existed {
		return apperrors.ErrNotAttached
	}
	return nil
}

// AttachCohortToProgram links an existing cohort into a program.
func (s *CurriculumService) AttachCohortToProgram(ctx context.Context, programID, cohortID int64) (*models.ProgramCohort, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return nil, err
	}
	if _, err := s.cohortRepo.GetByID(ctx, cohortID); err != nil {
		return nil, err
	}

	return s.programRepo.AttachCohort(ctx, programID, cohortID)
}

// DetachCohortFromProgram unlinks a cohort. Missing links are NotFound.
func (s *CurriculumService) DetachCohortFromProgram(ctx context.Context, programID, cohortID int64) error {
	existed, err := s.programRepo.DetachCohort(ctx, programID, cohortID)
	if err != nil {
		return err
	}
	if !existed {
		return apperrors.ErrNotAttached
	}
	return nil
}

// ChangeSubjectOrder swaps the sortorder values of two program-subject
// links. The direction is validated but does not alter the effect; a swap
// is symmetric.
func (s *CurriculumService) ChangeSubjectOrder(ctx context.Context, relationID, siblingID int64, direction string) error {
	switch models.OrderDirection(direction) {
	case models.OrderUp, models.OrderDown:
	default:
		return apperrors.NewValidationError(fmt.Sprintf("unrecognized direction %q", direction))
	}

	if relationID == siblingID {
		return apperrors.NewValidationError("cannot reorder a relation against itself")
	}

	return s.programRepo.SwapSubjectOrder(ctx, relationID, siblingID)
}

// ProgramSubjects returns a program's subject links in display order.
func (s *CurriculumService) ProgramSubjects(ctx context.Context, programID int64) ([]*models.ProgramSubject, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return nil, err
	}
	return s.programRepo.GetProgramSubjects(ctx, programID)
}

// ProgramCohorts returns a program's cohort links.
func (s *CurriculumService) ProgramCohorts(ctx context.Context, programID int64) ([]*models.ProgramCohort, error) {
	if _, err := s.programRepo.GetByID(ctx, programID); err != nil {
		return nil, err
	}
	return s.programRepo.GetProgramCohorts(ctx, programID)
}

// SubjectCourses returns a subject's course links in display order.
func (s *CurriculumService) SubjectCourses(ctx context.Context, subjectID int64) ([]*models.SubjectCourse, error) {
	if _, err := s.subjectRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}
	return s.subjectRepo.GetSubjectCourses(ctx, subjectID)
}

// SearchCourses backs the attach-a-course picker. Courses already linked to
// the subject are excluded.
func (s *CurriculumService) SearchCourses(ctx context.Context, query string, subjectID int64) ([]*models.Course, error) {
	return s.courseRepo.SearchForSubject(ctx, query, subjectID, s.policy.CourseSearchLimit)
}

// SearchCohorts backs the attach-a-cohort picker. Cohorts already linked to
// the program are excluded.
func (s *CurriculumService) SearchCohorts(ctx context.Context, query string, programID int64) ([]*models.Cohort, error) {
	return s.cohortRepo.SearchForProgram(ctx, query, programID, s.policy.DefaultSearchLimit)
}

// SearchSubjects backs the attach-a-subject picker. Already-attached
// subjects stay in the list so admins can see the full catalogue.
func (s *CurriculumService) SearchSubjects(ctx context.Context, query string) ([]*models.Subject, error) {
	return s.subjectRepo.Search(ctx, query, s.policy.DefaultSearchLimit)
}

// SearchPrograms backs the program listing with the same query semantics as
// the pickers.
func (s *CurriculumService) SearchPrograms(ctx context.Context, query string) ([]*models.Program, error) {
	return s.programRepo.Search(ctx, query, s.policy.DefaultSearchLimit)
}
