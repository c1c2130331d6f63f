package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/app/models/dto"
	"github.com/avdeyev/eduboard/internal/app/repositories"
	"github.com/avdeyev/eduboard/internal/config"
	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
)

// DashboardService orchestrates access resolution, curriculum reads and
// progress aggregation into the three role views.
type DashboardService struct {
	accessService      *AccessService
	progressService    *ProgressService
	outstandingService *OutstandingService
	curriculumService  *CurriculumService
	categoryRepo       *repositories.CategoryRepository
	courseRepo         *repositories.CourseRepository
	externalCreditRepo *repositories.ExternalCreditRepository
	studentInfoRepo    *repositories.StudentInfoRepository
	subjectRepo        *repositories.SubjectRepository
	policy             config.DashboardConfig
	logger             zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	accessService *AccessService,
	progressService *ProgressService,
	outstandingService *OutstandingService,
	curriculumService *CurriculumService,
	categoryRepo *repositories.CategoryRepository,
	courseRepo *repositories.CourseRepository,
	externalCreditRepo *repositories.ExternalCreditRepository,
	studentInfoRepo *repositories.StudentInfoRepository,
	subjectRepo *repositories.SubjectRepository,
	policy config.DashboardConfig,
	logger zerolog.Logger,
) *DashboardService {
	return &DashboardService{
		accessService:      accessService,
		progressService:    progressService,
		outstandingService: outstandingService,
		curriculumService:  curriculumService,
		categoryRepo:       categoryRepo,
		courseRepo:         courseRepo,
		externalCreditRepo: externalCreditRepo,
		studentInfoRepo:    studentInfoRepo,
		subjectRepo:        subjectRepo,
		policy:             policy,
		logger:             logger,
	}
}

// Dashboard routes the user to the single view their strongest role
// qualifies them for: admin > teacher > student.
func (s *DashboardService) Dashboard(ctx context.Context, user *models.User) (*dto.DashboardResponse, error) {
	roles, err := s.accessService.ResolveRoles(ctx, user)
	if err != nil {
		return nil, err
	}

	resp := &dto.DashboardResponse{Roles: roles}

	view := roles.View()
	if view == "" {
		if !s.accessService.StudentAccessAllowed(roles, s.accessService.IsGuest(user.Username)) {
			return nil, apperrors.ErrPermissionDenied
		}
		view = models.RoleStudent
	}
	resp.View = view

	switch view {
	case models.RoleAdmin:
		resp.Admin, err = s.buildAdminView(ctx)
	case models.RoleTeacher:
		resp.Teacher, err = s.buildTeacherView(ctx, user.ID)
	case models.RoleStudent:
		resp.Student, err = s.buildStudentView(ctx, user.ID)
	}
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (s *DashboardService) buildAdminView(ctx context.Context) (*dto.AdminView, error) {
	programs, err := s.curriculumService.SearchPrograms(ctx, "")
	if err != nil {
		return nil, err
	}

	subjects, err := s.curriculumService.SearchSubjects(ctx, "")
	if err != nil {
		return nil, err
	}

	institutions, err := s.curriculumService.ListInstitutions(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.AdminView{
		Programs:     programs,
		Subjects:     subjects,
		Institutions: institutions,
	}, nil
}

func (s *DashboardService) buildTeacherView(ctx context.Context, userID int64) (*dto.TeacherView, error) {
	courses, err := s.accessService.TeacherCourses(ctx, userID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]int64, 0, len(courses))
	view := &dto.TeacherView{Courses: make([]models.Course, 0, len(courses))}
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
		view.Courses = append(view.Courses, *c)
	}

	view.UngradedCount, view.FailedQuizCount, view.UnansweredCount, err =
		s.outstandingService.Counts(ctx, courseIDs)
	if err != nil {
		return nil, err
	}

	return view, nil
}

func (s *DashboardService) buildStudentView(ctx context.Context, userID int64) (*dto.StudentView, error) {
	programs, err := s.accessService.StudentVisiblePrograms(ctx, userID)
	if err != nil {
		return nil, err
	}

	view := &dto.StudentView{
		Programs:   make([]dto.ProgramProgress, 0, len(programs)),
		GradeTable: []dto.CourseGradeRow{},
	}

	credits, err := s.externalCreditRepo.GetForStudent(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool)
	for _, program := range programs {
		progress, err := s.progressService.ProgramProgress(ctx, program, userID)
		if err != nil {
			return nil, err
		}
		for i := range progress.Subjects {
			if credit, ok := credits[progress.Subjects[i].Subject.ID]; ok {
				progress.Subjects[i].ExternalCredit = credit
			}
		}
		view.Programs = append(view.Programs, *progress)

		for _, sp := range progress.Subjects {
			for _, row := range sp.Courses {
				if seen[row.CourseID] {
					continue
				}
				seen[row.CourseID] = true
				view.GradeTable = append(view.GradeTable, row)
			}
		}
	}

	info, err := s.studentInfoRepo.GetByUserID(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrStudentInfoNotFound) {
		return nil, err
	}
	view.Info = info

	subjectIDs := make([]int64, 0, len(credits))
	for subjectID := range credits {
		subjectIDs = append(subjectIDs, subjectID)
	}
	sort.Slice(subjectIDs, func(i, j int) bool { return subjectIDs[i] < subjectIDs[j] })

	for _, subjectID := range subjectIDs {
		credit := credits[subjectID]
		name := ""
		subject, err := s.subjectRepo.GetByID(ctx, credit.SubjectID)
		if err == nil {
			name = subject.Name
		} else if !errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, err
		}
		view.Credits = append(view.Credits, dto.ExternalCreditRow{
			Credit:      credit,
			SubjectName: name,
		})
	}

	return view, nil
}

// CategoryCourses lists the visible courses in a category and all of its
// descendants.
func (s *DashboardService) CategoryCourses(ctx context.Context, categoryID int64) ([]*models.Course, error) {
	ids, err := s.categoryRepo.SubtreeIDs(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("category subtree %d: %w", categoryID, err)
	}

	return s.courseRepo.CoursesInCategories(ctx, ids)
}

// CategoryStudents lists distinct students enrolled anywhere in a
// category's course subtree.
func (s *DashboardService) CategoryStudents(ctx context.Context, categoryID int64) ([]*models.User, error) {
	return s.categoryUsers(ctx, categoryID, s.policy.StudentRoles)
}

// CategoryTeachers lists distinct teachers enrolled anywhere in a
// category's course subtree.
func (s *DashboardService) CategoryTeachers(ctx context.Context, categoryID int64) ([]*models.User, error) {
	return s.categoryUsers(ctx, categoryID, s.policy.TeacherRoles)
}

func (s *DashboardService) categoryUsers(ctx context.Context, categoryID int64, roles []string) ([]*models.User, error) {
	courses, err := s.CategoryCourses(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]int64, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}

	return s.courseRepo.UsersEnrolledWithRoles(ctx, courseIDs, roles)
}

// ProgramSubjectsForStudent returns a program's subject progress under the
// student access policy: the program must be reachable through the
// caller's cohorts.
func (s *DashboardService) ProgramSubjectsForStudent(ctx context.Context, user *models.User, programID int64) (*dto.ProgramProgress, error) {
	roles, err := s.accessService.ResolveRoles(ctx, user)
	if err != nil {
		return nil, err
	}
	if !s.accessService.StudentAccessAllowed(roles, s.accessService.IsGuest(user.Username)) {
		return nil, apperrors.ErrPermissionDenied
	}

	programs, err := s.accessService.StudentVisiblePrograms(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	var target *models.Program
	for _, program := range programs {
		if program.ID == programID {
			target = program
			break
		}
	}

	if target == nil {
		// Admins may inspect any program through the student endpoint.
		if !roles.IsAdmin {
			return nil, apperrors.ErrProgramNotFound
		}
		target, err = s.curriculumService.programRepo.GetByID(ctx, programID)
		if err != nil {
			return nil, err
		}
	}

	progress, err := s.progressService.ProgramProgress(ctx, target, user.ID)
	if err != nil {
		return nil, err
	}

	credits, err := s.externalCreditRepo.GetForStudent(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	for i := range progress.Subjects {
		if credit, ok := credits[progress.Subjects[i].Subject.ID]; ok {
			progress.Subjects[i].ExternalCredit = credit
		}
	}

	return progress, nil
}
