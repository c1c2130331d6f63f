package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/app/repositories"
	"github.com/avdeyev/eduboard/internal/config"
)

// AccessService resolves which dashboard a user is routed to and which
// programs, courses, or students that user may see.
type AccessService struct {
	userRepo    *repositories.UserRepository
	courseRepo  *repositories.CourseRepository
	cohortRepo  *repositories.CohortRepository
	programRepo *repositories.ProgramRepository
	policy      config.DashboardConfig
	logger      zerolog.Logger
}

// NewAccessService creates a new AccessService
func NewAccessService(
	userRepo *repositories.UserRepository,
	courseRepo *repositories.CourseRepository,
	cohortRepo *repositories.CohortRepository,
	programRepo *repositories.ProgramRepository,
	policy config.DashboardConfig,
	logger zerolog.Logger,
) *AccessService {
	return &AccessService{
		userRepo:    userRepo,
		courseRepo:  courseRepo,
		cohortRepo:  cohortRepo,
		programRepo: programRepo,
		policy:      policy,
		logger:      logger,
	}
}

func containsAny(haystack, needles []string) bool {
	for _, h := range haystack {
		for _, n := range needles {
			if h == n {
				return true
			}
		}
	}
	return false
}

// ResolveRoleSet combines an explicit admin grant, system-scope role names
// and teacher enrollments into the role flags. Guests qualify for nothing.
// Pure role math; the service method gathers the inputs.
func ResolveRoleSet(isSiteAdmin, isGuest bool, systemRoles []string, hasTeacherEnrollment bool, policy config.DashboardConfig) models.RoleSet {
	if isGuest {
		return models.RoleSet{}
	}

	return models.RoleSet{
		IsAdmin:   isSiteAdmin || containsAny(systemRoles, policy.AdminRoles),
		IsTeacher: containsAny(systemRoles, policy.TeacherRoles) || hasTeacherEnrollment,
		IsStudent: containsAny(systemRoles, policy.StudentRoles),
	}
}

// IsGuest reports whether the username is one of the configured guest
// accounts.
func (s *AccessService) IsGuest(username string) bool {
	for _, guest := range s.policy.GuestUsers {
		if username == guest {
			return true
		}
	}
	return false
}

// ResolveRoles computes the role flags for a user.
func (s *AccessService) ResolveRoles(ctx context.Context, user *models.User) (models.RoleSet, error) {
	if s.IsGuest(user.Username) {
		return models.RoleSet{}, nil
	}

	systemRoles, err := s.userRepo.SystemRoles(ctx, user.ID)
	if err != nil {
		return models.RoleSet{}, fmt.Errorf("system roles for user %d: %w", user.ID, err)
	}

	hasTeacherEnrollment, err := s.courseRepo.HasTeacherRole(ctx, user.ID, s.policy.TeacherRoles)
	if err != nil {
		return models.RoleSet{}, err
	}

	return ResolveRoleSet(user.IsSiteAdmin, false, systemRoles, hasTeacherEnrollment, s.policy), nil
}

// StudentAccessAllowed decides whether the user may open the student view.
// With the permissive fallback enabled, any authenticated non-guest user
// with no recognized role at all is let through.
func (s *AccessService) StudentAccessAllowed(roles models.RoleSet, isGuest bool) bool {
	if isGuest {
		return false
	}
	if roles.IsStudent || roles.IsAdmin {
		return true
	}
	if !roles.IsTeacher && s.policy.AllowUnassignedStudents {
		return true
	}
	return false
}

// StudentVisiblePrograms returns the visible programs reachable through the
// student's cohort memberships. Cohort linkage is the sole admission
// mechanism; a student with no cohorts sees no programs.
func (s *AccessService) StudentVisiblePrograms(ctx context.Context, userID int64) ([]*models.Program, error) {
	cohortIDs, err := s.cohortRepo.UserCohortIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cohorts for user %d: %w", userID, err)
	}
	if len(cohortIDs) == 0 {
		return nil, nil
	}

	return s.programRepo.VisibleProgramsByCohorts(ctx, cohortIDs)
}

// TeacherCourses returns the courses the user teaches, excluding the
// platform's system course.
func (s *AccessService) TeacherCourses(ctx context.Context, userID int64) ([]*models.Course, error) {
	return s.courseRepo.TeacherCourses(ctx, userID, s.policy.TeacherRoles)
}
