package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/app/models/dto"
	"github.com/avdeyev/eduboard/internal/app/services"
	"github.com/avdeyev/eduboard/internal/middleware"
	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
)

// DashboardController serves the role-routed landing view and the
// action-dispatched AJAX endpoint behind it.
type DashboardController struct {
	dashboardService   *services.DashboardService
	accessService      *services.AccessService
	curriculumService  *services.CurriculumService
	outstandingService *services.OutstandingService
	logger             zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(
	dashboardService *services.DashboardService,
	accessService *services.AccessService,
	curriculumService *services.CurriculumService,
	outstandingService *services.OutstandingService,
	logger zerolog.Logger,
) *DashboardController {
	return &DashboardController{
		dashboardService:   dashboardService,
		accessService:      accessService,
		curriculumService:  curriculumService,
		outstandingService: outstandingService,
		logger:             logger,
	}
}

// Dashboard returns the view the caller's strongest role routes them to.
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	resp, err := c.dashboardService.Dashboard(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp, Timestamp: time.Now()})
}

// ajaxOK writes a flat success payload.
func ajaxOK(ctx *gin.Context, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	ctx.JSON(http.StatusOK, body)
}

// ajaxError maps the error taxonomy onto the flat AJAX shape. Forbidden
// terminates with 403 and a bare marker; everything else is surfaced as a
// 200 with success:false so the client can display the message.
func ajaxError(ctx *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrPermissionDenied) {
		ctx.JSON(http.StatusForbidden, gin.H{"success": false, "error": "forbidden"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
}

// requireAdmin resolves the caller's roles and rejects non-admins.
func (c *DashboardController) requireAdmin(ctx *gin.Context, user *models.User) bool {
	roles, err := c.accessService.ResolveRoles(ctx.Request.Context(), user)
	if err != nil {
		ajaxError(ctx, err)
		return false
	}
	if !roles.IsAdmin {
		ajaxError(ctx, apperrors.ErrPermissionDenied)
		return false
	}
	return true
}

// Ajax dispatches a single action-keyed request.
func (c *DashboardController) Ajax(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	var req dto.AjaxRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ajaxError(ctx, apperrors.NewValidationError("action is required"))
		return
	}

	switch req.Action {
	case "getteachercourses":
		c.getTeacherCourses(ctx, user)
	case "getcategorycourses":
		c.getCategoryCourses(ctx, user, &req)
	case "getcategorystudents":
		c.getCategoryUsers(ctx, user, &req, "students")
	case "getcategoryteachers":
		c.getCategoryUsers(ctx, user, &req, "teachers")
	case "getcourses":
		c.getCourses(ctx, user, &req)
	case "attachcoursetosubject":
		c.attachCourseToSubject(ctx, user, &req)
	case "detachcoursefromsubject":
		c.detachCourseFromSubject(ctx, user, &req)
	case "getcohorts":
		c.getCohorts(ctx, user, &req)
	case "attachcohorttoprogram":
		c.attachCohortToProgram(ctx, user, &req)
	case "getprogramcohorts":
		c.getProgramCohorts(ctx, user, &req)
	case "detachcohortfromprogram":
		c.detachCohortFromProgram(ctx, user, &req)
	case "getsubjects":
		c.getSubjects(ctx, user, &req)
	case "getprograms":
		c.getPrograms(ctx, user, &req)
	case "attachsubjecttoprogram":
		c.attachSubjectToProgram(ctx, user, &req)
	case "detachsubjectfromprogram":
		c.detachSubjectFromProgram(ctx, user, &req)
	case "deletesubject":
		c.deleteSubject(ctx, user, &req)
	case "deleteprogram":
		c.deleteProgram(ctx, user, &req)
	case "changesubjectorder":
		c.changeSubjectOrder(ctx, user, &req)
	case "deleteinstitution":
		c.deleteInstitution(ctx, user, &req)
	case "getprogramsubjectsforstudent":
		c.getProgramSubjectsForStudent(ctx, user, &req)
	default:
		ajaxError(ctx, apperrors.NewValidationError("unrecognized action"))
	}
}

func (c *DashboardController) getTeacherCourses(ctx *gin.Context, user *models.User) {
	roles, err := c.accessService.ResolveRoles(ctx.Request.Context(), user)
	if err != nil {
		ajaxError(ctx, err)
		return
	}
	if !roles.IsTeacher && !roles.IsAdmin {
		ajaxError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	courses, err := c.accessService.TeacherCourses(ctx.Request.Context(), user.ID)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"courses": courses})
}

func (c *DashboardController) getCategoryCourses(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.CategoryID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("categoryid is required"))
		return
	}

	courses, err := c.dashboardService.CategoryCourses(ctx.Request.Context(), req.CategoryID)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"courses": courses})
}

func (c *DashboardController) getCategoryUsers(ctx *gin.Context, user *models.User, req *dto.AjaxRequest, kind string) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.CategoryID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("categoryid is required"))
		return
	}

	var users []*models.User
	var err error
	if kind == "students" {
		users, err = c.dashboardService.CategoryStudents(ctx.Request.Context(), req.CategoryID)
	} else {
		users, err = c.dashboardService.CategoryTeachers(ctx.Request.Context(), req.CategoryID)
	}
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{kind: users})
}

func (c *DashboardController) getCourses(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}

	courses, err := c.curriculumService.SearchCourses(ctx.Request.Context(), req.Query, req.SubjectID)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"courses": courses})
}

func (c *DashboardController) attachCourseToSubject(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.SubjectID == 0 || req.CourseID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("subjectid and courseid are required"))
		return
	}

	link, err := c.curriculumService.AttachCourseToSubject(ctx.Request.Context(), req.SubjectID, req.CourseID)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"link": link})
}

func (c *DashboardController) detachCourseFromSubject(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.SubjectID == 0 || req.CourseID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("subjectid and courseid are required"))
		return
	}

	if err := c.curriculumService.DetachCourseFromSubject(ctx.Request.Context(), req.SubjectID, req.CourseID); err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{})
}

func (c *DashboardController) getCohorts(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}

	cohorts, err := c.curriculumService.SearchCohorts(ctx.Request.Context(), req.Query, req.ProgramID)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"cohorts": cohorts})
}

func (c *DashboardController) attachCohortToProgram(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.ProgramID == 0 || req.CohortID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("programid and cohortid are required"))
		return
	}

	link, err := c.curriculumService.AttachCohortToProgram(ctx.Request.Context(), req.ProgramID, req.CohortID)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"link": link})
}

func (c *DashboardController) getProgramCohorts(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.ProgramID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("programid is required"))
		return
	}

	links, err := c.curriculumService.ProgramCohorts(ctx.Request.Context(), req.ProgramID)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"cohorts": links})
}

func (c *DashboardController) detachCohortFromProgram(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.ProgramID == 0 || req.CohortID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("programid and cohortid are required"))
		return
	}

	if err := c.curriculumService.DetachCohortFromProgram(ctx.Request.Context(), req.ProgramID, req.CohortID); err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{})
}

func (c *DashboardController) getSubjects(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}

	subjects, err := c.curriculumService.SearchSubjects(ctx.Request.Context(), req.Query)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"subjects": subjects})
}

func (c *DashboardController) getPrograms(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}

	programs, err := c.curriculumService.SearchPrograms(ctx.Request.Context(), req.Query)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"programs": programs})
}

func (c *DashboardController) attachSubjectToProgram(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.ProgramID == 0 || req.SubjectID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("programid and subjectid are required"))
		return
	}

	link, err := c.curriculumService.AttachSubjectToProgram(ctx.Request.Context(), req.ProgramID, req.SubjectID)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"link": link})
}

func (c *DashboardController) detachSubjectFromProgram(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.ProgramID == 0 || req.SubjectID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("programid and subjectid are required"))
		return
	}

	if err := c.curriculumService.DetachSubjectFromProgram(ctx.Request.Context(), req.ProgramID, req.SubjectID); err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{})
}

func (c *DashboardController) deleteSubject(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.SubjectID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("subjectid is required"))
		return
	}

	if err := c.curriculumService.DeleteSubject(ctx.Request.Context(), req.SubjectID); err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{})
}

func (c *DashboardController) deleteProgram(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.ProgramID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("programid is required"))
		return
	}

	if err := c.curriculumService.DeleteProgram(ctx.Request.Context(), req.ProgramID); err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{})
}

func (c *DashboardController) changeSubjectOrder(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.RelationID == 0 || req.SiblingID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("relationid and siblingid are required"))
		return
	}

	if err := c.curriculumService.ChangeSubjectOrder(ctx.Request.Context(), req.RelationID, req.SiblingID, req.Direction); err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{})
}

func (c *DashboardController) deleteInstitution(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if !c.requireAdmin(ctx, user) {
		return
	}
	if req.InstitutionID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("institutionid is required"))
		return
	}

	if err := c.curriculumService.DeleteInstitution(ctx.Request.Context(), req.InstitutionID); err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{})
}

func (c *DashboardController) getProgramSubjectsForStudent(ctx *gin.Context, user *models.User, req *dto.AjaxRequest) {
	if req.ProgramID == 0 {
		ajaxError(ctx, apperrors.NewValidationError("programid is required"))
		return
	}

	progress, err := c.dashboardService.ProgramSubjectsForStudent(ctx.Request.Context(), user, req.ProgramID)
	if err != nil {
		ajaxError(ctx, err)
		return
	}

	ajaxOK(ctx, gin.H{"program": progress.Program, "subjects": progress.Subjects})
}

// OutstandingWork serves one page of a teacher's outstanding-work list.
// The kind route parameter selects submissions, quizzes or forum posts.
func (c *DashboardController) OutstandingWork(ctx *gin.Context) {
	user := middleware.CurrentUser(ctx)

	roles, err := c.accessService.ResolveRoles(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	if !roles.IsTeacher && !roles.IsAdmin {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	courses, err := c.accessService.TeacherCourses(ctx.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	courseIDs := make([]int64, 0, len(courses))
	for _, course := range courses {
		courseIDs = append(courseIDs, course.ID)
	}

	page := 0
	if raw := ctx.Query("page"); raw != "" {
		if parsed, err := parsePage(raw); err == nil {
			page = parsed
		}
	}

	var list *dto.PagedList
	switch ctx.Param("kind") {
	case "submissions":
		list, err = c.outstandingService.UngradedSubmissionsPage(ctx.Request.Context(), courseIDs, page)
	case "quizzes":
		list, err = c.outstandingService.FailedQuizAttemptsPage(ctx.Request.Context(), courseIDs, page)
	case "forumposts":
		list, err = c.outstandingService.UnansweredForumPostsPage(ctx.Request.Context(), courseIDs, page)
	default:
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("unrecognized outstanding-work kind"))
		return
	}
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: list, Timestamp: time.Now()})
}
