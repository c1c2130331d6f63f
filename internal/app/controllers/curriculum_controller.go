package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/app/models/dto"
	"github.com/avdeyev/eduboard/internal/app/services"
	"github.com/avdeyev/eduboard/internal/middleware"
	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
)

func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(name + " must be a positive integer")
	}
	return id, nil
}

func parsePage(raw string) (int, error) {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 0 {
		return 0, apperrors.NewValidationError("page must be a non-negative integer")
	}
	return page, nil
}

// CurriculumController exposes the admin REST surface for programs,
// subjects and institutions. The AJAX dispatcher covers the same mutations
// for the dashboard page; this surface serves API clients.
type CurriculumController struct {
	curriculumService *services.CurriculumService
	accessService     *services.AccessService
	logger            zerolog.Logger
}

// NewCurriculumController creates a new CurriculumController
func NewCurriculumController(
	curriculumService *services.CurriculumService,
	accessService *services.AccessService,
	logger zerolog.Logger,
) *CurriculumController {
	return &CurriculumController{
		curriculumService: curriculumService,
		accessService:     accessService,
		logger:            logger,
	}
}

func (c *CurriculumController) requireAdmin(ctx *gin.Context) (*models.User, bool) {
	user := middleware.CurrentUser(ctx)

	roles, err := c.accessService.ResolveRoles(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	if !roles.IsAdmin {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return nil, false
	}

	return user, true
}

func respond(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, dto.APIResponse{Data: data, Timestamp: time.Now()})
}

// CreateProgram creates a program.
func (c *CurriculumController) CreateProgram(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	program, err := c.curriculumService.CreateProgram(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, program)
}

// UpdateProgram updates a program.
func (c *CurriculumController) UpdateProgram(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	program, err := c.curriculumService.UpdateProgram(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, program)
}

// DeleteProgram deletes a program and its links.
func (c *CurriculumController) DeleteProgram(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.curriculumService.DeleteProgram(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Program deleted"})
}

// ListPrograms lists programs, optionally filtered by a search query.
func (c *CurriculumController) ListPrograms(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	programs, err := c.curriculumService.SearchPrograms(ctx.Request.Context(), ctx.Query("query"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, programs)
}

// GetProgram returns one program with its subject and cohort links.
func (c *CurriculumController) GetProgram(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	subjects, err := c.curriculumService.ProgramSubjects(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	cohorts, err := c.curriculumService.ProgramCohorts(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, gin.H{"subjects": subjects, "cohorts": cohorts})
}

// CreateSubject creates a subject.
func (c *CurriculumController) CreateSubject(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	subject, err := c.curriculumService.CreateSubject(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, subject)
}

// UpdateSubject updates a subject.
func (c *CurriculumController) UpdateSubject(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateSubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	subject, err := c.curriculumService.UpdateSubject(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, subject)
}

// DeleteSubject deletes a subject and its links.
func (c *CurriculumController) DeleteSubject(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.curriculumService.DeleteSubject(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Subject deleted"})
}

// GetSubjectCourses returns a subject's course links in display order.
func (c *CurriculumController) GetSubjectCourses(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	links, err := c.curriculumService.SubjectCourses(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, links)
}

// CreateInstitution creates an institution directory entry.
func (c *CurriculumController) CreateInstitution(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	var req dto.CreateInstitutionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	institution, err := c.curriculumService.CreateInstitution(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, institution)
}

// ListInstitutions returns the institution directory.
func (c *CurriculumController) ListInstitutions(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	institutions, err := c.curriculumService.ListInstitutions(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, institutions)
}

// DeleteInstitution removes a directory entry.
func (c *CurriculumController) DeleteInstitution(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.curriculumService.DeleteInstitution(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "Institution deleted"})
}
