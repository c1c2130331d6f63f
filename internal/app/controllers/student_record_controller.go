package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models/dto"
	"github.com/avdeyev/eduboard/internal/app/services"
	"github.com/avdeyev/eduboard/internal/middleware"
	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
)

// StudentRecordController exposes the admin surface for external credits
// and supplementary student info.
type StudentRecordController struct {
	recordService *services.StudentRecordService
	accessService *services.AccessService
	logger        zerolog.Logger
}

// NewStudentRecordController creates a new StudentRecordController
func NewStudentRecordController(
	recordService *services.StudentRecordService,
	accessService *services.AccessService,
	logger zerolog.Logger,
) *StudentRecordController {
	return &StudentRecordController{
		recordService: recordService,
		accessService: accessService,
		logger:        logger,
	}
}

func (c *StudentRecordController) requireAdmin(ctx *gin.Context) (int64, bool) {
	user := middleware.CurrentUser(ctx)

	roles, err := c.accessService.ResolveRoles(ctx.Request.Context(), user)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return 0, false
	}
	if !roles.IsAdmin {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return 0, false
	}

	return user.ID, true
}

// CreateExternalCredit records transferred credit for a student.
func (c *StudentRecordController) CreateExternalCredit(ctx *gin.Context) {
	adminID, ok := c.requireAdmin(ctx)
	if !ok {
		return
	}

	studentID, err := parseIDParam(ctx, "studentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ExternalCreditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	credit, err := c.recordService.CreateExternalCredit(ctx.Request.Context(), studentID, adminID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusCreated, credit)
}

// UpdateExternalCredit replaces a credit's mutable fields.
func (c *StudentRecordController) UpdateExternalCredit(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	creditID, err := parseIDParam(ctx, "creditId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ExternalCreditRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	credit, err := c.recordService.UpdateExternalCredit(ctx.Request.Context(), creditID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, credit)
}

// DeleteExternalCredit removes a credit row.
func (c *StudentRecordController) DeleteExternalCredit(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	creditID, err := parseIDParam(ctx, "creditId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.recordService.DeleteExternalCredit(ctx.Request.Context(), creditID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, dto.SuccessResponse{Message: "External credit deleted"})
}

// ListStudentCredits lists a student's external credits.
func (c *StudentRecordController) ListStudentCredits(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	studentID, err := parseIDParam(ctx, "studentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rows, err := c.recordService.StudentCredits(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, rows)
}

// UpsertStudentInfo creates or replaces a student's supplementary info.
func (c *StudentRecordController) UpsertStudentInfo(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	studentID, err := parseIDParam(ctx, "studentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.StudentInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	info, err := c.recordService.UpsertStudentInfo(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, info)
}

// GetStudentInfo returns a student's supplementary info.
func (c *StudentRecordController) GetStudentInfo(ctx *gin.Context) {
	if _, ok := c.requireAdmin(ctx); !ok {
		return
	}

	studentID, err := parseIDParam(ctx, "studentId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	info, err := c.recordService.StudentInfo(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	respond(ctx, http.StatusOK, info)
}
