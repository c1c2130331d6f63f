package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
)

func TestHandleAPIErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"program not found", apperrors.ErrProgramNotFound, http.StatusNotFound},
		{"subject not found", apperrors.ErrSubjectNotFound, http.StatusNotFound},
		{"course not found", apperrors.ErrCourseNotFound, http.StatusNotFound},
		{"cohort not found", apperrors.ErrCohortNotFound, http.StatusNotFound},
		{"institution not found", apperrors.ErrInstitutionNotFound, http.StatusNotFound},
		{"credit not found", apperrors.ErrExternalCreditNotFound, http.StatusNotFound},
		{"student info not found", apperrors.ErrStudentInfoNotFound, http.StatusNotFound},
		{"not attached", apperrors.ErrNotAttached, http.StatusNotFound},
		{"duplicate credit", apperrors.ErrExternalCreditExists, http.StatusConflict},
		{"already attached", apperrors.ErrAlreadyAttached, http.StatusConflict},
		{"cross-parent reorder", apperrors.ErrOrderScopeMismatch, http.StatusBadRequest},
		{"validation failure", apperrors.NewValidationError("bad input"), http.StatusBadRequest},
		{"permission denied", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"invalid credentials", apperrors.ErrInvalidCredentials, http.StatusUnauthorized},
		{"wrapped sentinel", fmt.Errorf("loading program: %w", apperrors.ErrProgramNotFound), http.StatusNotFound},
		{"unclassified error", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			HandleAPIError(c, tt.err)

			if w.Code != tt.status {
				t.Errorf("HandleAPIError(%v) wrote status %d, want %d", tt.err, w.Code, tt.status)
			}
		})
	}
}
