package services

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
)

// Validation happens before any repository call, so a service with nil
// repositories is enough to exercise the rejection paths.
func TestChangeSubjectOrderValidation(t *testing.T) {
	svc := NewCurriculumService(nil, nil, nil, nil, nil, testPolicy(), zerolog.Nop())

	tests := []struct {
		name       string
		relationID int64
		siblingID  int64
		direction  string
	}{
		{"unknown direction", 1, 2, "sideways"},
		{"empty direction", 1, 2, ""},
		{"self swap up", 3, 3, "up"},
		{"self swap down", 3, 3, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ChangeSubjectOrder(context.Background(), tt.relationID, tt.siblingID, tt.direction)
			if !errors.Is(err, apperrors.ErrValidationFailed) {
				t.Fatalf("ChangeSubjectOrder(%d, %d, %q) = %v, want validation error",
					tt.relationID, tt.siblingID, tt.direction, err)
			}
		})
	}
}
