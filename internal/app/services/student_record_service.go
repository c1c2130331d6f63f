package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/avdeyev/eduboard/internal/app/models"
	"github.com/avdeyev/eduboard/internal/app/models/dto"
	"github.com/avdeyev/eduboard/internal/app/repositories"
	"github.com/avdeyev/eduboard/internal/pkg/apperrors"
)

// StudentRecordService manages the plugin-owned per-student data: external
// subject credits and supplementary display info.
type StudentRecordService struct {
	externalCreditRepo *repositories.ExternalCreditRepository
	studentInfoRepo    *repositories.StudentInfoRepository
	subjectRepo        *repositories.SubjectRepository
	userRepo           *repositories.UserRepository
	logger             zerolog.Logger
}

// NewStudentRecordService creates a new StudentRecordService
func NewStudentRecordService(
	externalCreditRepo *repositories.ExternalCreditRepository,
	studentInfoRepo *repositories.StudentInfoRepository,
	subjectRepo *repositories.SubjectRepository,
	userRepo *repositories.UserRepository,
	logger zerolog.Logger,
) *StudentRecordService {
	return &StudentRecordService{
		externalCreditRepo: externalCreditRepo,
		studentInfoRepo:    studentInfoRepo,
		subjectRepo:        subjectRepo,
		userRepo:           userRepo,
		logger:             logger,
	}
}

func parseCreditedDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, apperrors.NewValidationError("creditedDate must be YYYY-MM-DD")
	}
	return &t, nil
}

// CreateExternalCredit records transferred credit for a student. At most
// one credit per (student, subject); duplicates are a Conflict.
func (s *StudentRecordService) CreateExternalCredit(ctx context.Context, studentID, createdBy int64, req *dto.ExternalCreditRequest) (*models.StudentExternalCredit, error) {
	if _, err := s.userRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	if _, err := s.subjectRepo.GetByID(ctx, req.SubjectID); err != nil {
		return nil, err
	}

	creditedDate, err := parseCreditedDate(req.CreditedDate)
	if err != nil {
		return nil, err
	}

	credit := &models.StudentExternalCredit{
		StudentID:       studentID,
		SubjectID:       req.SubjectID,
		Grade:           req.Grade,
		GradePercent:    req.GradePercent,
		InstitutionName: req.InstitutionName,
		CreditedDate:    creditedDate,
		DocumentNumber:  req.DocumentNumber,
		Notes:           req.Notes,
		CreatedBy:       createdBy,
	}

	if err := s.externalCreditRepo.Create(ctx, credit); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("studentId", studentID).
		Int64("subjectId", req.SubjectID).
		Msg("External credit recorded")
	return credit, nil
}

// UpdateExternalCredit replaces the mutable fields of a credit.
func (s *StudentRecordService) UpdateExternalCredit(ctx context.Context, creditID int64, req *dto.ExternalCreditRequest) (*models.StudentExternalCredit, error) {
	credit, err := s.externalCreditRepo.GetByID(ctx, creditID)
	if err != nil {
		return nil, err
	}

	creditedDate, err := parseCreditedDate(req.CreditedDate)
	if err != nil {
		return nil, err
	}

	credit.Grade = req.Grade
	credit.GradePercent = req.GradePercent
	credit.InstitutionName = req.InstitutionName
	credit.CreditedDate = creditedDate
	credit.DocumentNumber = req.DocumentNumber
	credit.Notes = req.Notes

	if err := s.externalCreditRepo.Update(ctx, credit); err != nil {
		return nil, err
	}

	return credit, nil
}

// DeleteExternalCredit removes a credit row.
func (s *StudentRecordService) DeleteExternalCredit(ctx context.Context, creditID int64) error {
	return s.externalCreditRepo.Delete(ctx, creditID)
}

// StudentCredits lists a student's external credits with subject names.
func (s *StudentRecordService) StudentCredits(ctx context.Context, studentID int64) ([]dto.ExternalCreditRow, error) {
	credits, err := s.externalCreditRepo.GetForStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	rows := make([]dto.ExternalCreditRow, 0, len(credits))
	for _, credit := range credits {
		name := ""
		if subject, err := s.subjectRepo.GetByID(ctx, credit.SubjectID); err == nil {
			name = subject.Name
		}
		rows = append(rows, dto.ExternalCreditRow{Credit: credit, SubjectName: name})
	}

	return rows, nil
}

// UpsertStudentInfo creates or replaces the supplementary info of a user.
func (s *StudentRecordService) UpsertStudentInfo(ctx context.Context, userID int64, req *dto.StudentInfoRequest) (*models.StudentInfo, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	info := &models.StudentInfo{
		UserID:         userID,
		CohortLabel:    req.CohortLabel,
		EnrollmentYear: req.EnrollmentYear,
		Address:        req.Address,
		City:           req.City,
		Snils:          req.Snils,
	}

	if err := s.studentInfoRepo.Upsert(ctx, info); err != nil {
		return nil, err
	}

	return info, nil
}

// StudentInfo returns the supplementary info of a user, or NotFound.
func (s *StudentRecordService) StudentInfo(ctx context.Context, userID int64) (*models.StudentInfo, error) {
	return s.studentInfoRepo.GetByUserID(ctx, userID)
}
