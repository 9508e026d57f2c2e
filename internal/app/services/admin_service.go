package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/auth"
	"github.com/TRK06/feedback-system/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// AdminService covers the administrative operations: the subject
// catalogue, admin accounts and the feedback summary
type AdminService struct {
	subjects    SubjectStore
	admins      AdminStore
	feedback    FeedbackStore
	departments map[string]string
	logger      zerolog.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(
	subjects SubjectStore,
	admins AdminStore,
	feedback FeedbackStore,
	departments map[string]string,
	logger zerolog.Logger,
) *AdminService {
	return &AdminService{
		subjects:    subjects,
		admins:      admins,
		feedback:    feedback,
		departments: departments,
		logger:      logger,
	}
}

// ListSubjects returns the whole subject catalogue
func (s *AdminService) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	return s.subjects.ListAll(ctx)
}

// BulkLoadSubjects replaces the catalogue with rows. Every row is checked
// first; one bad row rejects the whole load.
func (s *AdminService) BulkLoadSubjects(ctx context.Context, rows []dto.SubjectRequest) (int, error) {
	if len(rows) == 0 {
		return 0, apperrors.NewValidationError("No subjects supplied", map[string]string{"subjects": "at least one subject is required"})
	}

	fields := make(map[string]string)
	seen := make(map[string]int, len(rows))
	subjects := make([]models.Subject, 0, len(rows))

	for i, row := range rows {
		row.Code = strings.TrimSpace(row.Code)
		row.Department = strings.TrimSpace(row.Department)
		prefix := fmt.Sprintf("subjects[%d]", i)

		if !validation.IsValidSubjectCode(row.Code) {
			fields[prefix+".subjectCode"] = "must contain only letters, digits and hyphens"
		} else if first, dup := seen[row.Code]; dup {
			fields[prefix+".subjectCode"] = fmt.Sprintf("duplicates subjects[%d]", first)
		} else {
			seen[row.Code] = i
		}
		if strings.TrimSpace(row.Name) == "" {
			fields[prefix+".subjectName"] = "is required"
		}
		if strings.TrimSpace(row.FacultyName) == "" {
			fields[prefix+".facultyName"] = "is required"
		}
		if _, ok := s.departments[row.Department]; !ok {
			fields[prefix+".department"] = "is not a configured department"
		}
		if !validation.IsValidYear(row.Year) {
			fields[prefix+".year"] = fmt.Sprintf("must be between %d and %d", validation.MinYear, validation.MaxYear)
		}
		if !validation.IsValidSemester(row.Semester) {
			fields[prefix+".semester"] = fmt.Sprintf("must be between %d and %d", validation.MinSemester, validation.MaxSemester)
		}

		subjects = append(subjects, row.ToModel())
	}

	if len(fields) > 0 {
		return 0, apperrors.NewValidationError("Subject upload rejected", fields)
	}

	if err := s.subjects.ReplaceAll(ctx, subjects); err != nil {
		return 0, err
	}

	s.logger.Info().Int("count", len(subjects)).Msg("Subject catalogue bulk loaded")
	return len(subjects), nil
}

// CreateAdmin adds an administrator account
func (s *AdminService) CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error) {
	username = strings.TrimSpace(username)
	fields := make(map[string]string)
	if !validation.NewStringValidation(username).WithMinLength(3).WithMaxLength(50).
		WithPattern(validation.CompiledPatterns.StudentID).Validate() {
		fields["username"] = "must be 3 to 50 letters or digits"
	}
	if len(password) < validation.PasswordMinLength {
		fields["password"] = fmt.Sprintf("must be at least %d characters", validation.PasswordMinLength)
	}
	if len(fields) > 0 {
		return nil, apperrors.NewValidationError("Invalid admin account", fields)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, apperrors.NewStoreError("hash password", err)
	}

	admin := &models.Admin{Username: username, PasswordHash: hash}
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrAdminAlreadyExists) {
			return nil, &apperrors.CustomError{
				Err:     apperrors.ErrResourceAlreadyExists,
				Message: "Admin username already exists",
				Cause:   err,
			}
		}
		return nil, err
	}

	s.logger.Info().Str("username", username).Int64("adminID", admin.ID).Msg("Admin created")
	return admin, nil
}

// FeedbackSummary returns average ratings per subject and parameter,
// optionally for a single subject
func (s *AdminService) FeedbackSummary(ctx context.Context, subjectCode string) ([]models.RatingSummary, error) {
	return s.feedback.Summary(ctx, strings.TrimSpace(subjectCode))
}
