package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/auth"
	"github.com/TRK06/feedback-system/internal/pkg/metrics"
	"github.com/TRK06/feedback-system/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// User-facing authentication messages
const (
	MsgRegistered         = "Registration successful! You can now login."
	MsgInvalidLogin       = "Invalid student ID or password"
	MsgInvalidAdminLogin  = "Invalid username or password"
	MsgRegistrationFailed = "Registration failed. Please try again."
)

// AuthService handles student registration, student login and admin login
type AuthService struct {
	students    StudentStore
	admins      AdminStore
	jwtService  *auth.JWTService
	departments map[string]string
	metrics     *metrics.Metrics
	logger      zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	students StudentStore,
	admins AdminStore,
	jwtService *auth.JWTService,
	departments map[string]string,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		students:    students,
		admins:      admins,
		jwtService:  jwtService,
		departments: departments,
		metrics:     m,
		logger:      logger,
	}
}

// Departments returns the configured department code to name map
func (s *AuthService) Departments() map[string]string {
	return s.departments
}

// validateRegistration checks every field and collects all problems at once
func (s *AuthService) validateRegistration(req *dto.RegisterRequest) (*models.Student, map[string]string) {
	fields := make(map[string]string)

	studentID := strings.TrimSpace(req.StudentID)
	switch {
	case studentID == "":
		fields["student_id"] = "Student ID is required"
	case !validation.IsValidStudentID(studentID):
		fields["student_id"] = "Student ID can only contain letters and numbers"
	}

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		fields["name"] = "Name is required"
	case !validation.IsValidName(name):
		fields["name"] = "Name can only contain letters, spaces, hyphens and apostrophes"
	}

	department := strings.TrimSpace(req.Department)
	if _, ok := s.departments[department]; !ok {
		fields["department"] = "Please select a valid department"
	}

	year, err := strconv.Atoi(strings.TrimSpace(req.Year))
	if err != nil || !validation.IsValidYear(year) {
		fields["year"] = "Please select a valid year"
	}

	semester, err := strconv.Atoi(strings.TrimSpace(req.Semester))
	if err != nil || !validation.IsValidSemester(semester) {
		fields["semester"] = "Please select a valid semester"
	}

	if len(req.Password) < validation.PasswordMinLength {
		fields["password"] = fmt.Sprintf("Password must be at least %d characters long", validation.PasswordMinLength)
	}
	if req.Password != req.ConfirmPassword {
		fields["confirm_password"] = "Passwords do not match"
	}

	if len(fields) > 0 {
		return nil, fields
	}

	return &models.Student{
		StudentID:  studentID,
		Name:       name,
		Department: department,
		Year:       year,
		Semester:   semester,
	}, nil
}

// Register validates the form and creates the student account
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.Student, error) {
	student, fields := s.validateRegistration(req)
	if fields != nil {
		return nil, apperrors.NewValidationError("Please correct the highlighted fields", fields)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to hash password")
		return nil, apperrors.NewStoreError("hash password", err)
	}
	student.PasswordHash = hash

	if err := s.students.Create(ctx, student); err != nil {
		if errors.Is(err, apperrors.ErrStudentIDAlreadyExists) {
			return nil, apperrors.NewValidationError("Please correct the highlighted fields",
				map[string]string{"student_id": "Student ID already exists"})
		}
		return nil, err
	}

	s.logger.Info().
		Str("studentID", student.StudentID).
		Str("department", student.Department).
		Int("year", student.Year).
		Int("semester", student.Semester).
		Msg("Student registered")
	return student, nil
}

// Login checks a student's credentials
func (s *AuthService) Login(ctx context.Context, studentID, password string) (*models.Student, error) {
	studentID = strings.TrimSpace(studentID)
	invalid := &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: MsgInvalidLogin}

	student, err := s.students.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			s.metrics.ObserveLogin("student", false)
			s.logger.Warn().Str("studentID", studentID).Msg("Login attempt for unknown student")
			return nil, invalid
		}
		return nil, err
	}

	if !auth.CheckPassword(student.PasswordHash, password) {
		s.metrics.ObserveLogin("student", false)
		s.logger.Warn().Str("studentID", studentID).Msg("Login attempt with wrong password")
		return nil, invalid
	}

	s.metrics.ObserveLogin("student", true)
	s.logger.Info().Str("studentID", studentID).Msg("Student logged in")
	return student, nil
}

// ResolveIdentity reloads the student behind a session. A student that no
// longer exists yields ErrUnauthenticated.
func (s *AuthService) ResolveIdentity(ctx context.Context, studentID string) (models.Identity, error) {
	if studentID == "" {
		return models.Identity{}, apperrors.ErrUnauthenticated
	}
	student, err := s.students.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return models.Identity{}, apperrors.ErrUnauthenticated
		}
		return models.Identity{}, err
	}
	return student.Identity(), nil
}

// AdminLogin checks admin credentials and issues a bearer token
func (s *AuthService) AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error) {
	invalid := &apperrors.CustomError{Err: apperrors.ErrInvalidCredentials, Message: MsgInvalidAdminLogin}

	admin, err := s.admins.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, apperrors.ErrAdminNotFound) {
			s.metrics.ObserveLogin("admin", false)
			return nil, invalid
		}
		return nil, err
	}

	if !auth.CheckPassword(admin.PasswordHash, req.Password) {
		s.metrics.ObserveLogin("admin", false)
		s.logger.Warn().Str("username", admin.Username).Msg("Admin login with wrong password")
		return nil, invalid
	}

	token, expiresIn, err := s.jwtService.GenerateAccessToken(admin.ID, admin.Username)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to sign admin token")
		return nil, apperrors.NewStoreError("sign token", err)
	}

	s.metrics.ObserveLogin("admin", true)
	s.logger.Info().Str("username", admin.Username).Msg("Admin logged in")
	return &dto.TokenResponse{AccessToken: token, TokenType: "Bearer", ExpiresIn: expiresIn}, nil
}
