package controllers

import (
	"context"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/app/services"
)

// AuthUseCase is what the auth endpoints need from the auth service
type AuthUseCase interface {
	Departments() map[string]string
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.Student, error)
	Login(ctx context.Context, studentID, password string) (*models.Student, error)
	AdminLogin(ctx context.Context, req *dto.AdminLoginRequest) (*dto.TokenResponse, error)
}

// FeedbackUseCase is what the dashboard and feedback endpoints need
type FeedbackUseCase interface {
	CohortSubjects(ctx context.Context, id models.Identity) ([]dto.DashboardSubject, error)
	Form(ctx context.Context, id models.Identity, subjectCode string) (*services.FeedbackForm, error)
	Submit(ctx context.Context, id models.Identity, subjectCode string, ratings map[string]string, suggestion string) (*services.SubmissionResult, error)
	ListSubmissions(ctx context.Context, id models.Identity) ([]models.FeedbackRecord, error)
}

// SuggestionUseCase is what the suggestion endpoints need
type SuggestionUseCase interface {
	Submit(ctx context.Context, id models.Identity, message string) (*models.Suggestion, error)
	List(ctx context.Context, id models.Identity) ([]models.Suggestion, error)
}

// AdminUseCase is what the admin API needs
type AdminUseCase interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	BulkLoadSubjects(ctx context.Context, rows []dto.SubjectRequest) (int, error)
	CreateAdmin(ctx context.Context, username, password string) (*models.Admin, error)
	FeedbackSummary(ctx context.Context, subjectCode string) ([]models.RatingSummary, error)
}

var (
	_ AuthUseCase       = (*services.AuthService)(nil)
	_ FeedbackUseCase   = (*services.FeedbackService)(nil)
	_ SuggestionUseCase = (*services.SuggestionService)(nil)
	_ AdminUseCase      = (*services.AdminService)(nil)
)
