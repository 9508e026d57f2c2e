// Package services holds the portal's business rules. Services depend on the
// store interfaces in interfaces.go; the repositories package implements them
// on PostgreSQL.
package services

import (
	"github.com/TRK06/feedback-system/internal/app/repositories"
	"github.com/TRK06/feedback-system/internal/pkg/auth"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
	"github.com/TRK06/feedback-system/internal/pkg/metrics"
)

// Services holds all the service instances
type Services struct {
	AuthService       *AuthService
	FeedbackService   *FeedbackService
	SuggestionService *SuggestionService
	AdminService      *AdminService
}

// NewServices wires the services onto the repositories
func NewServices(repos *repositories.Repositories, jwtService *auth.JWTService, departments map[string]string, m *metrics.Metrics) *Services {
	return &Services{
		AuthService: NewAuthService(
			repos.StudentRepository, repos.AdminRepository, jwtService, departments, m,
			logger.WithComponent("auth_service"),
		),
		FeedbackService: NewFeedbackService(
			repos.SubjectRepository, repos.ParameterRepository, repos.FeedbackRepository, m,
			logger.WithComponent("feedback_service"),
		),
		SuggestionService: NewSuggestionService(
			repos.SuggestionRepository,
			logger.WithComponent("suggestion_service"),
		),
		AdminService: NewAdminService(
			repos.SubjectRepository, repos.AdminRepository, repos.FeedbackRepository, departments,
			logger.WithComponent("admin_service"),
		),
	}
}

var (
	_ StudentStore    = (*repositories.StudentRepository)(nil)
	_ SubjectStore    = (*repositories.SubjectRepository)(nil)
	_ ParameterStore  = (*repositories.ParameterRepository)(nil)
	_ FeedbackStore   = (*repositories.FeedbackRepository)(nil)
	_ SuggestionStore = (*repositories.SuggestionRepository)(nil)
	_ AdminStore      = (*repositories.AdminRepository)(nil)
)
