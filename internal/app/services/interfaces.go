package services

import (
	"context"

	"github.com/TRK06/feedback-system/internal/app/models"
)

// StudentStore is the student persistence used by the services
type StudentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByStudentID(ctx context.Context, studentID string) (*models.Student, error)
}

// SubjectStore is the subject catalogue persistence
type SubjectStore interface {
	GetForCohort(ctx context.Context, code string, cohort models.Cohort) (*models.Subject, error)
	ListForCohort(ctx context.Context, cohort models.Cohort) ([]models.Subject, error)
	ListAll(ctx context.Context) ([]models.Subject, error)
	ReplaceAll(ctx context.Context, subjects []models.Subject) error
}

// ParameterStore reads the rating criteria
type ParameterStore interface {
	ListAll(ctx context.Context) ([]models.Parameter, error)
}

// FeedbackStore persists ratings. Submit must be atomic and must refuse a
// second submission for the same student and subject.
type FeedbackStore interface {
	HasSubmitted(ctx context.Context, studentID, subjectCode string) (bool, error)
	SubmittedSubjectCodes(ctx context.Context, studentID string) (map[string]bool, error)
	Submit(ctx context.Context, sub *models.Submission) error
	ListByStudent(ctx context.Context, studentID string) ([]models.FeedbackRecord, error)
	Summary(ctx context.Context, subjectCode string) ([]models.RatingSummary, error)
}

// SuggestionStore persists free-text suggestions
type SuggestionStore interface {
	Create(ctx context.Context, s *models.Suggestion) error
	ListByStudent(ctx context.Context, studentID string) ([]models.Suggestion, error)
}

// AdminStore persists administrator accounts
type AdminStore interface {
	Create(ctx context.Context, admin *models.Admin) error
	GetByUsername(ctx context.Context, username string) (*models.Admin, error)
	Count(ctx context.Context) (int64, error)
}
