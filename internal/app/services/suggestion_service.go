package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// User-facing suggestion messages
const (
	MsgSuggestionEmpty = "Please enter your suggestion/feedback."
	MsgSuggestionSaved = "Thank you! Your suggestion has been submitted."
)

// SuggestionService records general suggestions not tied to a subject
type SuggestionService struct {
	suggestions SuggestionStore
	logger      zerolog.Logger
}

// NewSuggestionService creates a new SuggestionService
func NewSuggestionService(suggestions SuggestionStore, logger zerolog.Logger) *SuggestionService {
	return &SuggestionService{suggestions: suggestions, logger: logger}
}

// Submit stores a general suggestion for the student
func (s *SuggestionService) Submit(ctx context.Context, id models.Identity, message string) (*models.Suggestion, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, apperrors.NewValidationError(MsgSuggestionEmpty, map[string]string{"suggestion": MsgSuggestionEmpty})
	}
	if len(message) > validation.SuggestionMaxLength {
		msg := fmt.Sprintf("Suggestion must be at most %d characters", validation.SuggestionMaxLength)
		return nil, apperrors.NewValidationError(msg, map[string]string{"suggestion": msg})
	}

	sg := &models.Suggestion{StudentID: id.StudentID, Message: message}
	if err := s.suggestions.Create(ctx, sg); err != nil {
		return nil, err
	}

	s.logger.Info().Str("studentID", id.StudentID).Int64("suggestionID", sg.ID).Msg("Suggestion submitted")
	return sg, nil
}

// List returns the student's own suggestions, newest first
func (s *SuggestionService) List(ctx context.Context, id models.Identity) ([]models.Suggestion, error) {
	return s.suggestions.ListByStudent(ctx, id.StudentID)
}
