package dto

import (
	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/pkg/flash"
)

// DashboardSubject is one cohort subject with its submission state
type DashboardSubject struct {
	models.Subject
	Submitted bool `json:"submitted"`
}

// DashboardResponse is the student's landing view
type DashboardResponse struct {
	Student   StudentResponse    `json:"student"`
	Subjects  []DashboardSubject `json:"subjects"`
	Notice    *flash.Notice      `json:"notice,omitempty"`
	CSRFToken string             `json:"csrfToken"`
}

// FeedbackFormResponse is the data behind the rating form for one subject
type FeedbackFormResponse struct {
	Subject   models.Subject          `json:"subject"`
	Groups    []models.ParameterGroup `json:"groups"`
	MinRating int                     `json:"minRating" example:"1"`
	MaxRating int                     `json:"maxRating" example:"5"`
	CSRFToken string                  `json:"csrfToken"`
}

// FeedbackHistoryResponse lists the student's previous ratings
type FeedbackHistoryResponse struct {
	Records []models.FeedbackRecord `json:"records"`
}

// SuggestionRequest is the general suggestion form
type SuggestionRequest struct {
	Message string `form:"suggestion" json:"suggestion"`
}

// SuggestionListResponse lists the student's suggestions
type SuggestionListResponse struct {
	Suggestions []models.Suggestion `json:"suggestions"`
}
