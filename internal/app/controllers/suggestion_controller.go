package controllers

import (
	"net/http"

	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/app/services"
	"github.com/TRK06/feedback-system/internal/middleware"
	"github.com/TRK06/feedback-system/internal/pkg/flash"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// SuggestionController handles general suggestions
type SuggestionController struct {
	suggestionService SuggestionUseCase
	logger            zerolog.Logger
}

// NewSuggestionController creates a new SuggestionController
func NewSuggestionController(suggestionService SuggestionUseCase, logger zerolog.Logger) *SuggestionController {
	return &SuggestionController{suggestionService: suggestionService, logger: logger}
}

// Submit stores a suggestion not tied to any subject
func (c *SuggestionController) Submit(ctx *gin.Context) {
	id, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	var req dto.SuggestionRequest
	if !middleware.BindForm(ctx, &req) {
		return
	}

	if _, err := c.suggestionService.Submit(ctx.Request.Context(), id, req.Message); err != nil {
		middleware.HandlePortalError(ctx, err, "Could not save your suggestion")
		return
	}

	redirectWithNotice(ctx, c.logger, flash.KindSuccess, services.MsgSuggestionSaved, middleware.DashboardPath)
}

// List returns the student's suggestions
func (c *SuggestionController) List(ctx *gin.Context) {
	id, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	suggestions, err := c.suggestionService.List(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandlePortalError(ctx, err, "Could not load your suggestions")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SuggestionListResponse{Suggestions: suggestions}, ""))
}
