package controllers

import (
	"net/http"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/app/services"
	"github.com/TRK06/feedback-system/internal/middleware"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/flash"
	"github.com/TRK06/feedback-system/internal/pkg/validation"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// FeedbackController serves the dashboard and the per-subject feedback flow
type FeedbackController struct {
	feedbackService FeedbackUseCase
	departments     map[string]string
	logger          zerolog.Logger
}

// NewFeedbackController creates a new FeedbackController
func NewFeedbackController(feedbackService FeedbackUseCase, departments map[string]string, logger zerolog.Logger) *FeedbackController {
	return &FeedbackController{
		feedbackService: feedbackService,
		departments:     departments,
		logger:          logger,
	}
}

// requireIdentity returns the student set by the session gate
func requireIdentity(ctx *gin.Context) (models.Identity, bool) {
	id, ok := middleware.GetIdentity(ctx)
	if !ok {
		middleware.HandlePortalError(ctx, apperrors.ErrUnauthenticated, "")
	}
	return id, ok
}

// Dashboard lists the cohort's subjects with their submission state and
// consumes the pending notice
func (c *FeedbackController) Dashboard(ctx *gin.Context) {
	id, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	subjects, err := c.feedbackService.CohortSubjects(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandlePortalError(ctx, err, "Could not load your subjects")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.DashboardResponse{
		Student:   dto.NewStudentResponse(id, c.departments[id.Department]),
		Subjects:  subjects,
		Notice:    popNotice(ctx, c.logger),
		CSRFToken: middleware.CSRFToken(ctx),
	}, ""))
}

// FeedbackForm returns the subject with its rating parameters grouped by
// category. Ineligible requests go back to the dashboard with a notice.
func (c *FeedbackController) FeedbackForm(ctx *gin.Context) {
	id, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	form, err := c.feedbackService.Form(ctx.Request.Context(), id, ctx.Param("subjectCode"))
	if err != nil {
		middleware.HandlePortalError(ctx, err, "Could not load the feedback form")
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FeedbackFormResponse{
		Subject:   form.Subject,
		Groups:    form.Groups,
		MinRating: validation.MinRating,
		MaxRating: validation.MaxRating,
		CSRFToken: middleware.CSRFToken(ctx),
	}, ""))
}

// SubmitFeedback records the ratings posted as ratings[<parameter id>] and
// the optional suggestion field
func (c *FeedbackController) SubmitFeedback(ctx *gin.Context) {
	id, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	ratings := ctx.PostFormMap("ratings")
	suggestion := ctx.PostForm("suggestion")

	result, err := c.feedbackService.Submit(ctx.Request.Context(), id, ctx.Param("subjectCode"), ratings, suggestion)
	if err != nil {
		middleware.HandlePortalError(ctx, err, services.MsgSubmitFailed)
		return
	}

	c.logger.Debug().Str("studentID", id.StudentID).Str("subjectCode", result.SubjectCode).
		Int("ratings", result.Ratings).Msg("Feedback accepted")
	redirectWithNotice(ctx, c.logger, flash.KindSuccess, services.MsgSubmitted, middleware.DashboardPath)
}

// History lists the student's submitted ratings, newest first
func (c *FeedbackController) History(ctx *gin.Context) {
	id, ok := requireIdentity(ctx)
	if !ok {
		return
	}

	records, err := c.feedbackService.ListSubmissions(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandlePortalError(ctx, err, "Could not load your feedback")
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FeedbackHistoryResponse{Records: records}, ""))
}
