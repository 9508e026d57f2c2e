// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"

	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/app/services"
	"github.com/TRK06/feedback-system/internal/middleware"
	"github.com/TRK06/feedback-system/internal/pkg/flash"
	"github.com/TRK06/feedback-system/internal/pkg/validation"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AuthController handles student registration, login and logout
type AuthController struct {
	authService AuthUseCase
	logger      zerolog.Logger
}

// NewAuthController creates a new AuthController
func NewAuthController(authService AuthUseCase, logger zerolog.Logger) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

func intRange(min, max int) []int {
	out := make([]int, 0, max-min+1)
	for i := min; i <= max; i++ {
		out = append(out, i)
	}
	return out
}

// popNotice takes the pending notice out of the session
func popNotice(ctx *gin.Context, logger zerolog.Logger) *flash.Notice {
	session := sessions.Default(ctx)
	notice := flash.Pop(session)
	if notice != nil {
		middleware.SaveSession(session, logger)
	}
	return notice
}

// redirectWithNotice stores a one-shot notice and sends the browser on
func redirectWithNotice(ctx *gin.Context, logger zerolog.Logger, kind flash.Kind, message, location string) {
	session := sessions.Default(ctx)
	flash.Put(session, kind, message)
	middleware.SaveSession(session, logger)
	ctx.Redirect(http.StatusSeeOther, location)
}

// RegisterForm lists the departments, years and semesters to choose from
func (c *AuthController) RegisterForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.RegisterFormResponse{
		Departments: c.authService.Departments(),
		Years:       intRange(validation.MinYear, validation.MaxYear),
		Semesters:   intRange(validation.MinSemester, validation.MaxSemester),
		CSRFToken:   middleware.CSRFToken(ctx),
		Notice:      popNotice(ctx, c.logger),
	}, ""))
}

// Register creates the student account and sends the student to the login page
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if !middleware.BindForm(ctx, &req) {
		return
	}

	if _, err := c.authService.Register(ctx.Request.Context(), &req); err != nil {
		middleware.HandlePortalError(ctx, err, services.MsgRegistrationFailed)
		return
	}

	redirectWithNotice(ctx, c.logger, flash.KindSuccess, services.MsgRegistered, middleware.LoginPath)
}

// LoginForm returns the anti-forgery token and any pending notice
func (c *AuthController) LoginForm(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.LoginFormResponse{
		CSRFToken: middleware.CSRFToken(ctx),
		Notice:    popNotice(ctx, c.logger),
	}, ""))
}

// Login checks the credentials and starts the student session
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindForm(ctx, &req) {
		return
	}

	student, err := c.authService.Login(ctx.Request.Context(), req.StudentID, req.Password)
	if err != nil {
		middleware.HandlePortalError(ctx, err, services.MsgInvalidLogin)
		return
	}

	if err := middleware.StartSession(ctx, student.StudentID); err != nil {
		c.logger.Error().Err(err).Str("studentID", student.StudentID).Msg("Failed to start session")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Redirect(http.StatusSeeOther, middleware.DashboardPath)
}

// Logout ends the student session
func (c *AuthController) Logout(ctx *gin.Context) {
	if id, ok := middleware.GetIdentity(ctx); ok {
		c.logger.Info().Str("studentID", id.StudentID).Msg("Student logged out")
	}
	if err := middleware.EndSession(ctx); err != nil {
		c.logger.Error().Err(err).Msg("Failed to clear session")
	}
	ctx.Redirect(http.StatusSeeOther, middleware.LoginPath)
}
