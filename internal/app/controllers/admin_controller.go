package controllers

import (
	"net/http"
	"strings"

	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminController exposes the administrative JSON API
type AdminController struct {
	authService  AuthUseCase
	adminService AdminUseCase
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(authService AuthUseCase, adminService AdminUseCase, logger zerolog.Logger) *AdminController {
	return &AdminController{
		authService:  authService,
		adminService: adminService,
		logger:       logger,
	}
}

// Login exchanges admin credentials for a bearer token
func (c *AdminController) Login(ctx *gin.Context) {
	var req dto.AdminLoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	token, err := c.authService.AdminLogin(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(token, "Login successful"))
}

// ListSubjects returns the whole subject catalogue
func (c *AdminController) ListSubjects(ctx *gin.Context) {
	subjects, err := c.adminService.ListSubjects(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.SubjectListResponse{Subjects: subjects}, ""))
}

// ReplaceSubjects replaces the catalogue with the uploaded rows
func (c *AdminController) ReplaceSubjects(ctx *gin.Context) {
	var req dto.BulkLoadSubjectsRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	loaded, err := c.adminService.BulkLoadSubjects(ctx.Request.Context(), req.Subjects)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("admin", middleware.AdminUsername(ctx)).Int("loaded", loaded).Msg("Subject catalogue replaced")
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.BulkLoadSubjectsResponse{Loaded: loaded}, "Subjects loaded"))
}

// CreateAdmin adds another administrator
func (c *AdminController) CreateAdmin(ctx *gin.Context) {
	var req dto.CreateAdminRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	admin, err := c.adminService.CreateAdmin(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("admin", middleware.AdminUsername(ctx)).Str("created", admin.Username).Msg("Admin account created")
	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.AdminResponse{ID: admin.ID, Username: admin.Username}, "Admin created"))
}

// FeedbackSummary returns average ratings, optionally for ?subjectCode=
func (c *AdminController) FeedbackSummary(ctx *gin.Context) {
	summary, err := c.adminService.FeedbackSummary(ctx.Request.Context(), strings.TrimSpace(ctx.Query("subjectCode")))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.FeedbackSummaryResponse{Summary: summary}, ""))
}
