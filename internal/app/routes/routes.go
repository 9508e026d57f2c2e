package routes

import (
	"net/http"

	"github.com/TRK06/feedback-system/internal/app/controllers"
	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/middleware"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Controllers groups the handlers mounted by SetupRouter
type Controllers struct {
	Auth       *controllers.AuthController
	Feedback   *controllers.FeedbackController
	Suggestion *controllers.SuggestionController
	Admin      *controllers.AdminController
	Health     *controllers.HealthController
}

// RouterOptions carries the middleware and handlers that are not controllers
type RouterOptions struct {
	SessionName    string
	SessionStore   sessions.Store
	SessionGate    *middleware.SessionGate
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        http.Handler
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, opts RouterOptions) {
	router.GET("/healthz", ctrl.Health.Health)
	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	// --- Student portal: cookie session + anti-forgery token ---
	portal := router.Group("")
	portal.Use(sessions.Sessions(opts.SessionName, opts.SessionStore), middleware.VerifyCSRF())

	guest := portal.Group("")
	guest.Use(middleware.RedirectIfAuthenticated())
	{
		guest.GET("/register", ctrl.Auth.RegisterForm)
		guest.POST("/register", ctrl.Auth.Register)
		guest.GET("/login", ctrl.Auth.LoginForm)
		guest.POST("/login", ctrl.Auth.Login)
	}

	student := portal.Group("")
	student.Use(opts.SessionGate.RequireStudent())
	{
		student.POST("/logout", ctrl.Auth.Logout)
		student.GET("/dashboard", ctrl.Feedback.Dashboard)
		student.GET("/feedback", ctrl.Feedback.History)
		student.GET("/feedback/:subjectCode", ctrl.Feedback.FeedbackForm)
		student.POST("/feedback/:subjectCode", ctrl.Feedback.SubmitFeedback)
		student.GET("/suggestions", ctrl.Suggestion.List)
		student.POST("/suggestions", ctrl.Suggestion.Submit)
	}

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusSeeOther, middleware.DashboardPath)
	})

	// --- Admin JSON API: bearer tokens ---
	v1 := router.Group("/api/v1")
	admin := v1.Group("/admin")
	{
		admin.POST("/login", ctrl.Admin.Login)

		protected := admin.Group("")
		protected.Use(opts.AuthMiddleware.AdminAuth())
		{
			protected.GET("/subjects", ctrl.Admin.ListSubjects)
			protected.PUT("/subjects", ctrl.Admin.ReplaceSubjects)
			protected.POST("/admins", ctrl.Admin.CreateAdmin)
			protected.GET("/feedback/summary", ctrl.Admin.FeedbackSummary)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found")))
	})
}
