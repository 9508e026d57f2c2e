package middleware

import (
	"errors"
	"net/http"

	"github.com/TRK06/feedback-system/internal/app/models/dto"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/flash"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Redirect targets of the portal
const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

const internalErrorMessage = "Internal server error"

// errorStatus maps an application error to its HTTP status and error code
func errorStatus(err error) (int, dto.ErrorCode) {
	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.ErrorCodeValidationFailed
	case errors.Is(err, apperrors.ErrInvalidCSRFToken):
		return http.StatusForbidden, dto.ErrorCodeInvalidCSRFToken
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.ErrorCodeResourceNotFound
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.ErrorCodeResourceAlreadyExists
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorCodeConflict
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.ErrorCodeExpiredToken
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.ErrorCodeInvalidToken
	case errors.Is(err, apperrors.ErrUnauthenticated):
		return http.StatusUnauthorized, dto.ErrorCodeUnauthorized
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.ErrorCodeForbidden
	case errors.Is(err, apperrors.ErrStore):
		return http.StatusInternalServerError, dto.ErrorCodeDatabaseError
	default:
		return http.StatusInternalServerError, dto.ErrorCodeInternalServer
	}
}

func logServerError(c *gin.Context, err error) {
	ev := logger.Error().Err(err).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path)
	if id, ok := GetIdentity(c); ok {
		ev = ev.Str("studentID", id.StudentID)
	}
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Cause != nil {
		ev = ev.AnErr("cause", ce.Cause)
	}
	ev.Msg("Request failed")
}

// HandleAPIError writes the JSON error document for err. Server-side
// failures are logged and answered with a generic message.
func HandleAPIError(c *gin.Context, err error) {
	status, code := errorStatus(err)

	message := apperrors.UserMessage(err, internalErrorMessage)
	if status >= http.StatusInternalServerError {
		logServerError(c, err)
		message = internalErrorMessage
	}

	detail := dto.NewErrorDetail(code, message)
	if fields := apperrors.FieldErrors(err); len(fields) > 0 && status < http.StatusInternalServerError {
		detail = detail.WithDetails(fields)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// HandlePortalError answers a failed portal request the way the browser
// flow expects: conflicts and unknown subjects become a one-shot notice on
// the dashboard, a lost session goes back to the login page, and everything
// else is a JSON error document. fallback is shown for server failures.
func HandlePortalError(c *gin.Context, err error, fallback string) {
	switch {
	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceNotFound):
		session := sessions.Default(c)
		flash.Error(session, apperrors.UserMessage(err, fallback))
		SaveSession(session, logger.Get())
		c.Redirect(http.StatusSeeOther, DashboardPath)
		c.Abort()
	case errors.Is(err, apperrors.ErrUnauthenticated):
		c.Redirect(http.StatusSeeOther, LoginPath)
		c.Abort()
	default:
		status, code := errorStatus(err)
		if status >= http.StatusInternalServerError {
			logServerError(c, err)
			c.AbortWithStatusJSON(status, dto.NewErrorResponse(dto.NewErrorDetail(code, fallback)))
			return
		}
		HandleAPIError(c, err)
	}
}

// Recovery turns a panic into a logged 500 response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, internalErrorMessage)))
	})
}
