package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Where a client returns the anti-forgery token
const (
	CSRFFormField = "csrf_token"
	CSRFHeader    = "X-CSRF-Token"

	csrfSessionKey = "csrf_token"
)

func rotateCSRFToken(session sessions.Session) string {
	token := uuid.NewString()
	session.Set(csrfSessionKey, token)
	return token
}

// CSRFToken returns the session's anti-forgery token, issuing one if the
// session has none yet
func CSRFToken(c *gin.Context) string {
	session := sessions.Default(c)
	if token, _ := session.Get(csrfSessionKey).(string); token != "" {
		return token
	}
	token := rotateCSRFToken(session)
	SaveSession(session, logger.Get())
	return token
}

func isSafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// VerifyCSRF rejects mutating requests whose token does not match the session
func VerifyCSRF() gin.HandlerFunc {
	return func(c *gin.Context) {
		if isSafeMethod(c.Request.Method) {
			c.Next()
			return
		}

		expected, _ := sessions.Default(c).Get(csrfSessionKey).(string)
		provided := c.GetHeader(CSRFHeader)
		if provided == "" {
			provided = c.PostForm(CSRFFormField)
		}

		if expected == "" || subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) != 1 {
			logger.Warn().
				Str("path", c.Request.URL.Path).
				Str("clientIP", c.ClientIP()).
				Bool("sessionHasToken", expected != "").
				Msg("Rejected request with invalid anti-forgery token")
			HandleAPIError(c, &apperrors.CustomError{
				Err:     apperrors.ErrInvalidCSRFToken,
				Message: "Invalid form submission. Please reload the page and try again.",
			})
			return
		}
		c.Next()
	}
}
