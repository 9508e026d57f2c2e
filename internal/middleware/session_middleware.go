package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/TRK06/feedback-system/internal/app/models"
	"github.com/TRK06/feedback-system/internal/pkg/apperrors"
	"github.com/TRK06/feedback-system/internal/pkg/logger"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const (
	sessionStudentIDKey = "student_id"
	identityContextKey  = "identity"
)

// SaveSession writes the session and logs a failed write. It reports
// whether the write succeeded.
func SaveSession(session sessions.Session, lgr zerolog.Logger) bool {
	if err := session.Save(); err != nil {
		lgr.Error().Err(err).Msg("Failed to save session")
		return false
	}
	return true
}

// IdentityResolver loads the student behind a session
type IdentityResolver interface {
	ResolveIdentity(ctx context.Context, studentID string) (models.Identity, error)
}

// SessionGate guards the student portal
type SessionGate struct {
	resolver IdentityResolver
}

// NewSessionGate creates a new SessionGate
func NewSessionGate(resolver IdentityResolver) *SessionGate {
	return &SessionGate{resolver: resolver}
}

// RequireStudent resolves the session into a request-scoped Identity.
// Requests without a valid session are redirected to the login page.
func (g *SessionGate) RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		studentID, _ := session.Get(sessionStudentIDKey).(string)
		if studentID == "" {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}

		identity, err := g.resolver.ResolveIdentity(c.Request.Context(), studentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUnauthenticated) {
				logger.Warn().Str("studentID", studentID).Msg("Session refers to a missing student")
				session.Clear()
				SaveSession(session, logger.Get())
				c.Redirect(http.StatusSeeOther, LoginPath)
				c.Abort()
				return
			}
			HandlePortalError(c, err, internalErrorMessage)
			return
		}

		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// RedirectIfAuthenticated sends students with a session to the dashboard
func RedirectIfAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id, _ := sessions.Default(c).Get(sessionStudentIDKey).(string); id != "" {
			c.Redirect(http.StatusSeeOther, DashboardPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetIdentity returns the identity set by RequireStudent
func GetIdentity(c *gin.Context) (models.Identity, bool) {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return models.Identity{}, false
	}
	id, ok := v.(models.Identity)
	return id, ok
}

// StartSession binds the session to the student, dropping whatever the
// session held before, and issues a fresh anti-forgery token
func StartSession(c *gin.Context, studentID string) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionStudentIDKey, studentID)
	rotateCSRFToken(session)
	return session.Save()
}

// EndSession forgets the student. A pending notice survives so the login
// page can still show it.
func EndSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Delete(sessionStudentIDKey)
	session.Delete(csrfSessionKey)
	return session.Save()
}
