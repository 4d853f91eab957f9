package middleware

import (
	"github.com/aquatrack/pool-service-api/internal/constants"
	apierrors "github.com/aquatrack/pool-service-api/internal/errors"
	"github.com/aquatrack/pool-service-api/internal/models"
	"github.com/aquatrack/pool-service-api/internal/services"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// RequireAuth resolves the session's user ID into a full user record on
// every request. A session pointing at a deleted or deactivated account is
// cleared and treated as unauthenticated, never as a server error.
func RequireAuth(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)

		userID, ok := sessionUserID(session.Get(constants.SessionKeyUserID))
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := authService.GetUser(userID)
		if err != nil || !user.Active {
			session.Clear()
			_ = session.Save()
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyPrincipal, user)
		c.Next()
	}
}

// CurrentUser retrieves the authenticated user placed in the context by
// RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyPrincipal)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// SetSessionUser stores the user's ID in the session. Nothing else about
// the user goes into the cookie.
func SetSessionUser(c *gin.Context, user *models.User) error {
	session := sessions.Default(c)
	session.Set(constants.SessionKeyUserID, user.ID)
	return session.Save()
}

// ClearSession drops the session entirely.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}

func sessionUserID(raw interface{}) (uint64, bool) {
	switch v := raw.(type) {
	case uint64:
		return v, true
	case uint:
		return uint64(v), true
	case int64:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	case int:
		if v < 0 {
			return 0, false
		}
		return uint64(v), true
	default:
		return 0, false
	}
}
