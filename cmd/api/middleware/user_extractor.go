package middleware

import (
	"github.com/gin-gonic/gin"

	"bloglist/cmd/api/auth"
	"bloglist/cmd/api/services"
	"bloglist/internal/logger"
	"bloglist/models"
)

const ContextKeyUser = "user"

// UserExtractor resolves the bearer token to a stored user and attaches it to the context.
// Requests without a valid token are aborted with 401.
func UserExtractor(authSvc *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractBearerToken(c)
		if err != nil {
			auth.AbortWithUnauthorized(c, err)
			return
		}

		user, err := authSvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			logger.WarnWithFields("authentication failed", logger.Fields{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})
			auth.AbortWithUnauthorized(c, auth.ErrInvalidToken)
			return
		}

		c.Set(ContextKeyUser, user)
		c.Next()
	}
}

// CurrentUser returns the user attached by UserExtractor.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextKeyUser)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}
