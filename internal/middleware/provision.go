package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "centavo/internal/errors"
	"centavo/internal/models"
)

// ContextUserID is the context key holding the provisioned user's row id.
const ContextUserID = "userID"

// UserProvisioner resolves an authenticated principal to a user row,
// creating one (plus its default categories) on first sight.
type UserProvisioner interface {
	EnsureUser(externalID, email, name string) (*models.User, error)
}

// ProvisionUser maps the authenticated principal from the auth middleware to
// a user row and stores its id in the context. Must run after AuthMiddleware.
func ProvisionUser(users UserProvisioner) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalID := c.GetString(ContextExternalID)
		if externalID == "" {
			_ = c.Error(apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		user, err := users.EnsureUser(externalID, c.GetString(ContextEmail), c.GetString(ContextName))
		if err != nil {
			_ = c.Error(err)
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Next()
	}
}
