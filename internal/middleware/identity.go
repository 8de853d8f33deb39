// internal/middleware/identity.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/javajoker/merchio-backend/internal/utils"
)

const UserIDHeader = "X-User-ID"

// Identity resolves who is browsing. A valid Bearer token issued by the auth
// service wins, then the X-User-ID header, then defaultUserID. Nothing here
// rejects a request: an invalid token simply falls through.
func Identity(defaultUserID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := defaultUserID
		source := "default"

		if header := strings.TrimSpace(c.GetHeader(UserIDHeader)); header != "" {
			userID = header
			source = "header"
		}

		// Extract token from "Bearer <token>"
		parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			claims, err := utils.ValidateJWT(parts[1])
			if err == nil {
				userID = claims.UserID
				source = "token"
				c.Set("role", claims.Role)
			} else {
				logrus.WithError(err).Debug("Ignoring invalid bearer token")
			}
		}

		if userID != "" {
			c.Set("user_id", userID)
			c.Set("identity_source", source)
		}
		c.Next()
	}
}
