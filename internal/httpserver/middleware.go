package httpserver

import (
	"net/http"
	"strings"

	"boomstore/internal/domain"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// requireAdmin resolves the session and rejects anything short of an
// admin role before the handler runs. No mutation is attempted for
// unauthorized callers.
func requireAdmin(auth AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			errorResponse(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		user, err := auth.UserFromToken(c.Request.Context(), token)
		if err != nil || user.Role != domain.RoleAdmin {
			errorResponse(c, http.StatusUnauthorized, "unauthorized")
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}
