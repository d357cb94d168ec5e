package middleware

import (
	"net/http"
	"strings"

	"aichat-server/internal/services"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects any request the identity provider's token
// does not vouch for, before a handler or store is reached. The body
// is plain text, matching what the client shell expects.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		ownerID, err := service.ParseAccessToken(token)
		if err != nil {
			c.String(http.StatusUnauthorized, "Unauthenticated!")
			c.Abort()
			return
		}

		ctx := services.WithOwnerContext(c.Request.Context(), ownerID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
