package middlewares

import (
	"strings"

	"backend/pkg/resp"
	"backend/utils"

	"github.com/gin-gonic/gin"
)

// WSAuthMiddleware authenticates the WebSocket handshake. Browsers cannot
// set headers on WS connects, so the token is accepted from the query string
// as well. Rejection happens before the upgrade; no channel is ever joined
// with a bad credential.
func WSAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		if t := c.Query("token"); t != "" {
			tokenStr = t
		} else {
			h := c.GetHeader("Authorization")
			if strings.HasPrefix(h, "Bearer ") {
				tokenStr = strings.TrimPrefix(h, "Bearer ")
			}
		}

		if tokenStr == "" {
			resp.Unauthorized(c, "missing token")
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(tokenStr, secret)
		if err != nil {
			resp.Unauthorized(c, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set("userId", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}
