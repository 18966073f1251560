package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/najilx/file-share-webapp/backend/common"
	"github.com/najilx/file-share-webapp/backend/service"
)

// UserAuth accepts either a logged-in session or a Bearer access token and
// places the caller's identity in the request context. Handlers read
// "user_id" from there and never touch any ambient auth state.
func UserAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if id := session.Get("id"); id != nil {
			userId, ok := id.(int64)
			if !ok {
				common.RespErrorStr(c, http.StatusUnauthorized, "corrupt session, please log in again")
				c.Abort()
				return
			}
			c.Set("user_id", userId)
			c.Set("auth_by_token", false)
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			common.RespErrorStr(c, http.StatusUnauthorized, "not logged in and no Authorization header present")
			c.Abort()
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			common.RespErrorStr(c, http.StatusUnauthorized, "Authorization header format must be Bearer {token}")
			c.Abort()
			return
		}
		tokenString := parts[1]

		claims, err := service.ValidateToken(tokenString)
		if err != nil {
			common.RespErrorStr(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		if common.RedisEnabled {
			blacklisted, _ := common.RDB.Exists(c, "jwt:blacklist:"+tokenString).Result()
			if blacklisted > 0 {
				common.RespErrorStr(c, http.StatusUnauthorized, "token has been invalidated")
				c.Abort()
				return
			}
		}

		c.Set("user_id", claims.UserID)
		c.Set("auth_by_token", true)
		c.Set("bearer_token", tokenString)
		c.Next()
	}
}
