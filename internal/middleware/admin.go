package middleware

import (
	"strings"

	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/service"
	"github.com/Gauraviiitian/PrepZone-Mock-Test/internal/util"

	"github.com/gin-gonic/gin"
)

// AdminAuth guards the admin panel. A session already verified through the
// gate passes directly (the grant is sticky); otherwise a bearer token from
// the Authorization header or ?token= query parameter is accepted.
func AdminAuth(admin *service.AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := SessionFromContext(c); sess != nil && sess.IsAdmin() {
			c.Next()
			return
		}

		tokenString := ""
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := admin.ParseToken(tokenString)
		if err != nil || !claims.Admin {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
