package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AdminAuth пускает запрос дальше только с верным заголовком x-admin-password.
// Пустой пароль в конфиге означает, что админские эндпоинты выключены.
func AdminAuth(password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if password == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access disabled"})
			return
		}

		got := c.GetHeader("x-admin-password")
		if subtle.ConstantTimeCompare([]byte(got), []byte(password)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}

		c.Next()
	}
}
