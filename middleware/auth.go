package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AdminAuth protege as rotas de painel/admin com um token estático
// (Authorization: Bearer <token>). Token vazio na config libera as rotas —
// modo dev local. O sistema de login completo fica fora deste serviço.
func AdminAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		provided := strings.TrimPrefix(strings.TrimSpace(c.GetHeader("Authorization")), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "não autorizado"})
			return
		}
		c.Next()
	}
}
