package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles libera a rota apenas para os papéis listados. Deve vir
// depois do AuthMiddleware na cadeia.
func RequireRoles(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		role, _ := c.MustGet(ContextUserRole).(string)

		if _, ok := allowed[role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permissao_negada"})
			return
		}

		c.Next()
	}
}
