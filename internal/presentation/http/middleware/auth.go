package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/remodela-api/internal/presentation/http/dto/response"
	"github.com/sangkips/remodela-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware. Every valid
// access token belongs to an administrator, so there is no role check.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Se requiere el encabezado Authorization")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			response.Unauthorized(c, "Formato de Authorization inválido")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(strings.TrimSpace(token))
		if err != nil {
			response.Unauthorized(c, "Token inválido o expirado")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)

		c.Next()
	}
}
