package middleware

import (
	"net/http"
	"strings"

	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/delivery/http/response"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/internal/domain"
	"github.com/abhayy08/AlumniConnect-Platform-Backend/pkg/auth"

	"github.com/gin-gonic/gin"
)

func AuthMiddleware(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Bearer token required", nil)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Set(string(domain.KeyUserEmail), claims.Email)

		c.Next()
	}
}
