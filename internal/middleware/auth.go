package middleware

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/yungbote/dealflow-backend/internal/logger"
)

type AuthMiddleware struct {
  log    *logger.Logger
  apiKey string
}

func NewAuthMiddleware(log *logger.Logger, apiKey string) *AuthMiddleware {
  middlewareLogger := log.With("Middleware", "AuthMiddleware")
  return &AuthMiddleware{log: middlewareLogger, apiKey: apiKey}
}

func (am *AuthMiddleware) RequireAPIKey() gin.HandlerFunc {
  return func(c *gin.Context) {
    key := c.GetHeader("X-API-Key")
    if am.apiKey == "" || key != am.apiKey {
      c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Unauthorized"})
      return
    }
    c.Next()
  }
}
