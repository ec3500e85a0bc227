package middleware

import (
	"net/http"
	"strings"

	"privdm_backend/internal/auth"
	"privdm_backend/internal/logger"
	"privdm_backend/internal/models"
	"privdm_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware - middleware проверки сессионного JWT
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing or invalid"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := auth.ParseToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		// Сохраняем claims в контекст
		c.Set(string(contextkeys.UserIDContextKey), claims.UserID)
		c.Set(string(contextkeys.HandleContextKey), claims.Handle)
		c.Set(string(contextkeys.RoleContextKey), claims.Role)

		// Хэндл актора уходит в контекст запроса, чтобы попадать в логи
		ctx := logger.WithActor(c.Request.Context(), claims.Handle)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// AdminMiddleware - пропускает только админскую сессию
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if RoleFromContext(c) != models.UserRoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied: admin only"})
			return
		}
		c.Next()
	}
}

// RoleFromContext извлекает роль текущего актора.
func RoleFromContext(c *gin.Context) models.UserRole {
	roleVal, exists := c.Get(string(contextkeys.RoleContextKey))
	if !exists {
		return models.UserRoleAnonymous
	}

	role, ok := roleVal.(models.UserRole)
	if !ok {
		// Роль могла быть сохранена строкой
		roleStr, isString := roleVal.(string)
		if !isString {
			return models.UserRoleAnonymous
		}
		role = models.UserRole(roleStr)
	}
	return role
}

// UserIDFromContext извлекает id текущего пользователя (пустой для админа).
func UserIDFromContext(c *gin.Context) string {
	if v, ok := c.Get(string(contextkeys.UserIDContextKey)); ok {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

// HandleFromContext извлекает хэндл текущего актора.
func HandleFromContext(c *gin.Context) string {
	if v, ok := c.Get(string(contextkeys.HandleContextKey)); ok {
		if h, ok := v.(string); ok {
			return h
		}
	}
	return ""
}
