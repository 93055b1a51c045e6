package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/homesite/backend/internal/pkg/token"
)

const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
	ContextRole     = "role"
)

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	// SPA 下载链接等场景无法带 Header，退化为查询参数
	return c.Query("token")
}

// Auth 强制登录，校验失败返回 401
func Auth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "未登录"})
			return
		}
		claims, err := tokens.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "登录已过期，请重新登录"})
			return
		}
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUsername, claims.Username)
		c.Set(ContextRole, claims.Role)
		c.Next()
	}
}

// OptionalAuth 可选登录，令牌有效时注入用户信息，无效时按游客处理
func OptionalAuth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := bearerToken(c); raw != "" {
			if claims, err := tokens.Parse(raw); err == nil {
				c.Set(ContextUserID, claims.UserID)
				c.Set(ContextUsername, claims.Username)
				c.Set(ContextRole, claims.Role)
			}
		}
		c.Next()
	}
}

// RequireRole 要求指定角色，需在 Auth 之后使用
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ContextRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "权限不足"})
			return
		}
		c.Next()
	}
}

// CurrentUser 从上下文取当前用户，未登录时 userID 为 0
func CurrentUser(c *gin.Context) (userID uint, role string) {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			userID = id
		}
	}
	return userID, c.GetString(ContextRole)
}
