package api

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/housetab/housetab/internal/auth"
)

// userIDKey is the gin context key for the authenticated user ID.
const userIDKey = "user_id"

// CurrentUserID returns the authenticated user's ID, or empty string
// when the request carried no valid token.
func CurrentUserID(c *gin.Context) string {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(string)
	return userID
}

// RequireAuth validates the Bearer token and stores the user ID in the
// request context. Requests without a valid token are rejected.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			Unauthorized(c, auth.ErrMissingToken.Error())
			c.Abort()
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			Unauthorized(c, auth.ErrInvalidToken.Error())
			c.Abort()
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			Unauthorized(c, auth.ErrInvalidToken.Error())
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// RequestLogger logs every request with method, path, status and
// duration.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"user_id", CurrentUserID(c),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if status >= 500 {
			slog.Error("request", attrs...)
		} else if status >= 400 {
			slog.Warn("request", attrs...)
		} else {
			slog.Info("request", attrs...)
		}
	}
}

// CORS adds permissive CORS headers for browser access.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}
