package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingtracker/internal/logger"
)

// UserIDHeader carries the caller's user id. There is no authentication.
const UserIDHeader = "X-User-Id"

// IdentityMiddleware resolves the user id from UserIDHeader, falling back
// to fallbackUID when the header is absent or blank.
func IdentityMiddleware(fallbackUID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ContextKeyUserID, ResolveUserID(c.GetHeader(UserIDHeader), fallbackUID))
		c.Next()
	}
}

func ResolveUserID(header, fallbackUID string) string {
	if strings.TrimSpace(header) != "" {
		return header
	}
	return fallbackUID
}

// CORSMiddleware allows every origin. Preflight requests get 204.
func CORSMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:    []string{"Content-Type", UserIDHeader},
		MaxAge:          12 * time.Hour,
	})
}

// OptionsMiddleware answers any OPTIONS request with 204, including ones
// that are not CORS preflights.
func OptionsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Header("Access-Control-Allow-Origin", "*")
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// RequestLogger logs every request with its outcome.
func RequestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []interface{}{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"query", c.Request.URL.RawQuery,
			"status", status,
			"uid", GetUserID(c),
			"duration_ms", time.Since(start).Milliseconds(),
		}

		switch {
		case status >= 500:
			log.Error("HTTP request", fields...)
		case status >= 400:
			log.Warn("HTTP request", fields...)
		default:
			log.Info("HTTP request", fields...)
		}
	}
}
