package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// Index reports that the API is reachable
// GET /
func Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "API is up and running",
		"ok":      true,
		"time":    time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	})
}

// NotFoundHandler answers unmatched routes. The reported path is relative
// to basePath when the request falls under it.
func NotFoundHandler(basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		respondFail(c, http.StatusNotFound, "Not found", map[string]any{
			"path":   relativePath(c.Request.URL.Path, basePath),
			"method": c.Request.Method,
		})
	}
}

func relativePath(path, basePath string) string {
	if basePath == "" {
		return path
	}
	if path == basePath {
		return "/"
	}
	if rest, ok := strings.CutPrefix(path, basePath+"/"); ok {
		return "/" + rest
	}
	return path
}
