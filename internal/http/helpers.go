package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingtracker/internal/apperr"
	"github.com/mrlokans/readingtracker/internal/logger"
)

// ContextKeyUserID holds the resolved user id on the gin context.
const ContextKeyUserID = "userID"

// GetUserID returns the user id resolved by IdentityMiddleware.
func GetUserID(c *gin.Context) string {
	return c.GetString(ContextKeyUserID)
}

// --- Response Helpers ---
//
// Every response is a JSON object with an "ok" flag. Failures carry an
// "error" message plus optional context fields at the top level.

// respondOK sends a 200 response with ok=true merged into fields.
func respondOK(c *gin.Context, fields gin.H) {
	body := gin.H{"ok": true}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// respondFail sends an error envelope with optional context fields.
func respondFail(c *gin.Context, status int, message string, context map[string]any) {
	body := gin.H{"ok": false, "error": message}
	for k, v := range context {
		body[k] = v
	}
	c.JSON(status, body)
}

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	respondFail(c, http.StatusBadRequest, message, nil)
}

// respondServiceError maps a service error to its status code. Storage
// failures are logged and their underlying message is passed through, or
// fallback when there is none.
func respondServiceError(c *gin.Context, log *logger.Logger, err error, op, fallback string) {
	var (
		validation *apperr.ValidationError
		notFound   *apperr.NotFoundError
		storage    *apperr.StorageError
	)

	switch {
	case errors.As(err, &validation):
		respondBadRequest(c, validation.Message)
	case errors.As(err, &notFound):
		respondFail(c, http.StatusNotFound, notFound.Message, notFound.Context)
	case errors.As(err, &storage):
		log.Error("Error in "+op, "error", err, "path", c.Request.URL.Path)
		message := fallback
		if storage.Err != nil && storage.Err.Error() != "" {
			message = storage.Err.Error()
		}
		respondFail(c, http.StatusInternalServerError, message, nil)
	default:
		log.Error("Error in "+op, "error", err, "path", c.Request.URL.Path)
		respondFail(c, http.StatusInternalServerError, fallback, nil)
	}
}
