package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingtracker/internal/annotations"
	"github.com/mrlokans/readingtracker/internal/entities"
	"github.com/mrlokans/readingtracker/internal/logger"
)

// HighlightService creates and lists highlights.
type HighlightService interface {
	SaveHighlight(ctx context.Context, uid string, in annotations.SaveHighlightInput) (string, error)
	ListHighlights(ctx context.Context, filter annotations.HighlightFilter) ([]entities.UserHighlight, error)
}

type HighlightsController struct {
	service HighlightService
	log     *logger.Logger
}

func NewHighlightsController(service HighlightService, log *logger.Logger) *HighlightsController {
	return &HighlightsController{service: service, log: log}
}

// CreateHighlight stores a highlighted passage
// POST /highlights
func (hc *HighlightsController) CreateHighlight(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	segmentIndex, err := body.IndexPtr("segmentIndex")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	id, err := hc.service.SaveHighlight(c.Request.Context(), GetUserID(c), annotations.SaveHighlightInput{
		BookID:       body.String("bookId"),
		Text:         body.String("text"),
		TrackID:      body.String("trackId"),
		SegmentIndex: segmentIndex,
		Color:        body.String("color"),
	})
	if err != nil {
		respondServiceError(c, hc.log, err, "/highlights (POST)", "Failed to save the highlight")
		return
	}

	respondOK(c, gin.H{
		"message":     "Highlight saved.",
		"highlightId": id,
	})
}

// ListHighlights returns highlights matching the query filters
// GET /highlights?bookId=...&trackId=...&segmentIndex=...
func (hc *HighlightsController) ListHighlights(c *gin.Context) {
	filter := annotations.HighlightFilter{
		UID:     GetUserID(c),
		BookID:  c.Query("bookId"),
		TrackID: c.Query("trackId"),
	}
	if raw := c.Query("segmentIndex"); raw != "" {
		n, err := parseInteger(raw)
		if err != nil {
			respondBadRequest(c, "segmentIndex must be an integer")
			return
		}
		filter.SegmentIndex = &n
	}

	items, err := hc.service.ListHighlights(c.Request.Context(), filter)
	if err != nil {
		respondServiceError(c, hc.log, err, "/highlights (GET)", "Failed to load highlights")
		return
	}

	respondOK(c, gin.H{
		"count": len(items),
		"items": items,
	})
}
