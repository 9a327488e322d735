package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingtracker/internal/annotations"
	"github.com/mrlokans/readingtracker/internal/entities"
	"github.com/mrlokans/readingtracker/internal/logger"
)

// InsightService keeps one note per segment.
type InsightService interface {
	SaveInsight(ctx context.Context, uid string, in annotations.SaveInsightInput) error
	GetInsight(ctx context.Context, uid, bookID string, segmentIndex int, trackID string) (*string, error)
	ListInsights(ctx context.Context, uid, bookID, trackID string) ([]entities.UserInsight, error)
}

type InsightsController struct {
	service InsightService
	log     *logger.Logger
}

func NewInsightsController(service InsightService, log *logger.Logger) *InsightsController {
	return &InsightsController{service: service, log: log}
}

// SaveInsight writes the note of a segment
// POST /insights
func (ic *InsightsController) SaveInsight(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	segmentIndex, _, err := body.Index("segmentIndex")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	err = ic.service.SaveInsight(c.Request.Context(), GetUserID(c), annotations.SaveInsightInput{
		BookID:       body.String("bookId"),
		TrackID:      body.String("trackId"),
		SegmentIndex: segmentIndex,
		Note:         body.String("note"),
	})
	if err != nil {
		respondServiceError(c, ic.log, err, "/insights (POST)", "Failed to save the insight")
		return
	}

	respondOK(c, gin.H{"message": "Insight saved."})
}

// GetInsights returns one note when segmentIndex is given, otherwise every
// note of the book
// GET /insights?bookId=...&trackId=...&segmentIndex=...
func (ic *InsightsController) GetInsights(c *gin.Context) {
	uid := GetUserID(c)
	bookID := c.Query("bookId")
	trackID := c.Query("trackId")

	if bookID == "" {
		respondBadRequest(c, "bookId is required")
		return
	}

	if raw := c.Query("segmentIndex"); raw != "" {
		segmentIndex, err := parseInteger(raw)
		if err != nil {
			respondBadRequest(c, "segmentIndex must be an integer")
			return
		}

		note, err := ic.service.GetInsight(c.Request.Context(), uid, bookID, segmentIndex, trackID)
		if err != nil {
			respondServiceError(c, ic.log, err, "/insights (GET single)", "Failed to load the insight")
			return
		}
		respondOK(c, gin.H{"note": note})
		return
	}

	items, err := ic.service.ListInsights(c.Request.Context(), uid, bookID, trackID)
	if err != nil {
		respondServiceError(c, ic.log, err, "/insights (GET list)", "Failed to load insights")
		return
	}

	respondOK(c, gin.H{"items": items})
}
