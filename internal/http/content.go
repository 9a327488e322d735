package http

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingtracker/internal/content"
	"github.com/mrlokans/readingtracker/internal/logger"
)

// SegmentReader loads the text of a book segment.
type SegmentReader interface {
	GetSegment(ctx context.Context, bookID string, segmentIndex int, trackID *string) (*content.Segment, error)
}

type ContentController struct {
	reader SegmentReader
	log    *logger.Logger
}

func NewContentController(reader SegmentReader, log *logger.Logger) *ContentController {
	return &ContentController{reader: reader, log: log}
}

// GetContent returns the paragraphs of one segment
// GET /content?bookId=...&segmentIndex=...&trackId=...
func (cc *ContentController) GetContent(c *gin.Context) {
	bookID := c.Query("bookId")
	rawIndex := c.Query("segmentIndex")
	if bookID == "" || rawIndex == "" {
		respondBadRequest(c, "bookId and segmentIndex are required")
		return
	}

	number, err := strconv.ParseFloat(strings.TrimSpace(rawIndex), 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) || number <= 0 {
		respondBadRequest(c, content.ErrSegmentIndexRange)
		return
	}
	// Only whole indexes are stored; anything else cannot match a segment.
	if number != math.Trunc(number) || number > math.MaxInt32 {
		respondServiceError(c, cc.log, content.SegmentNotFound(bookID, number), "/content", "Failed to load the text")
		return
	}
	segmentIndex := int(number)

	var trackID *string
	if t := c.Query("trackId"); t != "" {
		trackID = &t
	}

	segment, err := cc.reader.GetSegment(c.Request.Context(), bookID, segmentIndex, trackID)
	if err != nil {
		respondServiceError(c, cc.log, err, "/content", "Failed to load the text")
		return
	}

	respondOK(c, gin.H{
		"bookId":           segment.BookID,
		"trackId":          segment.TrackID,
		"segmentIndex":     segment.SegmentIndex,
		"title":            segment.Title,
		"paragraphs":       segment.Paragraphs,
		"estimatedMinutes": segment.EstimatedMinutes,
	})
}
