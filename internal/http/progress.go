package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingtracker/internal/logger"
	"github.com/mrlokans/readingtracker/internal/progress"
)

// ProgressTracker records completions and reports on them.
type ProgressTracker interface {
	RecordCompletion(ctx context.Context, uid string, in progress.CompletionInput) (progress.CompletionResult, error)
	Summarize(ctx context.Context, uid, bookID, trackID string) (progress.Summary, error)
	CalendarForMonth(ctx context.Context, uid, month string) (progress.Calendar, error)
}

type ProgressController struct {
	tracker ProgressTracker
	log     *logger.Logger
}

func NewProgressController(tracker ProgressTracker, log *logger.Logger) *ProgressController {
	return &ProgressController{tracker: tracker, log: log}
}

// Complete marks a segment as read
// POST /progress/complete
func (pc *ProgressController) Complete(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	segmentIndex, present, err := body.Index("segmentIndex")
	bookID, trackID := body.String("bookId"), body.String("trackId")
	if bookID == "" || trackID == "" || (!present && err == nil) {
		respondBadRequest(c, "bookId, trackId and segmentIndex are required")
		return
	}
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	minutes, err := body.Minutes("timeSpentMinutes")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	result, err := pc.tracker.RecordCompletion(c.Request.Context(), GetUserID(c), progress.CompletionInput{
		BookID:           bookID,
		TrackID:          trackID,
		SegmentIndex:     segmentIndex,
		TimeSpentMinutes: minutes,
	})
	if err != nil {
		respondServiceError(c, pc.log, err, "/progress/complete", "Failed to save progress")
		return
	}

	respondOK(c, gin.H{
		"message":      "Completion saved.",
		"date":         result.Date,
		"segmentIndex": result.SegmentIndex,
	})
}

// Summary reports completion of one track
// GET /progress/summary?bookId=...&trackId=...
func (pc *ProgressController) Summary(c *gin.Context) {
	summary, err := pc.tracker.Summarize(c.Request.Context(), GetUserID(c), c.Query("bookId"), c.Query("trackId"))
	if err != nil {
		respondServiceError(c, pc.log, err, "/progress/summary", "Failed to load the progress summary")
		return
	}

	respondOK(c, gin.H{
		"bookId":               summary.BookID,
		"trackId":              summary.TrackID,
		"totalChapters":        summary.TotalChapters,
		"completedCount":       summary.CompletedCount,
		"completionRate":       summary.CompletionRate,
		"lastCompletedSegment": summary.LastCompletedSegment,
	})
}

// Calendar returns the daily study logs of a month
// GET /progress/calendar?month=YYYY-MM
func (pc *ProgressController) Calendar(c *gin.Context) {
	calendar, err := pc.tracker.CalendarForMonth(c.Request.Context(), GetUserID(c), c.Query("month"))
	if err != nil {
		respondServiceError(c, pc.log, err, "/progress/calendar", "Failed to load calendar data")
		return
	}

	respondOK(c, gin.H{
		"month": calendar.Month,
		"count": len(calendar.Items),
		"items": calendar.Items,
	})
}
