// Package progress records segment completions and derives summary and
// calendar views from them.
package progress

import (
	"context"
	"regexp"
	"time"

	"github.com/samber/lo"

	"github.com/mrlokans/readingtracker/internal/apperr"
	"github.com/mrlokans/readingtracker/internal/entities"
)

// SummaryTotalChapters is the fixed denominator of the completion rate. It
// is not taken from the catalog; every track is treated as 30 segments long.
const SummaryTotalChapters = 30

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Store is the persistence the tracker needs.
type Store interface {
	// UpsertProgress merges record into the row with the same ID.
	UpsertProgress(ctx context.Context, record *entities.ProgressRecord) error
	// IncrementStudyLog atomically adds one completed segment and minutes to
	// the log for (uid, date), creating it when absent.
	IncrementStudyLog(ctx context.Context, uid, date string, minutes float64, at time.Time) error
	// ListDone returns the done records of one user's book track.
	ListDone(ctx context.Context, uid, bookID, trackID string) ([]entities.ProgressRecord, error)
	// ListStudyLogs returns logs with from <= date <= to, ascending by date.
	ListStudyLogs(ctx context.Context, uid, from, to string) ([]entities.StudyLog, error)
}

type CompletionInput struct {
	BookID           string
	TrackID          string
	SegmentIndex     int // zero means missing
	TimeSpentMinutes float64
}

type CompletionResult struct {
	Date         string `json:"date"`
	SegmentIndex int    `json:"segmentIndex"`
}

type Summary struct {
	BookID               string  `json:"bookId"`
	TrackID              string  `json:"trackId"`
	TotalChapters        int     `json:"totalChapters"`
	CompletedCount       int     `json:"completedCount"`
	CompletionRate       float64 `json:"completionRate"`
	LastCompletedSegment *int    `json:"lastCompletedSegment"`
}

type Calendar struct {
	Month string              `json:"month"`
	Items []entities.StudyLog `json:"items"`
}

type Tracker struct {
	store Store
	now   func() time.Time
}

func NewTracker(store Store) *Tracker {
	return &Tracker{store: store, now: time.Now}
}

// WithClock replaces the time source. Used by tests.
func (t *Tracker) WithClock(now func() time.Time) *Tracker {
	t.now = now
	return t
}

// RecordCompletion marks a segment done and adds it to today's study log.
//
// The two writes are independent: if the study log update fails, the
// progress record stays written and the error is returned. Completing the
// same segment again overwrites completedAt and timeSpentMinutes of the
// existing record but still increments the study log.
func (t *Tracker) RecordCompletion(ctx context.Context, uid string, in CompletionInput) (CompletionResult, error) {
	if in.BookID == "" || in.TrackID == "" || in.SegmentIndex == 0 {
		return CompletionResult{}, apperr.Validation("bookId, trackId and segmentIndex are required")
	}

	now := t.now().UTC()
	isoDate := now.Format(time.DateOnly)

	record := &entities.ProgressRecord{
		ID:               entities.ProgressRecordID(uid, in.BookID, in.TrackID, in.SegmentIndex),
		UID:              uid,
		BookID:           in.BookID,
		TrackID:          in.TrackID,
		SegmentIndex:     in.SegmentIndex,
		Status:           entities.ProgressStatusDone,
		CompletedAt:      now.Format("2006-01-02T15:04:05.000Z07:00"),
		TimeSpentMinutes: in.TimeSpentMinutes,
	}
	if err := t.store.UpsertProgress(ctx, record); err != nil {
		return CompletionResult{}, apperr.Storage("save progress", err)
	}

	if err := t.store.IncrementStudyLog(ctx, uid, isoDate, in.TimeSpentMinutes, now); err != nil {
		return CompletionResult{}, apperr.Storage("update study log", err)
	}

	return CompletionResult{Date: isoDate, SegmentIndex: in.SegmentIndex}, nil
}

// Summarize counts the done segments of a track.
func (t *Tracker) Summarize(ctx context.Context, uid, bookID, trackID string) (Summary, error) {
	if bookID == "" || trackID == "" {
		return Summary{}, apperr.Validation("bookId and trackId query parameters are required")
	}

	records, err := t.store.ListDone(ctx, uid, bookID, trackID)
	if err != nil {
		return Summary{}, apperr.Storage("load progress", err)
	}

	summary := Summary{
		BookID:         bookID,
		TrackID:        trackID,
		TotalChapters:  SummaryTotalChapters,
		CompletedCount: len(records),
	}
	if summary.TotalChapters > 0 {
		summary.CompletionRate = float64(summary.CompletedCount) / float64(summary.TotalChapters)
	}
	if len(records) > 0 {
		last := lo.MaxBy(records, func(a, b entities.ProgressRecord) bool {
			return a.SegmentIndex > b.SegmentIndex
		}).SegmentIndex
		summary.LastCompletedSegment = &last
	}
	return summary, nil
}

// CalendarForMonth returns the study logs of a YYYY-MM month. A missing or
// malformed month selects the current UTC month.
func (t *Tracker) CalendarForMonth(ctx context.Context, uid, month string) (Calendar, error) {
	if !monthPattern.MatchString(month) {
		month = t.now().UTC().Format("2006-01")
	}

	// Lexicographic bounds on zero-padded dates; "-31" is safe for short months.
	logs, err := t.store.ListStudyLogs(ctx, uid, month+"-01", month+"-31")
	if err != nil {
		return Calendar{}, apperr.Storage("load study logs", err)
	}
	if logs == nil {
		logs = []entities.StudyLog{}
	}

	return Calendar{Month: month, Items: logs}, nil
}
