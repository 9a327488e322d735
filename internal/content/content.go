// Package content serves the imported paragraphs of a book segment.
package content

import (
	"context"
	"fmt"

	"github.com/mrlokans/readingtracker/internal/apperr"
	"github.com/mrlokans/readingtracker/internal/entities"
)

// DefaultEstimatedMinutes is reported for segments imported without an estimate.
const DefaultEstimatedMinutes = 15

// ErrSegmentIndexRange is the validation message for a non-positive or
// non-finite segment index.
const ErrSegmentIndexRange = "segmentIndex must be a number of at least 1"

// Store looks up imported segments. A missing segment is (nil, nil).
type Store interface {
	GetSegment(ctx context.Context, bookID string, segmentIndex int) (*entities.BookSegment, error)
}

// SegmentNotFound is returned when no text is stored for the index. The
// index is echoed back as given, so a fractional request reports its own value.
func SegmentNotFound(bookID string, segmentIndex any) error {
	return apperr.NotFound("Segment text not found", map[string]any{
		"bookId":       bookID,
		"segmentIndex": segmentIndex,
	})
}

type Segment struct {
	BookID           string   `json:"bookId"`
	TrackID          *string  `json:"trackId"`
	SegmentIndex     int      `json:"segmentIndex"`
	Title            string   `json:"title"`
	Paragraphs       []string `json:"paragraphs"`
	EstimatedMinutes int      `json:"estimatedMinutes"`
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// GetSegment loads one segment and fills in display defaults. trackID is
// echoed back unchanged; segments are shared by every track.
func (s *Service) GetSegment(ctx context.Context, bookID string, segmentIndex int, trackID *string) (*Segment, error) {
	if bookID == "" {
		return nil, apperr.Validation("bookId and segmentIndex are required")
	}
	if segmentIndex <= 0 {
		return nil, apperr.Validation(ErrSegmentIndexRange)
	}

	stored, err := s.store.GetSegment(ctx, bookID, segmentIndex)
	if err != nil {
		return nil, apperr.Storage("load segment", err)
	}
	if stored == nil {
		return nil, SegmentNotFound(bookID, segmentIndex)
	}

	segment := &Segment{
		BookID:           bookID,
		TrackID:          trackID,
		SegmentIndex:     segmentIndex,
		Title:            stored.Title,
		Paragraphs:       stored.Paragraphs,
		EstimatedMinutes: stored.EstimatedMinutes,
	}
	if segment.Title == "" {
		segment.Title = fmt.Sprintf("Part %d", segmentIndex)
	}
	if segment.Paragraphs == nil {
		segment.Paragraphs = []string{}
	}
	if segment.EstimatedMinutes == 0 {
		segment.EstimatedMinutes = DefaultEstimatedMinutes
	}
	return segment, nil
}
