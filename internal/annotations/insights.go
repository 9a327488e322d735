package annotations

import (
	"context"
	"strings"

	"github.com/mrlokans/readingtracker/internal/apperr"
	"github.com/mrlokans/readingtracker/internal/entities"
)

type SaveInsightInput struct {
	BookID       string
	TrackID      string
	SegmentIndex int // zero means missing
	Note         string
}

// SaveInsight writes the user's note for one segment, replacing any earlier
// note at the same key. The note is stored as given; trimming only decides
// whether it is empty.
func (s *Service) SaveInsight(ctx context.Context, uid string, in SaveInsightInput) error {
	if in.BookID == "" || in.SegmentIndex == 0 {
		return apperr.Validation("bookId and segmentIndex are required")
	}
	if strings.TrimSpace(in.Note) == "" {
		return apperr.Validation("note is empty")
	}

	now := s.now().UTC()
	insight := &entities.UserInsight{
		ID:           entities.UserInsightID(uid, in.BookID, in.TrackID, in.SegmentIndex),
		UID:          uid,
		BookID:       in.BookID,
		TrackID:      optional(in.TrackID),
		SegmentIndex: in.SegmentIndex,
		Note:         in.Note,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.insights.UpsertInsight(ctx, insight); err != nil {
		return apperr.Storage("save insight", err)
	}
	return nil
}

// GetInsight returns the note of one segment, or nil when none was saved.
func (s *Service) GetInsight(ctx context.Context, uid, bookID string, segmentIndex int, trackID string) (*string, error) {
	if bookID == "" {
		return nil, apperr.Validation("bookId is required")
	}

	insight, err := s.insights.GetInsight(ctx, entities.UserInsightID(uid, bookID, trackID, segmentIndex))
	if err != nil {
		return nil, apperr.Storage("load insight", err)
	}
	if insight == nil {
		return nil, nil
	}
	note := insight.Note
	return &note, nil
}

// ListInsights returns up to InsightListLimit notes of a book.
func (s *Service) ListInsights(ctx context.Context, uid, bookID, trackID string) ([]entities.UserInsight, error) {
	if bookID == "" {
		return nil, apperr.Validation("bookId is required")
	}

	items, err := s.insights.ListInsights(ctx, uid, bookID, trackID, InsightListLimit)
	if err != nil {
		return nil, apperr.Storage("list insights", err)
	}
	if items == nil {
		items = []entities.UserInsight{}
	}
	return items, nil
}
