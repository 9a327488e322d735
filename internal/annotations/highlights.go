package annotations

import (
	"context"

	"github.com/mrlokans/readingtracker/internal/apperr"
	"github.com/mrlokans/readingtracker/internal/entities"
)

type SaveHighlightInput struct {
	BookID       string
	Text         string
	TrackID      string
	SegmentIndex *int
	Color        string
}

// SaveHighlight always creates a new highlight and returns its generated id.
func (s *Service) SaveHighlight(ctx context.Context, uid string, in SaveHighlightInput) (string, error) {
	if in.BookID == "" || in.Text == "" {
		return "", apperr.Validation("bookId and text are required")
	}

	color := in.Color
	if color == "" {
		color = entities.DefaultHighlightColor
	}

	id := s.newID()
	now := s.now().UTC()
	highlight := &entities.UserHighlight{
		ID:           id,
		UID:          uid,
		BookID:       in.BookID,
		TrackID:      optional(in.TrackID),
		SegmentIndex: in.SegmentIndex,
		HighlightID:  id,
		Text:         in.Text,
		Color:        color,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.highlights.CreateHighlight(ctx, highlight); err != nil {
		return "", apperr.Storage("save highlight", err)
	}
	return id, nil
}

// ListHighlights returns up to HighlightListLimit matching highlights in
// creation order.
func (s *Service) ListHighlights(ctx context.Context, filter HighlightFilter) ([]entities.UserHighlight, error) {
	items, err := s.highlights.ListHighlights(ctx, filter, HighlightListLimit)
	if err != nil {
		return nil, apperr.Storage("list highlights", err)
	}
	if items == nil {
		items = []entities.UserHighlight{}
	}
	return items, nil
}
