// Package annotations stores what a reader marks while reading: vocabulary
// words, highlighted passages and one note per segment.
package annotations

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/readingtracker/internal/entities"
)

// Fixed list sizes; there is no pagination.
const (
	WordListLimit      = 200
	HighlightListLimit = 500
	InsightListLimit   = 200
)

type WordStore interface {
	// SaveWord merges word into the row with the same id and, when ctxEntry
	// is not nil, appends it to the word's contexts. A nil SegmentIndex
	// leaves the stored value untouched.
	SaveWord(ctx context.Context, word *entities.UserWord, ctxEntry *entities.WordContext) error
	// ListWords returns the most recently updated words first. An empty
	// bookID matches every book.
	ListWords(ctx context.Context, uid, bookID string, limit int) ([]entities.UserWord, error)
}

// HighlightFilter narrows a highlight listing. Empty fields match everything.
type HighlightFilter struct {
	UID          string
	BookID       string
	TrackID      string
	SegmentIndex *int
}

type HighlightStore interface {
	CreateHighlight(ctx context.Context, highlight *entities.UserHighlight) error
	// ListHighlights returns matching highlights oldest first.
	ListHighlights(ctx context.Context, filter HighlightFilter, limit int) ([]entities.UserHighlight, error)
}

type InsightStore interface {
	// UpsertInsight merges note fields into the row with the same id,
	// keeping its created_at.
	UpsertInsight(ctx context.Context, insight *entities.UserInsight) error
	// GetInsight returns nil when no note exists.
	GetInsight(ctx context.Context, id string) (*entities.UserInsight, error)
	// ListInsights returns the notes of a book. An empty trackID matches
	// every track.
	ListInsights(ctx context.Context, uid, bookID, trackID string, limit int) ([]entities.UserInsight, error)
}

type Service struct {
	words      WordStore
	highlights HighlightStore
	insights   InsightStore

	now   func() time.Time
	newID func() string
}

func NewService(words WordStore, highlights HighlightStore, insights InsightStore) *Service {
	return &Service{
		words:      words,
		highlights: highlights,
		insights:   insights,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// optional maps an empty string to nil, the stored form of an absent value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
