package annotations

import (
	"context"
	"strings"

	"github.com/mrlokans/readingtracker/internal/apperr"
	"github.com/mrlokans/readingtracker/internal/entities"
)

type SaveWordInput struct {
	BookID       string
	Word         string
	TrackID      string
	SegmentIndex *int
	ContextText  string
}

// NormalizeWord trims and lowercases a word.
func NormalizeWord(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// SaveWord records a vocabulary word once per (user, book, normalized
// spelling) and returns the normalized form. Saving again updates the word
// and appends the new context sentence; identical sentences are not merged.
func (s *Service) SaveWord(ctx context.Context, uid string, in SaveWordInput) (string, error) {
	if in.BookID == "" || in.Word == "" {
		return "", apperr.Validation("bookId and word are required")
	}

	normalized := NormalizeWord(in.Word)
	if normalized == "" {
		return "", apperr.Validation("not a valid word")
	}

	now := s.now().UTC()
	word := &entities.UserWord{
		ID:           entities.UserWordID(uid, in.BookID, normalized),
		UID:          uid,
		BookID:       in.BookID,
		TrackID:      optional(in.TrackID),
		Normalized:   normalized,
		Word:         in.Word,
		SegmentIndex: in.SegmentIndex,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var entry *entities.WordContext
	if in.ContextText != "" {
		entry = &entities.WordContext{
			WordID:    word.ID,
			Text:      in.ContextText,
			CreatedAt: now.Format("2006-01-02T15:04:05.000Z07:00"),
		}
	}

	if err := s.words.SaveWord(ctx, word, entry); err != nil {
		return "", apperr.Storage("save word", err)
	}
	return normalized, nil
}

// ListWords returns up to WordListLimit of the user's words, newest first.
func (s *Service) ListWords(ctx context.Context, uid, bookID string) ([]entities.UserWord, error) {
	words, err := s.words.ListWords(ctx, uid, bookID, WordListLimit)
	if err != nil {
		return nil, apperr.Storage("list words", err)
	}
	if words == nil {
		words = []entities.UserWord{}
	}
	return words, nil
}
