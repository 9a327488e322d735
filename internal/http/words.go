package http

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingtracker/internal/annotations"
	"github.com/mrlokans/readingtracker/internal/entities"
	"github.com/mrlokans/readingtracker/internal/logger"
)

// WordService saves and lists vocabulary.
type WordService interface {
	SaveWord(ctx context.Context, uid string, in annotations.SaveWordInput) (string, error)
	ListWords(ctx context.Context, uid, bookID string) ([]entities.UserWord, error)
}

type WordsController struct {
	service WordService
	log     *logger.Logger
}

func NewWordsController(service WordService, log *logger.Logger) *WordsController {
	return &WordsController{service: service, log: log}
}

// SaveWord stores a word the reader looked up
// POST /words
func (wc *WordsController) SaveWord(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}

	segmentIndex, err := body.IndexPtr("segmentIndex")
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	normalized, err := wc.service.SaveWord(c.Request.Context(), GetUserID(c), annotations.SaveWordInput{
		BookID:       body.String("bookId"),
		Word:         body.String("word"),
		TrackID:      body.String("trackId"),
		SegmentIndex: segmentIndex,
		ContextText:  body.String("contextText"),
	})
	if err != nil {
		respondServiceError(c, wc.log, err, "/words (POST)", "Failed to save the word")
		return
	}

	respondOK(c, gin.H{
		"message": "Word saved.",
		"word":    normalized,
	})
}

// ListWords returns the reader's saved words
// GET /words?bookId=...
func (wc *WordsController) ListWords(c *gin.Context) {
	items, err := wc.service.ListWords(c.Request.Context(), GetUserID(c), c.Query("bookId"))
	if err != nil {
		respondServiceError(c, wc.log, err, "/words (GET)", "Failed to load saved words")
		return
	}

	respondOK(c, gin.H{
		"count": len(items),
		"items": items,
	})
}
