package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readingtracker/internal/catalog"
	"github.com/mrlokans/readingtracker/internal/plan"
)

const bookNotFoundMessage = "Book not found"

// BooksController serves the static catalog and the plans derived from it.
type BooksController struct {
	catalog catalog.Catalog
}

func NewBooksController(c catalog.Catalog) *BooksController {
	return &BooksController{catalog: c}
}

// ListBooks returns every catalog book
// GET /books
func (bc *BooksController) ListBooks(c *gin.Context) {
	books := bc.catalog.All()
	respondOK(c, gin.H{
		"count": len(books),
		"items": books,
	})
}

// GetChapters returns the chapter list of one book
// GET /books/:id/chapters
func (bc *BooksController) GetChapters(c *gin.Context) {
	book, ok := bc.catalog.Find(c.Param("id"))
	if !ok {
		respondFail(c, http.StatusNotFound, bookNotFoundMessage, nil)
		return
	}

	respondOK(c, gin.H{
		"book":     book,
		"chapters": plan.BuildChapters(book),
	})
}

// GetReadingPlan splits a book into weekly sessions
// GET /reading-plan?bookId=...&sessionsPerWeek=3
func (bc *BooksController) GetReadingPlan(c *gin.Context) {
	bookID := c.Query("bookId")
	if bookID == "" {
		bookID = catalog.DefaultBookID
	}
	sessionsPerWeek := plan.ClampSessionsPerWeek(c.Query("sessionsPerWeek"))

	readingPlan, err := plan.PlanForBook(bc.catalog, bookID, sessionsPerWeek)
	if errors.Is(err, plan.ErrBookNotFound) {
		respondFail(c, http.StatusNotFound, bookNotFoundMessage, nil)
		return
	}

	respondOK(c, gin.H{"plan": readingPlan})
}
