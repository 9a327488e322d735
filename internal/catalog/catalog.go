// Package catalog holds the static list of books available for reading.
package catalog

import "github.com/samber/lo"

type Level string

const (
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// DefaultBookID is used by the reading plan when no book is requested.
const DefaultBookID = "little-women"

type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Level         Level    `json:"level"`
	TotalChapters int      `json:"totalChapters"`
	Tags          []string `json:"tags"`

	// TextFile is the plain-text source file name inside the texts directory.
	TextFile string `json:"-"`
}

// Catalog is an immutable, ordered set of books.
type Catalog struct {
	books []Book
}

// New returns a catalog over a copy of books.
func New(books []Book) Catalog {
	return Catalog{books: append([]Book(nil), books...)}
}

// Default returns the built-in catalog of classics.
func Default() Catalog {
	return New([]Book{
		{
			ID:            "little-women",
			Title:         "Little Women",
			Author:        "Louisa May Alcott",
			Level:         LevelIntermediate,
			TotalChapters: 30,
			Tags:          []string{"Classic", "Family", "Coming-of-age"},
			TextFile:      "little_women.txt",
		},
		{
			ID:            "anne-of-green-gables",
			Title:         "Anne of Green Gables",
			Author:        "L. M. Montgomery",
			Level:         LevelIntermediate,
			TotalChapters: 30,
			Tags:          []string{"Classic", "Children", "School"},
			TextFile:      "anne-of-green-gables.txt",
		},
	})
}

// All returns the books in catalog order. The slice is a copy.
func (c Catalog) All() []Book {
	return append([]Book(nil), c.books...)
}

// Find looks a book up by id.
func (c Catalog) Find(id string) (Book, bool) {
	return lo.Find(c.books, func(b Book) bool {
		return b.ID == id
	})
}

func (c Catalog) Len() int {
	return len(c.books)
}
