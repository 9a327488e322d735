package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/readingtracker/internal/catalog"
	"github.com/mrlokans/readingtracker/internal/importer"
	"github.com/mrlokans/readingtracker/internal/logger"
)

const ImportBookQueue = "import_book"

// ImportBookTask splits one book's text file into segments and stores them.
type ImportBookTask struct {
	BookID        string `json:"book_id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	Level         string `json:"level"`
	FilePath      string `json:"file_path"`
	TotalSegments int    `json:"total_segments"`
}

func (t ImportBookTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        ImportBookQueue,
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

func (t ImportBookTask) Source() importer.Source {
	return importer.Source{
		BookID:        t.BookID,
		Title:         t.Title,
		Author:        t.Author,
		Level:         t.Level,
		TotalSegments: t.TotalSegments,
		FilePath:      t.FilePath,
	}
}

// NewImportBookTask builds the task for a catalog book.
func NewImportBookTask(book catalog.Book, textsDir string, totalSegments int) ImportBookTask {
	src := importer.SourceForBook(book, textsDir, totalSegments)
	return ImportBookTask{
		BookID:        src.BookID,
		Title:         src.Title,
		Author:        src.Author,
		Level:         src.Level,
		FilePath:      src.FilePath,
		TotalSegments: src.TotalSegments,
	}
}

// BookImporter is satisfied by *importer.Importer.
type BookImporter interface {
	ImportBook(ctx context.Context, src importer.Source) (importer.Result, error)
}

func ImportBookProcessor(imp BookImporter, log *logger.Logger) backlite.QueueProcessor[ImportBookTask] {
	return func(ctx context.Context, task ImportBookTask) error {
		if imp == nil {
			return fmt.Errorf("importer not configured")
		}

		result, err := imp.ImportBook(ctx, task.Source())
		if err != nil {
			return fmt.Errorf("import book %s: %w", task.BookID, err)
		}

		log.Info("Imported book from task", "book_id", result.BookID, "segments", result.Segments)
		return nil
	}
}

// NewImportBookQueue creates a backlite queue for book imports.
func NewImportBookQueue(imp BookImporter, log *logger.Logger) backlite.Queue {
	if log == nil {
		log = logger.Nop()
	}
	return backlite.NewQueue(ImportBookProcessor(imp, log))
}

// EnqueueCatalogImport adds one import task per catalog book, or only the
// book with onlyID when it is set. Returns the task ids in catalog order.
func EnqueueCatalogImport(client *Client, c catalog.Catalog, textsDir string, totalSegments int, onlyID string) ([]string, error) {
	var batch []backlite.Task
	for _, book := range c.All() {
		if onlyID != "" && book.ID != onlyID {
			continue
		}
		batch = append(batch, NewImportBookTask(book, textsDir, totalSegments))
	}
	if len(batch) == 0 {
		return nil, fmt.Errorf("unknown book: %s", onlyID)
	}
	return client.Add(batch...).Save()
}

// ImportQueue enqueues catalog imports with fixed import settings.
type ImportQueue struct {
	client        *Client
	catalog       catalog.Catalog
	textsDir      string
	totalSegments int
}

func NewImportQueue(client *Client, c catalog.Catalog, textsDir string, totalSegments int) *ImportQueue {
	return &ImportQueue{client: client, catalog: c, textsDir: textsDir, totalSegments: totalSegments}
}

// EnqueueImport enqueues every catalog book, or only bookID when set.
func (q *ImportQueue) EnqueueImport(bookID string) ([]string, error) {
	return EnqueueCatalogImport(q.client, q.catalog, q.textsDir, q.totalSegments, bookID)
}

func (q *ImportQueue) Status(ctx context.Context, taskID string) (backlite.TaskStatus, error) {
	return q.client.Status(ctx, taskID)
}
