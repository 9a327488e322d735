// Package importer turns plain-text books into stored reading segments.
//
// A book file is split on blank lines into paragraphs, the paragraphs are
// partitioned into a fixed number of contiguous segments, and the book row
// plus every segment are written in one transaction:
//
//	imp := importer.New(segmentsRepo, log)
//	result, err := imp.ImportBook(ctx, source)
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mrlokans/readingtracker/internal/catalog"
	"github.com/mrlokans/readingtracker/internal/entities"
	"github.com/mrlokans/readingtracker/internal/logger"
)

// SegmentMinutes is the reading estimate stored with every imported segment.
const SegmentMinutes = 15

var ErrNoSegments = errors.New("no segments created, check the input text")

// Store persists an imported book.
type Store interface {
	SaveBook(ctx context.Context, book *entities.BookRecord, segments []entities.BookSegment) error
}

// Source describes one book to import.
type Source struct {
	BookID        string
	Title         string
	Author        string
	Level         string
	TotalSegments int
	FilePath      string
}

type Result struct {
	BookID     string
	Paragraphs int
	Segments   int
}

type Importer struct {
	store Store
	log   *logger.Logger
	now   func() time.Time
}

func New(store Store, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{store: store, log: log, now: time.Now}
}

// Prepare reads and splits the source without writing anything.
func (i *Importer) Prepare(src Source) (*entities.BookRecord, []entities.BookSegment, int, error) {
	raw, err := os.ReadFile(src.FilePath)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("read %s: %w", src.FilePath, err)
	}

	paragraphs := SplitParagraphs(string(raw))
	parts := SplitSegments(paragraphs, src.TotalSegments)
	if len(parts) == 0 {
		return nil, nil, len(paragraphs), fmt.Errorf("%s: %w", src.BookID, ErrNoSegments)
	}

	now := i.now().UTC()
	book := &entities.BookRecord{
		ID:            src.BookID,
		Title:         src.Title,
		Author:        src.Author,
		Level:         src.Level,
		TotalSegments: len(parts),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	segments := make([]entities.BookSegment, len(parts))
	for idx, part := range parts {
		segmentIndex := idx + 1
		segments[idx] = entities.BookSegment{
			ID:               entities.BookSegmentID(src.BookID, segmentIndex),
			BookID:           src.BookID,
			SegmentIndex:     segmentIndex,
			Title:            fmt.Sprintf("Part %d", segmentIndex),
			Paragraphs:       part,
			EstimatedMinutes: SegmentMinutes,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
	}

	return book, segments, len(paragraphs), nil
}

// ImportBook reads, splits and stores one book. Nothing is written when the
// file is missing or yields no segments.
func (i *Importer) ImportBook(ctx context.Context, src Source) (Result, error) {
	i.log.Info("Importing book", "book_id", src.BookID, "file", src.FilePath)

	book, segments, paragraphs, err := i.Prepare(src)
	if err != nil {
		return Result{BookID: src.BookID, Paragraphs: paragraphs}, err
	}

	if err := i.store.SaveBook(ctx, book, segments); err != nil {
		return Result{BookID: src.BookID, Paragraphs: paragraphs}, fmt.Errorf("save %s: %w", src.BookID, err)
	}

	i.log.Info("Imported book", "book_id", src.BookID, "paragraphs", paragraphs, "segments", len(segments))
	return Result{BookID: src.BookID, Paragraphs: paragraphs, Segments: len(segments)}, nil
}

// SourcesFromCatalog builds one import source per catalog book, reading
// texts from textsDir.
func SourcesFromCatalog(c catalog.Catalog, textsDir string, totalSegments int) []Source {
	books := c.All()
	sources := make([]Source, 0, len(books))
	for _, b := range books {
		sources = append(sources, SourceForBook(b, textsDir, totalSegments))
	}
	return sources
}

func SourceForBook(b catalog.Book, textsDir string, totalSegments int) Source {
	return Source{
		BookID:        b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Level:         string(b.Level),
		TotalSegments: totalSegments,
		FilePath:      filepath.Join(textsDir, b.TextFile),
	}
}
