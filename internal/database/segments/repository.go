// Package segments provides database operations for imported books and their
// text segments.
//
// This package implements content.Store (read path) and importer.Store
// (write path).
//
//	var _ content.Store = (*Repository)(nil)
//	var _ importer.Store = (*Repository)(nil)
package segments

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/readingtracker/internal/content"
	"github.com/mrlokans/readingtracker/internal/entities"
	"github.com/mrlokans/readingtracker/internal/importer"
)

var (
	_ content.Store  = (*Repository)(nil)
	_ importer.Store = (*Repository)(nil)
)

const segmentBatchSize = 100

// Repository handles books and book_segments.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new segments repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetSegment returns one segment, or nil when it has not been imported.
func (r *Repository) GetSegment(ctx context.Context, bookID string, segmentIndex int) (*entities.BookSegment, error) {
	var segment entities.BookSegment
	err := r.db.WithContext(ctx).
		Where("id = ?", entities.BookSegmentID(bookID, segmentIndex)).
		Limit(1).
		Find(&segment).Error
	if err != nil {
		return nil, err
	}
	if segment.ID == "" {
		return nil, nil
	}
	return &segment, nil
}

// SaveBook writes the book row and all of its segments in one transaction.
// Existing rows are overwritten except for created_at, and segments left over
// from an earlier import with more parts are removed.
func (r *Repository) SaveBook(ctx context.Context, book *entities.BookRecord, segments []entities.BookSegment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "author", "level", "total_segments", "updated_at"}),
		}).Create(book).Error
		if err != nil {
			return err
		}

		if len(segments) > 0 {
			err = tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"book_id", "segment_index", "title", "paragraphs", "estimated_minutes", "updated_at",
				}),
			}).CreateInBatches(segments, segmentBatchSize).Error
			if err != nil {
				return err
			}
		}

		return tx.Where("book_id = ? AND segment_index > ?", book.ID, len(segments)).
			Delete(&entities.BookSegment{}).Error
	})
}

// GetBook returns the imported book row, or nil when absent.
func (r *Repository) GetBook(ctx context.Context, bookID string) (*entities.BookRecord, error) {
	var book entities.BookRecord
	err := r.db.WithContext(ctx).Where("id = ?", bookID).Limit(1).Find(&book).Error
	if err != nil {
		return nil, err
	}
	if book.ID == "" {
		return nil, nil
	}
	return &book, nil
}

// CountSegments returns how many segments are stored for a book.
func (r *Repository) CountSegments(ctx context.Context, bookID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entities.BookSegment{}).Where("book_id = ?", bookID).Count(&count).Error
	return count, err
}
