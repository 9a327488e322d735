// Package highlights provides database operations for highlighted passages.
//
// This package implements the HighlightStore interface defined in
// internal/annotations.
//
//	var _ annotations.HighlightStore = (*Repository)(nil)
package highlights

import (
	"context"

	"gorm.io/gorm"

	"github.com/mrlokans/readingtracker/internal/annotations"
	"github.com/mrlokans/readingtracker/internal/entities"
)

var _ annotations.HighlightStore = (*Repository)(nil)

// Repository handles user_highlights. Rows are never updated.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new highlights repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateHighlight inserts a new highlight.
func (r *Repository) CreateHighlight(ctx context.Context, highlight *entities.UserHighlight) error {
	return r.db.WithContext(ctx).Create(highlight).Error
}

// ListHighlights returns up to limit highlights matching every set filter
// field, oldest first.
func (r *Repository) ListHighlights(ctx context.Context, filter annotations.HighlightFilter, limit int) ([]entities.UserHighlight, error) {
	query := r.db.WithContext(ctx).Where("uid = ?", filter.UID)
	if filter.BookID != "" {
		query = query.Where("book_id = ?", filter.BookID)
	}
	if filter.TrackID != "" {
		query = query.Where("track_id = ?", filter.TrackID)
	}
	if filter.SegmentIndex != nil {
		query = query.Where("segment_index = ?", *filter.SegmentIndex)
	}

	var items []entities.UserHighlight
	err := query.Order("created_at ASC").Order("id ASC").Limit(limit).Find(&items).Error
	return items, err
}
