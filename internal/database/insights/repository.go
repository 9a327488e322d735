// Package insights provides database operations for per-segment notes.
//
// This package implements the InsightStore interface defined in
// internal/annotations.
//
//	var _ annotations.InsightStore = (*Repository)(nil)
package insights

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/readingtracker/internal/annotations"
	"github.com/mrlokans/readingtracker/internal/entities"
)

var _ annotations.InsightStore = (*Repository)(nil)

// Repository handles user_insights.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new insights repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertInsight inserts the note or overwrites every field but created_at.
func (r *Repository) UpsertInsight(ctx context.Context, insight *entities.UserInsight) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"uid", "book_id", "track_id", "segment_index", "note", "updated_at",
		}),
	}).Create(insight).Error
}

// GetInsight returns the note with the given id, or nil when absent.
func (r *Repository) GetInsight(ctx context.Context, id string) (*entities.UserInsight, error) {
	var insight entities.UserInsight
	err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&insight).Error
	if err != nil {
		return nil, err
	}
	if insight.ID == "" {
		return nil, nil
	}
	return &insight, nil
}

// ListInsights returns up to limit notes of a book in segment order.
func (r *Repository) ListInsights(ctx context.Context, uid, bookID, trackID string, limit int) ([]entities.UserInsight, error) {
	query := r.db.WithContext(ctx).Where("uid = ? AND book_id = ?", uid, bookID)
	if trackID != "" {
		query = query.Where("track_id = ?", trackID)
	}

	var items []entities.UserInsight
	err := query.Order("segment_index ASC").Limit(limit).Find(&items).Error
	return items, err
}
