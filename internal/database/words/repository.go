// Package words provides database operations for saved vocabulary.
//
// This package implements the WordStore interface defined in
// internal/annotations.
//
//	var _ annotations.WordStore = (*Repository)(nil)
package words

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/readingtracker/internal/annotations"
	"github.com/mrlokans/readingtracker/internal/entities"
)

var _ annotations.WordStore = (*Repository)(nil)

// Repository handles user_words and user_word_contexts.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new words repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveWord upserts the word row and appends the context entry in one
// transaction. created_at is kept from the first save, and segment_index is
// only overwritten when the new value is set.
func (r *Repository) SaveWord(ctx context.Context, word *entities.UserWord, entry *entities.WordContext) error {
	columns := []string{"uid", "book_id", "track_id", "normalized", "word", "updated_at"}
	if word.SegmentIndex != nil {
		columns = append(columns, "segment_index")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).Create(word).Error
		if err != nil {
			return err
		}

		if entry == nil {
			return nil
		}
		entry.WordID = word.ID
		return tx.Create(entry).Error
	})
}

// ListWords returns up to limit words, most recently updated first, with
// their contexts in insertion order.
func (r *Repository) ListWords(ctx context.Context, uid, bookID string, limit int) ([]entities.UserWord, error) {
	query := r.db.WithContext(ctx).
		Preload("Contexts", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("uid = ?", uid)
	if bookID != "" {
		query = query.Where("book_id = ?", bookID)
	}

	var words []entities.UserWord
	err := query.Order("updated_at DESC").Limit(limit).Find(&words).Error
	return words, err
}

// GetWord returns one word with its contexts, or nil when absent.
func (r *Repository) GetWord(ctx context.Context, id string) (*entities.UserWord, error) {
	var words []entities.UserWord
	err := r.db.WithContext(ctx).
		Preload("Contexts", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Where("id = ?", id).
		Limit(1).
		Find(&words).Error
	if err != nil || len(words) == 0 {
		return nil, err
	}
	return &words[0], nil
}
