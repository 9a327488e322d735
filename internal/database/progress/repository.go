// Package progress provides database operations for completion records and
// daily study logs.
//
// This package implements the Store interface defined in internal/progress.
//
// # Interface Implementation
//
//	var _ progress.Store = (*Repository)(nil)
//
// # Usage
//
//	repo := progress.NewRepository(db)
//	err := repo.IncrementStudyLog(ctx, "demo-user", "2024-02-03", 12, time.Now())
package progress

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/readingtracker/internal/entities"
	tracker "github.com/mrlokans/readingtracker/internal/progress"
)

var _ tracker.Store = (*Repository)(nil)

// Repository handles user_progress and study_logs.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new progress repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// UpsertProgress inserts the record or overwrites the fields of the existing
// row with the same id.
func (r *Repository) UpsertProgress(ctx context.Context, record *entities.ProgressRecord) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"uid", "book_id", "track_id", "segment_index",
			"status", "completed_at", "time_spent_minutes",
		}),
	}).Create(record).Error
}

// IncrementStudyLog adds one completed segment and the given minutes to the
// log of (uid, date). The increment runs inside the upsert statement, so
// concurrent completions never lose an update.
func (r *Repository) IncrementStudyLog(ctx context.Context, uid, date string, minutes float64, at time.Time) error {
	log := &entities.StudyLog{
		ID:                     entities.StudyLogID(uid, date),
		UID:                    uid,
		Date:                   date,
		UpdatedAt:              at,
		TotalSegmentsCompleted: 1,
		TotalStudyMinutes:      minutes,
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"updated_at":               at,
			"total_segments_completed": gorm.Expr("total_segments_completed + ?", 1),
			"total_study_minutes":      gorm.Expr("total_study_minutes + ?", minutes),
		}),
	}).Create(log).Error
}

// GetProgress returns the record with the given id, or nil when absent.
func (r *Repository) GetProgress(ctx context.Context, id string) (*entities.ProgressRecord, error) {
	var record entities.ProgressRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&record).Error
	if err != nil {
		return nil, err
	}
	if record.ID == "" {
		return nil, nil
	}
	return &record, nil
}

// ListDone returns every done record of one user's book track.
func (r *Repository) ListDone(ctx context.Context, uid, bookID, trackID string) ([]entities.ProgressRecord, error) {
	var records []entities.ProgressRecord
	err := r.db.WithContext(ctx).
		Where("uid = ? AND book_id = ? AND track_id = ? AND status = ?",
			uid, bookID, trackID, entities.ProgressStatusDone).
		Find(&records).Error
	return records, err
}

// GetStudyLog returns the log of (uid, date), or nil when absent.
func (r *Repository) GetStudyLog(ctx context.Context, uid, date string) (*entities.StudyLog, error) {
	var log entities.StudyLog
	err := r.db.WithContext(ctx).Where("id = ?", entities.StudyLogID(uid, date)).Limit(1).Find(&log).Error
	if err != nil {
		return nil, err
	}
	if log.ID == "" {
		return nil, nil
	}
	return &log, nil
}

// ListStudyLogs returns the user's logs with from <= date <= to, oldest first.
func (r *Repository) ListStudyLogs(ctx context.Context, uid, from, to string) ([]entities.StudyLog, error) {
	var logs []entities.StudyLog
	err := r.db.WithContext(ctx).
		Where("uid = ? AND date >= ? AND date <= ?", uid, from, to).
		Order("date ASC").
		Find(&logs).Error
	return logs, err
}
