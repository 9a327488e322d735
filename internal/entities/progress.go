package entities

import "time"

type ProgressStatus string

// ProgressStatusDone is the only persisted state; a record is either absent or done.
const ProgressStatusDone ProgressStatus = "done"

// ProgressRecord marks one segment of a book track as completed by a user.
type ProgressRecord struct {
	ID               string         `gorm:"primaryKey;size:512" json:"id"`
	UID              string         `gorm:"index:idx_progress_lookup;size:128" json:"uid"`
	BookID           string         `gorm:"index:idx_progress_lookup;size:128" json:"bookId"`
	TrackID          string         `gorm:"index:idx_progress_lookup;size:128" json:"trackId"`
	SegmentIndex     int            `json:"segmentIndex"`
	Status           ProgressStatus `gorm:"index;size:20" json:"status"`
	CompletedAt      string         `gorm:"size:40" json:"completedAt"` // RFC3339 with milliseconds
	TimeSpentMinutes float64        `json:"timeSpentMinutes"`
}

func (ProgressRecord) TableName() string {
	return "user_progress"
}

// StudyLog aggregates a user's study activity for one UTC day.
type StudyLog struct {
	ID                     string    `gorm:"primaryKey;size:256" json:"-"`
	UID                    string    `gorm:"index:idx_study_logs_uid_date;size:128" json:"uid"`
	Date                   string    `gorm:"index:idx_study_logs_uid_date;size:10" json:"date"`
	UpdatedAt              time.Time `gorm:"autoUpdateTime:false" json:"updatedAt"`
	TotalSegmentsCompleted int64     `json:"totalSegmentsCompleted"`
	TotalStudyMinutes      float64   `json:"totalStudyMinutes"`
}

func (StudyLog) TableName() string {
	return "study_logs"
}
