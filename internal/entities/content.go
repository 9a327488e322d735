package entities

import (
	"time"

	"gorm.io/datatypes"
)

// BookRecord is the imported metadata of a book whose text was split into segments.
type BookRecord struct {
	ID            string    `gorm:"primaryKey;size:128" json:"id"`
	Title         string    `gorm:"size:512" json:"title"`
	Author        string    `gorm:"size:256" json:"author"`
	Level         string    `gorm:"size:20" json:"level"`
	TotalSegments int       `json:"totalSegments"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (BookRecord) TableName() string {
	return "books"
}

// BookSegment holds the paragraphs of one readable part of a book.
type BookSegment struct {
	ID               string                      `gorm:"primaryKey;size:256" json:"id"`
	BookID           string                      `gorm:"index;size:128" json:"bookId"`
	SegmentIndex     int                         `json:"segmentIndex"`
	Title            string                      `gorm:"size:256" json:"title"`
	Paragraphs       datatypes.JSONSlice[string] `json:"paragraphs"`
	EstimatedMinutes int                         `json:"estimatedMinutes"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

func (BookSegment) TableName() string {
	return "book_segments"
}
