package entities

import "time"

// DefaultHighlightColor is used when a highlight is saved without a color.
const DefaultHighlightColor = "yellow"

// UserWord is a vocabulary word a user saved while reading, one row per
// normalized spelling per book.
type UserWord struct {
	ID           string        `gorm:"primaryKey;size:512" json:"id"`
	UID          string        `gorm:"index:idx_user_words_lookup;size:128" json:"uid"`
	BookID       string        `gorm:"index:idx_user_words_lookup;size:128" json:"bookId"`
	TrackID      *string       `gorm:"size:128" json:"trackId"`
	Normalized   string        `gorm:"size:256" json:"normalized"`
	Word         string        `gorm:"size:256" json:"word"`
	SegmentIndex *int          `json:"segmentIndex,omitempty"`
	Contexts     []WordContext `gorm:"foreignKey:WordID" json:"contexts,omitempty"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `gorm:"index" json:"updatedAt"`
}

func (UserWord) TableName() string {
	return "user_words"
}

// WordContext is a sentence the word was seen in.
type WordContext struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	WordID    string `gorm:"index;size:512" json:"-"`
	Text      string `gorm:"type:text" json:"text"`
	CreatedAt string `gorm:"size:40" json:"createdAt"`
}

func (WordContext) TableName() string {
	return "user_word_contexts"
}

// UserHighlight is a passage a user marked. Highlights are append-only.
type UserHighlight struct {
	ID           string    `gorm:"primaryKey;size:64" json:"id"`
	UID          string    `gorm:"index:idx_user_highlights_lookup;size:128" json:"uid"`
	BookID       string    `gorm:"index:idx_user_highlights_lookup;size:128" json:"bookId"`
	TrackID      *string   `gorm:"size:128" json:"trackId"`
	SegmentIndex *int      `json:"segmentIndex"`
	HighlightID  string    `gorm:"size:64" json:"highlightId"`
	Text         string    `gorm:"type:text" json:"text"`
	Color        string    `gorm:"size:32" json:"color"`
	CreatedAt    time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (UserHighlight) TableName() string {
	return "user_highlights"
}

// UserInsight is the single note a user keeps for one segment of a track.
type UserInsight struct {
	ID           string    `gorm:"primaryKey;size:512" json:"id"`
	UID          string    `gorm:"index:idx_user_insights_lookup;size:128" json:"uid"`
	BookID       string    `gorm:"index:idx_user_insights_lookup;size:128" json:"bookId"`
	TrackID      *string   `gorm:"size:128" json:"trackId"`
	SegmentIndex int       `json:"segmentIndex"`
	Note         string    `gorm:"type:text" json:"note"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (UserInsight) TableName() string {
	return "user_insights"
}
