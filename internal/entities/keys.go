package entities

import "fmt"

// DefaultTrackKey replaces an absent track id in insight keys.
const DefaultTrackKey = "default"

// Document ids are deterministic composite keys. Writing twice to the same
// key updates the existing row instead of creating a duplicate, which is what
// makes completion and note saving idempotent.

// ProgressRecordID returns "uid_bookId_trackId_segmentIndex".
func ProgressRecordID(uid, bookID, trackID string, segmentIndex int) string {
	return fmt.Sprintf("%s_%s_%s_%d", uid, bookID, trackID, segmentIndex)
}

// StudyLogID returns "uid_date" where date is YYYY-MM-DD.
func StudyLogID(uid, date string) string {
	return uid + "_" + date
}

// BookSegmentID returns "bookId_segmentIndex".
func BookSegmentID(bookID string, segmentIndex int) string {
	return fmt.Sprintf("%s_%d", bookID, segmentIndex)
}

// UserWordID returns "uid_bookId_normalized".
func UserWordID(uid, bookID, normalized string) string {
	return uid + "_" + bookID + "_" + normalized
}

// UserInsightID returns "uid_bookId_trackId_segmentIndex", using
// DefaultTrackKey when trackID is empty.
func UserInsightID(uid, bookID, trackID string, segmentIndex int) string {
	if trackID == "" {
		trackID = DefaultTrackKey
	}
	return fmt.Sprintf("%s_%s_%s_%d", uid, bookID, trackID, segmentIndex)
}
