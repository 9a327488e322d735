package content

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readingtracker/internal/apperr"
	"github.com/mrlokans/readingtracker/internal/entities"
)

type fakeStore struct {
	segments map[string]*entities.BookSegment
	err      error
}

func (f *fakeStore) GetSegment(_ context.Context, bookID string, segmentIndex int) (*entities.BookSegment, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.segments[entities.BookSegmentID(bookID, segmentIndex)], nil
}

func TestGetSegment(t *testing.T) {
	store := &fakeStore{segments: map[string]*entities.BookSegment{
		"little-women_2": {
			BookID:           "little-women",
			SegmentIndex:     2,
			Title:            "Part 2",
			Paragraphs:       []string{"Christmas won't be Christmas without any presents.", "It's so dreadful to be poor!"},
			EstimatedMinutes: 20,
		},
	}}
	track := "t1"

	segment, err := NewService(store).GetSegment(context.Background(), "little-women", 2, &track)
	require.NoError(t, err)
	assert.Equal(t, "little-women", segment.BookID)
	assert.Equal(t, &track, segment.TrackID)
	assert.Equal(t, 2, segment.SegmentIndex)
	assert.Equal(t, "Part 2", segment.Title)
	assert.Len(t, segment.Paragraphs, 2)
	assert.Equal(t, 20, segment.EstimatedMinutes)
}

func TestGetSegment_Defaults(t *testing.T) {
	store := &fakeStore{segments: map[string]*entities.BookSegment{
		"little-women_7": {BookID: "little-women", SegmentIndex: 7},
	}}

	segment, err := NewService(store).GetSegment(context.Background(), "little-women", 7, nil)
	require.NoError(t, err)
	assert.Nil(t, segment.TrackID)
	assert.Equal(t, "Part 7", segment.Title)
	assert.NotNil(t, segment.Paragraphs)
	assert.Empty(t, segment.Paragraphs)
	assert.Equal(t, DefaultEstimatedMinutes, segment.EstimatedMinutes)
}

func TestGetSegment_NotFound(t *testing.T) {
	_, err := NewService(&fakeStore{}).GetSegment(context.Background(), "little-women", 1, nil)

	require.Error(t, err)
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "little-women", notFound.Context["bookId"])
	assert.Equal(t, 1, notFound.Context["segmentIndex"])
}

func TestSegmentNotFound_KeepsRequestedNumber(t *testing.T) {
	var notFound *apperr.NotFoundError
	require.ErrorAs(t, SegmentNotFound("little-women", 1.5), &notFound)

	assert.Equal(t, "Segment text not found", notFound.Message)
	assert.Equal(t, 1.5, notFound.Context["segmentIndex"])
}

func TestGetSegment_Validation(t *testing.T) {
	svc := NewService(&fakeStore{})

	_, err := svc.GetSegment(context.Background(), "", 1, nil)
	assert.True(t, apperr.IsValidation(err))

	_, err = svc.GetSegment(context.Background(), "little-women", 0, nil)
	assert.True(t, apperr.IsValidation(err))
	assert.EqualError(t, err, ErrSegmentIndexRange)

	_, err = svc.GetSegment(context.Background(), "little-women", -3, nil)
	assert.True(t, apperr.IsValidation(err))
}

func TestGetSegment_StorageError(t *testing.T) {
	_, err := NewService(&fakeStore{err: errors.New("unavailable")}).GetSegment(context.Background(), "little-women", 1, nil)
	assert.True(t, apperr.IsStorage(err))
}
