package progress

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/readingtracker/internal/apperr"
	"github.com/mrlokans/readingtracker/internal/entities"
)

type fakeStore struct {
	records  map[string]entities.ProgressRecord
	logs     map[string]*entities.StudyLog
	logErr   error
	listErr  error
	from, to string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records: map[string]entities.ProgressRecord{},
		logs:    map[string]*entities.StudyLog{},
	}
}

func (f *fakeStore) UpsertProgress(_ context.Context, record *entities.ProgressRecord) error {
	f.records[record.ID] = *record
	return nil
}

func (f *fakeStore) IncrementStudyLog(_ context.Context, uid, date string, minutes float64, at time.Time) error {
	if f.logErr != nil {
		return f.logErr
	}
	id := entities.StudyLogID(uid, date)
	log, ok := f.logs[id]
	if !ok {
		log = &entities.StudyLog{ID: id, UID: uid, Date: date}
		f.logs[id] = log
	}
	log.UpdatedAt = at
	log.TotalSegmentsCompleted++
	log.TotalStudyMinutes += minutes
	return nil
}

func (f *fakeStore) ListDone(_ context.Context, uid, bookID, trackID string) ([]entities.ProgressRecord, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []entities.ProgressRecord
	for _, r := range f.records {
		if r.UID == uid && r.BookID == bookID && r.TrackID == trackID && r.Status == entities.ProgressStatusDone {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) ListStudyLogs(_ context.Context, uid, from, to string) ([]entities.StudyLog, error) {
	f.from, f.to = from, to
	if f.listErr != nil {
		return nil, f.listErr
	}
	return nil, nil
}

func fixedClock(ts string) func() time.Time {
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		panic(err)
	}
	return func() time.Time { return parsed }
}

func TestRecordCompletion(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(store).WithClock(fixedClock("2024-02-03T23:30:15.123Z"))

	result, err := tracker.RecordCompletion(context.Background(), "u1", CompletionInput{
		BookID: "little-women", TrackID: "t1", SegmentIndex: 4, TimeSpentMinutes: 12,
	})
	require.NoError(t, err)
	assert.Equal(t, CompletionResult{Date: "2024-02-03", SegmentIndex: 4}, result)

	record, ok := store.records["u1_little-women_t1_4"]
	require.True(t, ok)
	assert.Equal(t, entities.ProgressStatusDone, record.Status)
	assert.Equal(t, "2024-02-03T23:30:15.123Z", record.CompletedAt)
	assert.Equal(t, 12.0, record.TimeSpentMinutes)

	log := store.logs["u1_2024-02-03"]
	require.NotNil(t, log)
	assert.Equal(t, int64(1), log.TotalSegmentsCompleted)
}

func TestRecordCompletion_UsesUTCDate(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(store).WithClock(fixedClock("2024-02-04T01:00:00+05:00"))

	result, err := tracker.RecordCompletion(context.Background(), "u1", CompletionInput{
		BookID: "little-women", TrackID: "t1", SegmentIndex: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-03", result.Date)
}

func TestRecordCompletion_IsIdempotentPerSegment(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(store).WithClock(fixedClock("2024-02-03T10:00:00Z"))
	ctx := context.Background()

	_, err := tracker.RecordCompletion(ctx, "u1", CompletionInput{BookID: "b", TrackID: "t", SegmentIndex: 2, TimeSpentMinutes: 10})
	require.NoError(t, err)

	tracker.WithClock(fixedClock("2024-02-03T11:00:00Z"))
	_, err = tracker.RecordCompletion(ctx, "u1", CompletionInput{BookID: "b", TrackID: "t", SegmentIndex: 2, TimeSpentMinutes: 7})
	require.NoError(t, err)

	assert.Len(t, store.records, 1)
	record := store.records["u1_b_t_2"]
	assert.Equal(t, 7.0, record.TimeSpentMinutes)
	assert.Equal(t, "2024-02-03T11:00:00.000Z", record.CompletedAt)

	// Counters still grow on re-completion.
	log := store.logs["u1_2024-02-03"]
	assert.Equal(t, int64(2), log.TotalSegmentsCompleted)
	assert.Equal(t, 17.0, log.TotalStudyMinutes)
}

func TestRecordCompletion_Validation(t *testing.T) {
	tests := []struct {
		name string
		in   CompletionInput
	}{
		{"missing book", CompletionInput{TrackID: "t", SegmentIndex: 1}},
		{"missing track", CompletionInput{BookID: "b", SegmentIndex: 1}},
		{"missing segment", CompletionInput{BookID: "b", TrackID: "t"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			_, err := NewTracker(store).RecordCompletion(context.Background(), "u1", tt.in)
			assert.True(t, apperr.IsValidation(err))
			assert.Empty(t, store.records)
			assert.Empty(t, store.logs)
		})
	}
}

func TestRecordCompletion_StudyLogFailureKeepsProgress(t *testing.T) {
	store := newFakeStore()
	store.logErr = errors.New("quota exceeded")
	tracker := NewTracker(store).WithClock(fixedClock("2024-02-03T10:00:00Z"))

	_, err := tracker.RecordCompletion(context.Background(), "u1", CompletionInput{
		BookID: "b", TrackID: "t", SegmentIndex: 5, TimeSpentMinutes: 3,
	})

	require.Error(t, err)
	assert.True(t, apperr.IsStorage(err))
	assert.ErrorContains(t, err, "quota exceeded")
	assert.Contains(t, store.records, "u1_b_t_5")
	assert.Empty(t, store.logs)
}

func TestSummarize(t *testing.T) {
	store := newFakeStore()
	tracker := NewTracker(store)
	ctx := context.Background()

	for _, seg := range []int{3, 11, 7} {
		_, err := tracker.RecordCompletion(ctx, "u1", CompletionInput{BookID: "b", TrackID: "t", SegmentIndex: seg})
		require.NoError(t, err)
	}
	_, err := tracker.RecordCompletion(ctx, "u1", CompletionInput{BookID: "b", TrackID: "other", SegmentIndex: 20})
	require.NoError(t, err)

	summary, err := tracker.Summarize(ctx, "u1", "b", "t")
	require.NoError(t, err)
	assert.Equal(t, 30, summary.TotalChapters)
	assert.Equal(t, 3, summary.CompletedCount)
	assert.InDelta(t, 0.1, summary.CompletionRate, 1e-9)
	require.NotNil(t, summary.LastCompletedSegment)
	assert.Equal(t, 11, *summary.LastCompletedSegment)
}

func TestSummarize_Empty(t *testing.T) {
	summary, err := NewTracker(newFakeStore()).Summarize(context.Background(), "u1", "b", "t")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.CompletedCount)
	assert.Zero(t, summary.CompletionRate)
	assert.Nil(t, summary.LastCompletedSegment)
}

func TestSummarize_Validation(t *testing.T) {
	tracker := NewTracker(newFakeStore())

	_, err := tracker.Summarize(context.Background(), "u1", "", "t")
	assert.True(t, apperr.IsValidation(err))

	_, err = tracker.Summarize(context.Background(), "u1", "b", "")
	assert.True(t, apperr.IsValidation(err))
}

func TestSummarize_StorageError(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("boom")

	_, err := NewTracker(store).Summarize(context.Background(), "u1", "b", "t")
	assert.True(t, apperr.IsStorage(err))
}

func TestCalendarForMonth(t *testing.T) {
	tests := []struct {
		name      string
		month     string
		wantMonth string
	}{
		{"explicit", "2024-02", "2024-02"},
		{"missing", "", "2025-07"},
		{"malformed", "2024-2", "2025-07"},
		{"month out of range", "2024-13", "2025-07"},
		{"trailing text", "2024-02x", "2025-07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			tracker := NewTracker(store).WithClock(fixedClock("2025-07-15T12:00:00Z"))

			cal, err := tracker.CalendarForMonth(context.Background(), "u1", tt.month)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMonth, cal.Month)
			assert.NotNil(t, cal.Items)
			assert.Empty(t, cal.Items)
			assert.Equal(t, tt.wantMonth+"-01", store.from)
			assert.Equal(t, tt.wantMonth+"-31", store.to)
		})
	}
}

func TestCalendarForMonth_StorageError(t *testing.T) {
	store := newFakeStore()
	store.listErr = errors.New("index missing")

	_, err := NewTracker(store).CalendarForMonth(context.Background(), "u1", "2024-02")
	assert.True(t, apperr.IsStorage(err))
	assert.ErrorContains(t, err, "index missing")
}
