package segments

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/readingtracker/internal/entities"
)

func setupTestDB(t *testing.T) (*Repository, func()) {
	dbPath := filepath.Join(t.TempDir(), "segments.db")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(&entities.BookRecord{}, &entities.BookSegment{})
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	}

	return NewRepository(db), cleanup
}

func testBook(segments int, at time.Time) (*entities.BookRecord, []entities.BookSegment) {
	book := &entities.BookRecord{
		ID:            "little-women",
		Title:         "Little Women",
		Author:        "Louisa May Alcott",
		Level:         "Intermediate",
		TotalSegments: segments,
		CreatedAt:     at,
		UpdatedAt:     at,
	}
	out := make([]entities.BookSegment, segments)
	for i := range out {
		idx := i + 1
		out[i] = entities.BookSegment{
			ID:               entities.BookSegmentID(book.ID, idx),
			BookID:           book.ID,
			SegmentIndex:     idx,
			Title:            "Part",
			Paragraphs:       []string{"first paragraph", "second paragraph"},
			EstimatedMinutes: 15,
			CreatedAt:        at,
			UpdatedAt:        at,
		}
	}
	return book, out
}

func TestRepository_SaveBookAndGetSegment(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	book, segs := testBook(3, time.Now().UTC())
	require.NoError(t, repo.SaveBook(ctx, book, segs))

	segment, err := repo.GetSegment(ctx, "little-women", 2)
	require.NoError(t, err)
	require.NotNil(t, segment)
	assert.Equal(t, "little-women_2", segment.ID)
	assert.Equal(t, 2, segment.SegmentIndex)
	assert.Equal(t, []string{"first paragraph", "second paragraph"}, []string(segment.Paragraphs))

	stored, err := repo.GetBook(ctx, "little-women")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, 3, stored.TotalSegments)
}

func TestRepository_GetSegment_Absent(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()

	segment, err := repo.GetSegment(context.Background(), "little-women", 1)
	require.NoError(t, err)
	assert.Nil(t, segment)

	book, err := repo.GetBook(context.Background(), "little-women")
	require.NoError(t, err)
	assert.Nil(t, book)
}

func TestRepository_SaveBook_Reimport(t *testing.T) {
	repo, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	firstAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	book, segs := testBook(5, firstAt)
	require.NoError(t, repo.SaveBook(ctx, book, segs))

	secondAt := firstAt.Add(48 * time.Hour)
	book, segs = testBook(3, secondAt)
	segs[0].Paragraphs = []string{"rewritten"}
	require.NoError(t, repo.SaveBook(ctx, book, segs))

	count, err := repo.CountSegments(ctx, "little-women")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	segment, err := repo.GetSegment(ctx, "little-women", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"rewritten"}, []string(segment.Paragraphs))
	assert.True(t, segment.CreatedAt.Equal(firstAt))
	assert.True(t, segment.UpdatedAt.Equal(secondAt))

	gone, err := repo.GetSegment(ctx, "little-women", 5)
	require.NoError(t, err)
	assert.Nil(t, gone)

	stored, err := repo.GetBook(ctx, "little-women")
	require.NoError(t, err)
	assert.Equal(t, 3, stored.TotalSegments)
	assert.True(t, stored.CreatedAt.Equal(firstAt))
}
