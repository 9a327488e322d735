// Package plan derives chapter lists and weekly reading plans from catalog books.
package plan

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mrlokans/readingtracker/internal/catalog"
)

const (
	// ChapterMinutes is the estimated reading time of every chapter.
	ChapterMinutes = 15

	// ChaptersPerSession is fixed; every session covers one chapter.
	ChaptersPerSession = 1

	DefaultSessionsPerWeek = 3
	MinSessionsPerWeek     = 1
	MaxSessionsPerWeek     = 7
)

// ErrBookNotFound is returned when a plan is requested for an unknown book.
var ErrBookNotFound = errors.New("book not found")

type Chapter struct {
	ID               string `json:"id"`
	Index            int    `json:"index"`
	Title            string `json:"title"`
	EstimatedMinutes int    `json:"estimatedMinutes"`
}

type ReadingSession struct {
	SessionIndex int `json:"sessionIndex"`
	WeekIndex    int `json:"weekIndex"`
	ChapterStart int `json:"chapterStart"`
	ChapterEnd   int `json:"chapterEnd"`
}

type ReadingPlan struct {
	BookID          string           `json:"bookId"`
	TotalChapters   int              `json:"totalChapters"`
	SessionsPerWeek int              `json:"sessionsPerWeek"`
	TotalWeeks      int              `json:"totalWeeks"`
	Sessions        []ReadingSession `json:"sessions"`
}

// BuildChapters returns the 1-indexed chapters of a book.
func BuildChapters(book catalog.Book) []Chapter {
	chapters := make([]Chapter, 0, book.TotalChapters)
	for i := 1; i <= book.TotalChapters; i++ {
		chapters = append(chapters, Chapter{
			ID:               fmt.Sprintf("%s-ch-%d", book.ID, i),
			Index:            i,
			Title:            fmt.Sprintf("Part %d", i),
			EstimatedMinutes: ChapterMinutes,
		})
	}
	return chapters
}

// BuildReadingPlan partitions the chapters of a book into sessions and groups
// them into weeks of sessionsPerWeek sessions. Sessions tile [1, TotalChapters]
// without gaps or overlaps. sessionsPerWeek must already be clamped by the caller.
func BuildReadingPlan(book catalog.Book, sessionsPerWeek int) ReadingPlan {
	totalSessions := ceilDiv(book.TotalChapters, ChaptersPerSession)

	sessions := make([]ReadingSession, 0, totalSessions)
	currentChapter := 1
	for s := 1; s <= totalSessions; s++ {
		chapterStart := currentChapter
		chapterEnd := min(currentChapter+ChaptersPerSession-1, book.TotalChapters)

		sessions = append(sessions, ReadingSession{
			SessionIndex: s,
			WeekIndex:    ceilDiv(s, sessionsPerWeek),
			ChapterStart: chapterStart,
			ChapterEnd:   chapterEnd,
		})

		currentChapter = chapterEnd + 1
	}

	return ReadingPlan{
		BookID:          book.ID,
		TotalChapters:   book.TotalChapters,
		SessionsPerWeek: sessionsPerWeek,
		TotalWeeks:      ceilDiv(totalSessions, sessionsPerWeek),
		Sessions:        sessions,
	}
}

// PlanForBook looks the book up in the catalog and builds its plan.
func PlanForBook(c catalog.Catalog, bookID string, sessionsPerWeek int) (ReadingPlan, error) {
	book, ok := c.Find(bookID)
	if !ok {
		return ReadingPlan{}, ErrBookNotFound
	}
	return BuildReadingPlan(book, sessionsPerWeek), nil
}

// ClampSessionsPerWeek parses the leading integer of raw. Missing, zero or
// unparsable input yields DefaultSessionsPerWeek; the result is clamped to
// [MinSessionsPerWeek, MaxSessionsPerWeek].
func ClampSessionsPerWeek(raw string) int {
	n, ok := parseLeadingInt(raw)
	if !ok || n == 0 {
		n = DefaultSessionsPerWeek
	}
	return max(MinSessionsPerWeek, min(MaxSessionsPerWeek, n))
}

// parseLeadingInt reads an optionally signed run of digits after leading
// whitespace and ignores whatever follows ("5days" -> 5).
func parseLeadingInt(raw string) (int, bool) {
	s := strings.TrimLeft(raw, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// out of range: keep the sign so clamping still picks the right bound
		if s[0] == '-' {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	return n, true
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}
