package importer

import (
	"regexp"
	"strings"
)

var (
	blankLines = regexp.MustCompile(`\r?\n\r?\n+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// SplitParagraphs splits plain text on blank lines. Whitespace inside a
// paragraph collapses to single spaces and empty paragraphs are dropped.
func SplitParagraphs(raw string) []string {
	if raw == "" {
		return nil
	}

	var paragraphs []string
	for _, block := range blankLines.Split(raw, -1) {
		p := strings.TrimSpace(whitespace.ReplaceAllString(block, " "))
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// SplitSegments partitions paragraphs into at most n contiguous groups of
// ceil(len/n) paragraphs. The last group may be shorter, and fewer than n
// groups come back when there are not enough paragraphs to fill them.
func SplitSegments(paragraphs []string, n int) [][]string {
	total := len(paragraphs)
	if total == 0 || n <= 0 {
		return nil
	}

	perSegment := (total + n - 1) / n

	segments := make([][]string, 0, n)
	for i := 0; i < n; i++ {
		start := i * perSegment
		end := min(start+perSegment, total)
		if start >= end {
			break
		}
		segments = append(segments, paragraphs[start:end])
	}
	return segments
}
