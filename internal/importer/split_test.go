package importer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitParagraphs(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single paragraph", "one line", []string{"one line"}},
		{
			"collapses inner whitespace",
			"  Christmas won't\nbe   Christmas\twithout presents.  ",
			[]string{"Christmas won't be Christmas without presents."},
		},
		{
			"blank line boundaries",
			"first\n\nsecond\n\n\n\nthird",
			[]string{"first", "second", "third"},
		},
		{
			"windows line endings",
			"first\r\n\r\nsecond\r\nstill second",
			[]string{"first", "second still second"},
		},
		{"only whitespace", "\n\n   \n\n\t\n\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitParagraphs(tt.raw))
		})
	}
}

func paragraphs(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("p%d", i+1)
	}
	return out
}

func TestSplitSegments(t *testing.T) {
	t.Run("even split", func(t *testing.T) {
		segments := SplitSegments(paragraphs(6), 3)
		assert.Equal(t, [][]string{{"p1", "p2"}, {"p3", "p4"}, {"p5", "p6"}}, segments)
	})

	t.Run("short trailing segment", func(t *testing.T) {
		segments := SplitSegments(paragraphs(7), 3)
		assert.Equal(t, [][]string{{"p1", "p2", "p3"}, {"p4", "p5", "p6"}, {"p7"}}, segments)
	})

	t.Run("fewer segments than requested", func(t *testing.T) {
		// Two paragraphs per segment fill only five of the six requested groups.
		segments := SplitSegments(paragraphs(10), 6)
		assert.Len(t, segments, 5)
		assert.Equal(t, []string{"p9", "p10"}, segments[4])
	})

	t.Run("more segments than paragraphs", func(t *testing.T) {
		segments := SplitSegments(paragraphs(2), 30)
		assert.Equal(t, [][]string{{"p1"}, {"p2"}}, segments)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Nil(t, SplitSegments(nil, 30))
		assert.Nil(t, SplitSegments(paragraphs(3), 0))
		assert.Nil(t, SplitSegments(paragraphs(3), -1))
	})
}

func TestSplitSegments_CoversEveryParagraphInOrder(t *testing.T) {
	for total := 1; total <= 50; total++ {
		for n := 1; n <= 35; n++ {
			input := paragraphs(total)
			var flattened []string
			for _, segment := range SplitSegments(input, n) {
				assert.NotEmpty(t, segment)
				flattened = append(flattened, segment...)
			}
			assert.Equal(t, input, flattened, "total=%d n=%d", total, n)
		}
	}
}
