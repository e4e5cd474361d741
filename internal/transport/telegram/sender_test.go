package telegram

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitHTML(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		maxLen int
		want   []string
	}{
		{"fits", "short", 10, []string{"short"}},
		{"splits at newline", "first line\nsecond line", 15, []string{"first line", "second line"}},
		{"hard cut without newline", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"ignores early newline", "a\nbcdefghij", 6, []string{"a\nbcde", "fghij"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitHTML(tt.text, tt.maxLen))
		})
	}
}

func TestSplitHTML_ChunksWithinLimit(t *testing.T) {
	text := strings.Repeat("<blockquote>Psalm 23</blockquote>\n", 400)
	for _, chunk := range splitHTML(text, maxTelegramMsgLen) {
		assert.LessOrEqual(t, len(chunk), maxTelegramMsgLen)
	}
}

func TestShareIndex(t *testing.T) {
	n, err := shareIndex(nil)
	assert.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = shareIndex([]string{"3"})
	assert.NoError(t, err)
	assert.Equal(t, 3, n)

	for _, bad := range []string{"0", "-2", "last"} {
		_, err = shareIndex([]string{bad})
		assert.Error(t, err, bad)
	}
}
