package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple", "Shoes", "shoes"},
		{"spaces", "Summer Sale", "summer-sale"},
		{"punctuation", "Ben & Jerry's", "ben-jerry-s"},
		{"multiple_separators", "a -- b", "a-b"},
		{"leading_trailing", "  Hello  ", "hello"},
		{"numbers", "Top 10 Picks", "top-10-picks"},
		{"unicode_dropped", "Café Crème", "caf-cr-me"},
		{"empty", "", ""},
		{"only_symbols", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slugify(tt.input))
		})
	}
}

func TestSlugSuffix(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s := SlugSuffix()
		assert.Len(t, s, 8)
		assert.False(t, seen[s], "duplicate suffix: %s", s)
		seen[s] = true
	}
}
