package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/TucanHome/tucan-chat-api/models"
)

func TestTruncateValidKeepsRuneBoundaries(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want string
	}{
		{"abc", 8, "abc"},
		{"abcdef", 3, "abc"},
		{"ááá", 6, "ááá"},
		{"ááá", 5, "áá"}, // cap lands mid-rune
		{"á", 1, ""},
		{"", 4, ""},
	}

	for _, tc := range cases {
		got := truncateValid(tc.in, tc.max)
		assert.Equal(t, tc.want, got, "input %q cap %d", tc.in, tc.max)
		assert.True(t, utf8.ValidString(got))
	}
}

func TestTruncateValidAtMessageCap(t *testing.T) {
	// Two-byte runes straddle the cap exactly when it is even, so use
	// an odd prefix to force the mid-rune case.
	long := "x" + strings.Repeat("ç", models.MaxMessageLength)

	got := truncateValid(long, models.MaxMessageLength)

	assert.LessOrEqual(t, len(got), models.MaxMessageLength)
	assert.True(t, utf8.ValidString(got))
}
