package screening_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vrcrush/ai-interview-clone/internal/screening"
)

func TestSanitize_RemovesMarkupTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"html tag", "hello <b>world</b>", "hello world"},
		{"script tag", `<script>alert("x")</script>tell me more`, `alert("x")tell me more`},
		{"self closing", "a <br/> b", "a b"},
		{"angle fragment without close stays", "math: 1 < 2", "math: 1 < 2"},
		{"empty tag", "a <> b", "a b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, screening.Sanitize(tc.in))
		})
	}
}

func TestSanitize_CollapsesWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", screening.Sanitize("  a \t\t b \n\n c  "))
}

func TestSanitize_TruncatesLongInput(t *testing.T) {
	long := strings.Repeat("x", 5000)

	got := screening.Sanitize(long)

	assert.Len(t, got, screening.MaxMessageLength)
}

func TestSanitize_LengthBounded(t *testing.T) {
	inputs := []string{
		"",
		"short",
		strings.Repeat("word ", 1000),
		strings.Repeat("<p>", 3000) + strings.Repeat("y", 3000),
	}

	for _, in := range inputs {
		assert.LessOrEqual(t, len(screening.Sanitize(in)), screening.MaxMessageLength)
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain question about skills",
		"  spaced   out \n input ",
		"<div>markup</div> mixed <span>content</span>",
		strings.Repeat("abc ", 2000),
		strings.Repeat("<x>", 500) + strings.Repeat("long tail ", 400),
	}

	for _, in := range inputs {
		once := screening.Sanitize(in)
		assert.Equal(t, once, screening.Sanitize(once), "input %.40q", in)
	}
}
