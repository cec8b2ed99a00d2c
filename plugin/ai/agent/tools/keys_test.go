package tools

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase", "India VS Australia Score", "india vs australia score"},
		{"punctuation stripped", "India vs. Australia, score!!!", "india vs australia score"},
		{"whitespace collapsed", "  india   vs\taustralia  score ", "india vs australia score"},
		{"empty", "", ""},
		{"only punctuation", "?!.,", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeQuery(tt.input))
		})
	}
}

func TestNormalizeQueryVariantsConverge(t *testing.T) {
	variants := []string{
		"Pakistan vs England score",
		"pakistan VS england score?",
		"  Pakistan vs England   score!! ",
	}
	want := NormalizeQuery(variants[0])
	for _, v := range variants {
		assert.Equal(t, want, NormalizeQuery(v), "variant %q", v)
	}
}

func TestNormalizeQueryLengthBound(t *testing.T) {
	long := strings.Repeat("a", 150)
	assert.Len(t, NormalizeQuery(long), maxNormalizedLen)
}

func TestCacheKeys(t *testing.T) {
	day := time.Date(2026, time.September, 1, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "cricket:daily:20260901", DailyKey(day))
	assert.Equal(t, "cricket:live:current", LiveKey())
	assert.Equal(t, "cricket:specific:india_vs_australia", SpecificKey("India vs Australia!"))
	assert.Equal(t, "cricket:news:ashes_latest_news", NewsKey("  Ashes latest news?? "))
}

func TestCacheKeysPureAcrossVariants(t *testing.T) {
	assert.Equal(t,
		SpecificKey("Pak vs Eng score"),
		SpecificKey("pak VS eng, score!"))
	assert.Equal(t,
		NewsKey("World Cup squad"),
		NewsKey("world cup squad..."))
}
