package tools

import (
	"regexp"
	"strings"
	"time"
)

// Per-category cache TTLs. Live scores go stale fastest; the daily list
// tolerates a couple of minutes of drift.
const (
	dailyTTL    = 120 * time.Second
	liveTTL     = 30 * time.Second
	specificTTL = 10 * time.Second
	newsTTL     = 10 * time.Second
)

// Cached responses carry a visible marker so users know the data may lag.
const (
	cachedSuffix     = "\n*(cached — updated recently)*"
	cachedNewsSuffix = "\n*(cached news — updated recently)*"
)

const maxNormalizedLen = 100

var punctRe = regexp.MustCompile(`[^\w\s]`)

// NormalizeQuery reduces a user query to its cache-key form: lowercase,
// punctuation stripped, whitespace collapsed to single spaces, bounded
// length. Equal queries up to case, punctuation and spacing normalize to
// the same string.
func NormalizeQuery(query string) string {
	normalized := punctRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(query)), "")
	normalized = strings.Join(strings.Fields(normalized), " ")
	if len(normalized) > maxNormalizedLen {
		normalized = normalized[:maxNormalizedLen]
	}
	return normalized
}

// DailyKey is the cache key for the daily scoreboard, one per calendar day.
func DailyKey(day time.Time) string {
	return "cricket:daily:" + day.Format("20060102")
}

// LiveKey is the single cache key for the live scoreboard.
func LiveKey() string {
	return "cricket:live:current"
}

// SpecificKey derives the specific-match cache key from the query alone.
func SpecificKey(query string) string {
	return "cricket:specific:" + keySlug(query)
}

// NewsKey derives the web-search cache key from the query alone.
func NewsKey(query string) string {
	return "cricket:news:" + keySlug(query)
}

func keySlug(query string) string {
	return strings.ReplaceAll(NormalizeQuery(query), " ", "_")
}
