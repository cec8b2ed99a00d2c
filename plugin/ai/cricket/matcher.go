package cricket

import (
	"regexp"
	"strings"
)

// Matcher scoring weights. Alias hits outweigh literal substring hits
// because a short form like "pak" resolves ambiguity that a raw substring
// match cannot.
const (
	literalWordScore = 4
	aliasWordScore   = 6

	// AcceptThreshold is the minimum score at which the best record is
	// surfaced to the user instead of falling back to web search.
	AcceptThreshold = 4
)

var wordRe = regexp.MustCompile(`\w+`)

// MatchResult is the outcome of resolving a free-text query against the
// day's records.
type MatchResult struct {
	Record *MatchRecord
	Score  int
}

// Found reports whether the matcher is confident enough to surface the record.
func (r MatchResult) Found() bool {
	return r.Record != nil && r.Score >= AcceptThreshold
}

// BestMatch scores every record in stage-then-event order against the query
// and returns the single best one. Ties keep the first-seen record, so the
// result is deterministic for a fixed query and record list.
func BestMatch(query string, stages []Stage) MatchResult {
	words := queryWords(query)
	if len(words) == 0 {
		return MatchResult{}
	}

	best := MatchResult{}
	for si := range stages {
		for ri := range stages[si].Records {
			rec := &stages[si].Records[ri]
			score := scoreRecord(words, rec)
			if score > best.Score {
				best.Record = rec
				best.Score = score
			}
		}
	}
	return best
}

// scoreRecord computes the relevance of one record for the query words.
func scoreRecord(words []string, rec *MatchRecord) int {
	combined := strings.ToLower(strings.Join([]string{
		rec.MatchName,
		rec.SeriesName,
		rec.StageName,
		rec.Team1Name,
		rec.Team2Name,
		rec.Team1ShortName,
		rec.Team2ShortName,
	}, " "))

	score := 0
	for _, word := range words {
		if strings.Contains(combined, word) {
			score += literalWordScore
		}
		for _, family := range aliasFamilies {
			if !containsString(family.Aliases, word) {
				continue
			}
			if strings.Contains(combined, family.Canonical) || anySubstring(combined, family.Aliases) {
				score += aliasWordScore
				break
			}
		}
	}
	return score
}

// queryWords tokenizes a query to deduplicated lowercase words, preserving
// first-seen order.
func queryWords(query string) []string {
	raw := wordRe.FindAllString(strings.ToLower(query), -1)
	seen := make(map[string]struct{}, len(raw))
	words := make([]string, 0, len(raw))
	for _, w := range raw {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func anySubstring(text string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(text, sub) {
			return true
		}
	}
	return false
}
