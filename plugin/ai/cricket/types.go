// Package cricket holds the domain model shared by the source tools:
// match records reconstructed from the live-score provider, search hits from
// the web-search provider, the fuzzy record matcher, the text cleaner, and
// the markdown response formatter.
package cricket

import "fmt"

// MatchRecord is one cricket match reconstructed from provider JSON.
// Records are transient: they live only between a provider call and the
// cache entry the rendered response is written to.
type MatchRecord struct {
	StageName      string
	SeriesName     string
	MatchName      string
	Team1Name      string
	Team1ShortName string
	Team2Name      string
	Team2ShortName string
	// Score1 and Score2 are pre-rendered "<runs>/<wickets> (<overs>)"
	// strings with "?" for fields the provider omitted.
	Score1     string
	Score2     string
	Status     string
	ResultText string
}

// Stage groups the records of one tournament stage, in provider order.
type Stage struct {
	Name    string
	Records []MatchRecord
}

// SearchHit is one result from the web-search provider.
type SearchHit struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// FormatScore renders a score string from its parts. Empty parts come out
// as the "?" placeholder the provider contract requires.
func FormatScore(runs, wickets, overs string) string {
	return fmt.Sprintf("%s/%s (%s)", orPlaceholder(runs), orPlaceholder(wickets), orPlaceholder(overs))
}

func orPlaceholder(s string) string {
	if s == "" {
		return "?"
	}
	return s
}
