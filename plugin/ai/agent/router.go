package agent

import (
	"regexp"
	"strings"

	"github.com/hrygo/cricketsense/plugin/ai/agent/tools"
	"github.com/hrygo/cricketsense/plugin/ai/cricket"
)

// RouteDecision is the outcome of the deterministic pre-filter.
// An empty Tool means the query is genuinely ambiguous and the model
// decides.
type RouteDecision struct {
	Tool  string // tool to invoke directly, or ""
	Query string // query to hand the tool
	Rule  string // rule that fired, for logging
}

var (
	yearRe       = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	historicalRe = regexp.MustCompile(`\b(last|previous|past|history|winner)\b|who won|result of|final of|semi.?final`)
	liveRe       = regexp.MustCompile(`\b(live|now|currently)\b|right now|at the moment`)
	todayRe      = regexp.MustCompile(`\btoday'?s?\b`)
	matchWordRe  = regexp.MustCompile(`\b(match|matches|fixtures|games|schedule)\b`)
	versusRe     = regexp.MustCompile(`\b(vs|versus)\b|v/s`)
	routeWordRe  = regexp.MustCompile(`\w+`)
)

// ambiguousAliases are team short forms that double as ordinary English
// words; the router ignores them so "matches in December" is not read as an
// India query. The matcher still honors them once a record list is in hand.
var ambiguousAliases = map[string]bool{"in": true, "en": true}

// RouteQuery applies the deterministic pre-filter, in order: year tokens and
// historical qualifiers force web search (the scoreboard only has today's
// data); live words force the live board; a generic today's-matches question
// takes the daily board; a named team or a "teamA vs teamB" phrase takes the
// specific-match lookup, whose own fallback widens to web search when the
// scoreboard has no such match. Anything else is left to the model.
func RouteQuery(query string) RouteDecision {
	lower := strings.ToLower(strings.TrimSpace(query))
	if lower == "" {
		return RouteDecision{Query: query}
	}

	switch {
	case yearRe.MatchString(lower):
		return RouteDecision{Tool: tools.NameSearch, Query: query, Rule: "year"}
	case historicalRe.MatchString(lower):
		return RouteDecision{Tool: tools.NameSearch, Query: query, Rule: "historical"}
	case liveRe.MatchString(lower):
		return RouteDecision{Tool: tools.NameLive, Query: query, Rule: "live"}
	case todayRe.MatchString(lower) && matchWordRe.MatchString(lower) && !mentionsTeam(lower):
		return RouteDecision{Tool: tools.NameDaily, Query: query, Rule: "daily"}
	case mentionsTeam(lower) || versusRe.MatchString(lower):
		return RouteDecision{Tool: tools.NameSpecific, Query: query, Rule: "team"}
	default:
		return RouteDecision{Query: query}
	}
}

func mentionsTeam(lower string) bool {
	for _, family := range cricket.AliasFamilies() {
		if strings.Contains(lower, family.Canonical) {
			return true
		}
	}
	for _, word := range routeWordRe.FindAllString(lower, -1) {
		if ambiguousAliases[word] {
			continue
		}
		if cricket.IsTeamWord(word) {
			return true
		}
	}
	return false
}
