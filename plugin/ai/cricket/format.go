package cricket

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Formatter limits, matching the response shape the assistant commits to.
const (
	maxSearchResults = 5
	maxSourceLines   = 4
	maxTitleLen      = 80
	maxSnippetLen    = 160
	maxEventsPerStag = 5
)

const attributionFooter = "**Sources:** LiveScore6 via RapidAPI"

// scorePatterns is a fixed two-pattern cascade for spotting an embedded
// "team runs/wickets (overs)" pair inside cleaned search content. The
// separator form runs first so "vs" never leaks into a team name.
var scorePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([A-Za-z][A-Za-z &]*?)\s+(\d+/\d+)\s*\((\d+(?:\.\d+)?)\)\s*(?:vs\.?|v/s|\|)\s*([A-Za-z][A-Za-z &]*?)\s+(\d+/\d+)\s*\((\d+(?:\.\d+)?)\)`),
	regexp.MustCompile(`(?is)([A-Za-z][A-Za-z &]*?)\s+(\d+/\d+)\s*\((\d+(?:\.\d+)?)\)[^0-9]*?([A-Za-z][A-Za-z &]*?)\s+(\d+/\d+)\s*\((\d+(?:\.\d+)?)\)`),
}

// FormatScoreBlock renders a compact two-line score block if the text holds
// a recognizable two-team score pattern. Returns false when no pattern hits.
func FormatScoreBlock(text string) (string, bool) {
	for _, p := range scorePatterns {
		m := p.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		team1, score1, overs1 := m[1], m[2], m[3]
		team2, score2, overs2 := m[4], m[5], m[6]
		block := fmt.Sprintf("**%s** %s (%s ov)  \n**%s** %s (%s ov)",
			strings.ToUpper(strings.TrimSpace(team1)), score1, overs1,
			strings.ToUpper(strings.TrimSpace(team2)), score2, overs2)
		return block, true
	}
	return "", false
}

// FormatSearchResults renders cleaned web-search hits into the markdown
// update shape: detected score blocks first, then a numbered news list,
// closing with up to four deduplicated source links.
func FormatSearchResults(hits []SearchHit, now time.Time) string {
	var scoreBlocks []string
	var items []string

	limit := len(hits)
	if limit > maxSearchResults {
		limit = maxSearchResults
	}

	for _, hit := range hits[:limit] {
		title := truncateRunes(CleanText(hit.Title), maxTitleLen)
		if title == "" {
			title = "Untitled"
		}
		content := CleanText(hit.Content)

		if block, ok := FormatScoreBlock(content); ok {
			scoreBlocks = append(scoreBlocks, block)
			continue
		}

		snippet := content
		if len([]rune(content)) > maxSnippetLen {
			snippet = strings.TrimSpace(truncateRunes(content, maxSnippetLen)) + "..."
		}
		items = append(items, fmt.Sprintf("%d. **%s**  \n   %s  \n   [Read more](%s)",
			len(items)+1, title, snippet, hit.URL))
	}

	lines := []string{calendarHeading(now)}

	if len(scoreBlocks) > 0 {
		lines = append(lines, "## Current & Recent Match Scores\n")
		lines = append(lines, scoreBlocks...)
		lines = append(lines, "")
	}

	if len(items) > 0 {
		lines = append(lines, "## Latest Cricket News & Updates\n")
		lines = append(lines, items...)
		lines = append(lines, "")
	}

	if sources := sourceLines(hits); len(sources) > 0 {
		lines = append(lines, "**Sources:**")
		lines = append(lines, sources...)
		lines = append(lines, "")
	}

	lines = append(lines, "---\n*Ask about specific matches, players, series or tournaments!* 🏏")

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// sourceLines emits up to four source links, deduplicated by URL, whether or
// not the hit was rendered as a score block.
func sourceLines(hits []SearchHit) []string {
	var lines []string
	seen := make(map[string]struct{})
	for _, hit := range hits {
		if len(lines) >= maxSourceLines {
			break
		}
		if _, ok := seen[hit.URL]; ok {
			continue
		}
		seen[hit.URL] = struct{}{}
		title := truncateRunes(CleanText(hit.Title), maxTitleLen)
		if title == "" {
			title = "Untitled"
		}
		lines = append(lines, fmt.Sprintf("%d. **%s** → [Read more](%s)", len(lines)+1, title, hit.URL))
	}
	return lines
}

// NoResultsMessage is the verbatim degradation line for an empty search.
func NoResultsMessage(query string) string {
	return fmt.Sprintf("No recent cricket information found for: **%s**", query)
}

// FormatStages renders the daily or live-only match list grouped by stage.
// Returns "" when there is nothing to show; the calling tool substitutes its
// own no-data message.
func FormatStages(stages []Stage, liveOnly bool, now time.Time) string {
	rendered := false
	lines := []string{calendarHeading(now)}

	if liveOnly {
		lines = append(lines, "## Currently Live Matches\n")
	} else {
		lines = append(lines, "## Today's Matches\n")
	}

	for _, stage := range stages {
		if len(stage.Records) == 0 {
			continue
		}
		name := stage.Name
		if name == "" {
			name = "Cricket"
		}
		lines = append(lines, fmt.Sprintf("### %s", name))

		records := stage.Records
		if len(records) > maxEventsPerStag {
			records = records[:maxEventsPerStag]
		}
		for _, rec := range records {
			lines = append(lines, fmt.Sprintf("**%s** %s vs **%s** %s",
				teamOr(rec.Team1Name, "T1"), rec.Score1, teamOr(rec.Team2Name, "T2"), rec.Score2))
			lines = append(lines, fmt.Sprintf("Status: %s", statusOr(rec.Status)))
			if rec.ResultText != "" {
				lines = append(lines, fmt.Sprintf("Result: %s", rec.ResultText))
			}
			lines = append(lines, "")
			rendered = true
		}
	}

	if !rendered {
		return ""
	}

	lines = append(lines, "---\n*Live cricket data* 🏏")
	return strings.Join(lines, "\n")
}

// FormatMatchSummary renders a single accepted match record.
func FormatMatchSummary(rec *MatchRecord) string {
	t1 := teamOr(rec.Team1Name, "Team 1")
	t2 := teamOr(rec.Team2Name, "Team 2")

	var b strings.Builder
	fmt.Fprintf(&b, "# 🏏 %s vs %s\n\n", t1, t2)
	fmt.Fprintf(&b, "**%s** %s vs **%s** %s\n", t1, rec.Score1, t2, rec.Score2)
	fmt.Fprintf(&b, "Status: *%s*\n", statusOr(rec.Status))
	if rec.ResultText != "" {
		fmt.Fprintf(&b, "Result: %s\n", rec.ResultText)
	}
	b.WriteString("\n" + attributionFooter)
	return b.String()
}

func calendarHeading(now time.Time) string {
	return fmt.Sprintf("# 🏏 Cricket Update – %s\n", now.Format("January 2, 2006"))
}

func teamOr(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

func statusOr(status string) string {
	if status == "" {
		return "N/A"
	}
	return status
}

func truncateRunes(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen])
}
