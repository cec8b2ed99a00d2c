package cricket

import (
	"regexp"
	"strings"
)

// Cleaning patterns, compiled once. The passes remove only recognized noise
// (markup, table junk, UI boilerplate); scores, player names, and meaningful
// sentences survive untouched.
var (
	tagRe       = regexp.MustCompile(`<[^>]+>`)
	tableRowRe  = regexp.MustCompile(`(?m)^\s*\|[\s\-|:]+.*\|.*\|.*$`)
	pipeRunRe   = regexp.MustCompile(`\|[\s\-|:]*\|`)
	separatorRe = regexp.MustCompile(`[-=•*]{5,}`)

	// Non-content UI phrases: navigation chrome, ads, cookie/privacy
	// notices, calls-to-action. Word-bounded so partial words in real
	// content are never clipped.
	boilerplateRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:advertisement|ads|promoted|skip to content|skip navigation|share this|trending now|related articles|also read|sign up|subscribe|newsletter|cookie policy|privacy policy|terms of use|disclaimer|follow us|social media|sign in|register|navigation|footer|sidebar|copyright|all rights reserved|dark mode|light mode|share icon|liveblog|placeholder)\b`),
		regexp.MustCompile(`(?i)\b(?:read more|watch video|watch now|watch live|live stream|stream now|click here|tap here|download app|install now|view full coverage|more details|source link|original article|leave a reply|comments)\b`),
	}

	spaceRunRe   = regexp.MustCompile(`[ \t]{3,}`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

// CleanText strips markup, table junk, and UI boilerplate from raw provider
// text while keeping scores, names, and sentences intact. Paragraph breaks
// are preserved as exactly one blank line.
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	text = tagRe.ReplaceAllString(text, "")

	text = tableRowRe.ReplaceAllString(text, "")
	text = pipeRunRe.ReplaceAllString(text, " ")

	text = separatorRe.ReplaceAllString(text, "")

	for _, re := range boilerplateRes {
		text = re.ReplaceAllString(text, "")
	}

	text = spaceRunRe.ReplaceAllString(text, " ")
	text = newlineRunRe.ReplaceAllString(text, "\n\n")

	return strings.TrimSpace(text)
}
