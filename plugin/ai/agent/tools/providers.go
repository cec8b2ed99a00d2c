package tools

import (
	"context"
	"time"

	"github.com/hrygo/cricketsense/plugin/ai/cricket"
)

// ScoreProvider is the scoreboard data source consumed by the livescore
// tools. *livescore.Client satisfies it.
type ScoreProvider interface {
	ListByDate(ctx context.Context, day time.Time) ([]cricket.Stage, error)
	ListLive(ctx context.Context) ([]cricket.Stage, error)
}

// SearchProvider is the web-search data source consumed by the search tool.
// *websearch.Client satisfies it.
type SearchProvider interface {
	Search(ctx context.Context, query string) ([]cricket.SearchHit, error)
}

// errExcerpt bounds a provider error message for inclusion in tool output.
func errExcerpt(err error, maxLen int) string {
	s := err.Error()
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
