package tools

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hrygo/cricketsense/plugin/ai/cache"
	"github.com/hrygo/cricketsense/plugin/ai/cricket"
	"github.com/hrygo/cricketsense/plugin/ai/livescore"
)

// NameSpecific is the specific-match tool name.
const NameSpecific = "livescore6_specific"

const descSpecific = "Get live or recent score for a SPECIFIC match or team (e.g. 'India vs Australia score', 'Pakistan latest match'). Use this when user mentions a particular team or match."

// fallbackQuerySuffix widens the query when the scoreboard has no matching
// record and the lookup falls through to web search.
const fallbackQuerySuffix = " full scorecard OR detailed result OR match summary OR score OR runs wickets overs"

type specificTool struct {
	provider ScoreProvider
	store    cache.CacheService
	fallback Tool
	group    singleflight.Group
	now      func() time.Time
}

// NewSpecificTool creates the specific-match tool. fallback is the
// web-search tool invoked when the day's scoreboard has no record scoring
// at or above the match threshold.
func NewSpecificTool(provider ScoreProvider, store cache.CacheService, fallback Tool) Tool {
	t := &specificTool{provider: provider, store: store, fallback: fallback, now: time.Now}
	return NewBaseTool(NameSpecific, descSpecific, t.run)
}

func (t *specificTool) run(ctx context.Context, query string) (string, error) {
	key := SpecificKey(query)
	if v, ok := t.store.Get(ctx, key); ok {
		slog.Debug("tool cache hit", "tool", NameSpecific, "key", key)
		return v + cachedSuffix, nil
	}
	slog.Debug("tool cache miss", "tool", NameSpecific, "key", key)

	v, _, _ := t.group.Do(key, func() (any, error) {
		return t.fetch(ctx, query, key), nil
	})
	return v.(string), nil
}

func (t *specificTool) fetch(ctx context.Context, query, key string) string {
	stages, err := t.provider.ListByDate(ctx, t.now())

	var statusErr *livescore.StatusError
	switch {
	case errors.As(err, &statusErr):
		// Scoreboard unavailable; the web may still know the match.
		return t.fallbackSearch(ctx, query)
	case err != nil:
		return "Error fetching match details: " + errExcerpt(err, 200)
	}

	result := cricket.BestMatch(query, stages)
	if result.Found() {
		slog.Debug("specific match found",
			"tool", NameSpecific, "query", query, "score", result.Score)
		content := cricket.FormatMatchSummary(result.Record)
		_ = t.store.Set(ctx, key, content, specificTTL)
		return content
	}

	slog.Debug("no scoreboard match above threshold, falling back to web search",
		"tool", NameSpecific, "query", query, "best_score", result.Score)
	return t.fallbackSearch(ctx, query)
}

func (t *specificTool) fallbackSearch(ctx context.Context, query string) string {
	out, err := t.fallback.Run(ctx, query+fallbackQuerySuffix)
	if err != nil {
		return "Error fetching match details: " + errExcerpt(err, 200)
	}
	return out
}
