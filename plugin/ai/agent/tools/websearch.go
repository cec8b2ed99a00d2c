package tools

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hrygo/cricketsense/plugin/ai/cache"
	"github.com/hrygo/cricketsense/plugin/ai/cricket"
)

// NameSearch is the web-search tool name.
const NameSearch = "cricket_search"

const descSearch = "Search for real-time cricket scores, match results, news, player stats, series information."

var (
	scoreHintWords = []string{"score", "result", "live", "today", "current", "match"}
	newsHintWords  = []string{"news", "update", "headline", "squad", "selection"}
)

type searchTool struct {
	provider SearchProvider
	store    cache.CacheService
	group    singleflight.Group
	now      func() time.Time
}

// NewSearchTool creates the web-search tool.
func NewSearchTool(provider SearchProvider, store cache.CacheService) Tool {
	t := &searchTool{provider: provider, store: store, now: time.Now}
	return NewBaseTool(NameSearch, descSearch, t.run)
}

func (t *searchTool) run(ctx context.Context, query string) (string, error) {
	key := NewsKey(query)
	if v, ok := t.store.Get(ctx, key); ok {
		slog.Debug("tool cache hit", "tool", NameSearch, "key", key)
		return v + cachedNewsSuffix, nil
	}
	slog.Debug("tool cache miss", "tool", NameSearch, "key", key)

	v, _, _ := t.group.Do(key, func() (any, error) {
		return t.fetch(ctx, query, key), nil
	})
	return v.(string), nil
}

func (t *searchTool) fetch(ctx context.Context, query, key string) string {
	enhanced := EnhanceQuery(query, t.now())
	slog.Debug("web-search query", "tool", NameSearch, "query", enhanced)

	hits, err := t.provider.Search(ctx, enhanced)
	if err != nil {
		return NameSearch + " tool failed: " + errExcerpt(err, 200)
	}

	var content string
	if len(hits) == 0 {
		content = cricket.NoResultsMessage(query)
	} else {
		content = cricket.FormatSearchResults(hits, t.now())
		if strings.TrimSpace(content) == "" {
			content = "No useful information found from search."
		}
	}

	_ = t.store.Set(ctx, key, content, newsTTL)
	return content
}

// EnhanceQuery rewrites a raw query for the search provider: score-style
// questions get the current date plus score terms, news-style questions get
// a cricket-news prefix, everything else a plain cricket prefix.
func EnhanceQuery(query string, now time.Time) string {
	trimmed := strings.TrimSpace(query)
	lower := strings.ToLower(trimmed)
	day := now.Format("January 2, 2006")

	switch {
	case containsAnyHint(lower, scoreHintWords):
		return trimmed + " " + day + " live score OR result"
	case containsAnyHint(lower, newsHintWords):
		return "cricket news " + trimmed + " " + day
	default:
		return "cricket " + trimmed + " " + day
	}
}

func containsAnyHint(s string, hints []string) bool {
	for _, hint := range hints {
		if strings.Contains(s, hint) {
			return true
		}
	}
	return false
}
