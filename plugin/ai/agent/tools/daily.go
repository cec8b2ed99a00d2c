package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/hrygo/cricketsense/plugin/ai/cache"
	"github.com/hrygo/cricketsense/plugin/ai/cricket"
	"github.com/hrygo/cricketsense/plugin/ai/livescore"
)

// NameDaily is the daily scoreboard tool name.
const NameDaily = "livescore6_daily"

const descDaily = "Get today's cricket matches (live, recent, upcoming, finished)."

type dailyTool struct {
	provider ScoreProvider
	store    cache.CacheService
	group    singleflight.Group
	now      func() time.Time
}

// NewDailyTool creates the daily scoreboard tool. The query argument is
// ignored; the result depends only on the calendar day.
func NewDailyTool(provider ScoreProvider, store cache.CacheService) Tool {
	t := &dailyTool{provider: provider, store: store, now: time.Now}
	return NewBaseTool(NameDaily, descDaily, t.run, WithValidator(allowEmptyInput))
}

func (t *dailyTool) run(ctx context.Context, _ string) (string, error) {
	key := DailyKey(t.now())
	if v, ok := t.store.Get(ctx, key); ok {
		slog.Debug("tool cache hit", "tool", NameDaily, "key", key)
		return v + cachedSuffix, nil
	}
	slog.Debug("tool cache miss", "tool", NameDaily, "key", key)

	v, _, _ := t.group.Do(key, func() (any, error) {
		return t.fetch(ctx, key), nil
	})
	return v.(string), nil
}

func (t *dailyTool) fetch(ctx context.Context, key string) string {
	stages, err := t.provider.ListByDate(ctx, t.now())

	var statusErr *livescore.StatusError
	switch {
	case errors.As(err, &statusErr):
		content := fmt.Sprintf("API returned status %d. No match data available.", statusErr.Code)
		_ = t.store.Set(ctx, key, content, dailyTTL)
		return content
	case err != nil:
		// Transport failures are not cached; the next call retries fresh.
		return NameDaily + " failed: " + errExcerpt(err, 300)
	}

	content := cricket.FormatStages(stages, false, t.now())
	if strings.TrimSpace(content) == "" {
		content = "No cricket matches found today or data was empty."
	}

	_ = t.store.Set(ctx, key, content, dailyTTL)
	return content
}
