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

// NameLive is the live scoreboard tool name.
const NameLive = "livescore6_live"

const descLive = "Get only currently live cricket matches with real-time scores."

type liveTool struct {
	provider ScoreProvider
	store    cache.CacheService
	group    singleflight.Group
	now      func() time.Time
}

// NewLiveTool creates the live scoreboard tool. The query argument is
// ignored; there is one live board at any moment.
func NewLiveTool(provider ScoreProvider, store cache.CacheService) Tool {
	t := &liveTool{provider: provider, store: store, now: time.Now}
	return NewBaseTool(NameLive, descLive, t.run, WithValidator(allowEmptyInput))
}

func (t *liveTool) run(ctx context.Context, _ string) (string, error) {
	key := LiveKey()
	if v, ok := t.store.Get(ctx, key); ok {
		slog.Debug("tool cache hit", "tool", NameLive, "key", key)
		return v + cachedSuffix, nil
	}
	slog.Debug("tool cache miss", "tool", NameLive, "key", key)

	v, _, _ := t.group.Do(key, func() (any, error) {
		return t.fetch(ctx, key), nil
	})
	return v.(string), nil
}

func (t *liveTool) fetch(ctx context.Context, key string) string {
	stages, err := t.provider.ListLive(ctx)

	var statusErr *livescore.StatusError
	switch {
	case errors.As(err, &statusErr):
		content := fmt.Sprintf("API returned status %d. No live data.", statusErr.Code)
		_ = t.store.Set(ctx, key, content, liveTTL)
		return content
	case err != nil:
		return NameLive + " failed: " + errExcerpt(err, 300)
	}

	content := cricket.FormatStages(stages, true, t.now())
	if strings.TrimSpace(content) == "" {
		content = "No live cricket matches right now."
	}

	_ = t.store.Set(ctx, key, content, liveTTL)
	return content
}
