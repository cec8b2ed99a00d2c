package tools

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/cricketsense/plugin/ai/cache"
	"github.com/hrygo/cricketsense/plugin/ai/cricket"
	"github.com/hrygo/cricketsense/plugin/ai/livescore"
)

var testNow = time.Date(2026, time.September, 1, 14, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

type fakeScoreProvider struct {
	stages    []cricket.Stage
	err       error
	dateCalls int
	liveCalls int
}

func (f *fakeScoreProvider) ListByDate(_ context.Context, _ time.Time) ([]cricket.Stage, error) {
	f.dateCalls++
	return f.stages, f.err
}

func (f *fakeScoreProvider) ListLive(_ context.Context) ([]cricket.Stage, error) {
	f.liveCalls++
	return f.stages, f.err
}

type fakeSearchProvider struct {
	hits      []cricket.SearchHit
	err       error
	calls     int
	lastQuery string
}

func (f *fakeSearchProvider) Search(_ context.Context, query string) ([]cricket.SearchHit, error) {
	f.calls++
	f.lastQuery = query
	return f.hits, f.err
}

type captureTool struct {
	lastInput string
	out       string
}

func (c *captureTool) Name() string        { return "capture" }
func (c *captureTool) Description() string { return "capture" }
func (c *captureTool) Run(_ context.Context, input string) (string, error) {
	c.lastInput = input
	return c.out, nil
}

func scoreboardFixture() []cricket.Stage {
	return []cricket.Stage{
		{
			Name: "ICC T20 World Cup",
			Records: []cricket.MatchRecord{
				{
					StageName:      "ICC T20 World Cup",
					MatchName:      "India vs Australia",
					Team1Name:      "India",
					Team1ShortName: "IND",
					Team2Name:      "Australia",
					Team2ShortName: "AUS",
					Score1:         "185/4 (20)",
					Score2:         "182/8 (20)",
					Status:         "Finished",
					ResultText:     "India won by 3 runs",
				},
			},
		},
	}
}

func newDailyForTest(p ScoreProvider, store cache.CacheService) Tool {
	t := &dailyTool{provider: p, store: store, now: fixedNow}
	return NewBaseTool(NameDaily, descDaily, t.run, WithValidator(allowEmptyInput))
}

func newLiveForTest(p ScoreProvider, store cache.CacheService) Tool {
	t := &liveTool{provider: p, store: store, now: fixedNow}
	return NewBaseTool(NameLive, descLive, t.run, WithValidator(allowEmptyInput))
}

func newSpecificForTest(p ScoreProvider, store cache.CacheService, fallback Tool) Tool {
	t := &specificTool{provider: p, store: store, fallback: fallback, now: fixedNow}
	return NewBaseTool(NameSpecific, descSpecific, t.run)
}

func newSearchForTest(p SearchProvider, store cache.CacheService) Tool {
	t := &searchTool{provider: p, store: store, now: fixedNow}
	return NewBaseTool(NameSearch, descSearch, t.run)
}

func TestDailyTool_FetchesFormatsAndCaches(t *testing.T) {
	ctx := context.Background()
	provider := &fakeScoreProvider{stages: scoreboardFixture()}
	store := cache.NewMockCacheService()
	tool := newDailyForTest(provider, store)

	out, err := tool.Run(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, out, "## Today's Matches")
	assert.Contains(t, out, "**India** 185/4 (20) vs **Australia** 182/8 (20)")
	assert.NotContains(t, out, cachedSuffix)

	ttl, ok := store.TTLOf("cricket:daily:20260901")
	require.True(t, ok)
	assert.Equal(t, dailyTTL, ttl)

	// Second call is served from cache and carries the marker.
	out2, err := tool.Run(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, out+cachedSuffix, out2)
	assert.Equal(t, 1, provider.dateCalls)
}

func TestDailyTool_ExpiredEntryRefetches(t *testing.T) {
	ctx := context.Background()
	provider := &fakeScoreProvider{stages: scoreboardFixture()}
	store := cache.NewMockCacheService()
	tool := newDailyForTest(provider, store)

	_, err := tool.Run(ctx, "")
	require.NoError(t, err)
	store.Expire("cricket:daily:20260901")

	out, err := tool.Run(ctx, "")
	require.NoError(t, err)
	assert.NotContains(t, out, cachedSuffix)
	assert.Equal(t, 2, provider.dateCalls)
}

func TestDailyTool_EmptyScoreboard(t *testing.T) {
	provider := &fakeScoreProvider{}
	store := cache.NewMockCacheService()
	tool := newDailyForTest(provider, store)

	out, err := tool.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "No cricket matches found today or data was empty.", out)

	// The no-data answer is cached like any other.
	_, ok := store.TTLOf("cricket:daily:20260901")
	assert.True(t, ok)
}

func TestDailyTool_StatusError(t *testing.T) {
	provider := &fakeScoreProvider{err: &livescore.StatusError{Code: 503}}
	store := cache.NewMockCacheService()
	tool := newDailyForTest(provider, store)

	out, err := tool.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "API returned status 503. No match data available.", out)
	assert.Equal(t, 1, store.Size())
}

func TestDailyTool_TransportErrorNotCached(t *testing.T) {
	provider := &fakeScoreProvider{err: errors.New("connection refused")}
	store := cache.NewMockCacheService()
	tool := newDailyForTest(provider, store)

	out, err := tool.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "livescore6_daily failed: connection refused", out)
	assert.Equal(t, 0, store.Size())
}

func TestLiveTool_FetchesAndCaches(t *testing.T) {
	ctx := context.Background()
	provider := &fakeScoreProvider{stages: scoreboardFixture()}
	store := cache.NewMockCacheService()
	tool := newLiveForTest(provider, store)

	out, err := tool.Run(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, out, "## Currently Live Matches")

	ttl, ok := store.TTLOf("cricket:live:current")
	require.True(t, ok)
	assert.Equal(t, liveTTL, ttl)

	out2, err := tool.Run(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, out+cachedSuffix, out2)
	assert.Equal(t, 1, provider.liveCalls)
}

func TestLiveTool_EmptyScoreboard(t *testing.T) {
	tool := newLiveForTest(&fakeScoreProvider{}, cache.NewMockCacheService())

	out, err := tool.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "No live cricket matches right now.", out)
}

func TestLiveTool_StatusError(t *testing.T) {
	tool := newLiveForTest(&fakeScoreProvider{err: &livescore.StatusError{Code: 429}}, cache.NewMockCacheService())

	out, err := tool.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "API returned status 429. No live data.", out)
}

func TestSpecificTool_MatchFound(t *testing.T) {
	ctx := context.Background()
	provider := &fakeScoreProvider{stages: scoreboardFixture()}
	store := cache.NewMockCacheService()
	fallback := &captureTool{out: "web answer"}
	tool := newSpecificForTest(provider, store, fallback)

	out, err := tool.Run(ctx, "india vs australia score")
	require.NoError(t, err)
	assert.Contains(t, out, "# 🏏 India vs Australia")
	assert.Contains(t, out, "Result: India won by 3 runs")
	assert.Empty(t, fallback.lastInput)

	ttl, ok := store.TTLOf("cricket:specific:india_vs_australia_score")
	require.True(t, ok)
	assert.Equal(t, specificTTL, ttl)
}

func TestSpecificTool_CacheIdempotentAcrossVariants(t *testing.T) {
	ctx := context.Background()
	provider := &fakeScoreProvider{stages: scoreboardFixture()}
	store := cache.NewMockCacheService()
	tool := newSpecificForTest(provider, store, &captureTool{})

	first, err := tool.Run(ctx, "India vs Australia score")
	require.NoError(t, err)

	second, err := tool.Run(ctx, "  india VS australia, score!! ")
	require.NoError(t, err)

	assert.Equal(t, first+cachedSuffix, second)
	assert.Equal(t, 1, provider.dateCalls)
}

func TestSpecificTool_FallbackQueryVerbatim(t *testing.T) {
	provider := &fakeScoreProvider{} // empty scoreboard, nothing to match
	fallback := &captureTool{out: "web answer"}
	tool := newSpecificForTest(provider, cache.NewMockCacheService(), fallback)

	out, err := tool.Run(context.Background(), "zimbabwe vs ireland")
	require.NoError(t, err)
	assert.Equal(t, "web answer", out)
	assert.Equal(t,
		"zimbabwe vs ireland full scorecard OR detailed result OR match summary OR score OR runs wickets overs",
		fallback.lastInput)
}

func TestSpecificTool_StatusErrorFallsBackToWeb(t *testing.T) {
	provider := &fakeScoreProvider{err: &livescore.StatusError{Code: 502}}
	fallback := &captureTool{out: "web answer"}
	tool := newSpecificForTest(provider, cache.NewMockCacheService(), fallback)

	out, err := tool.Run(context.Background(), "pakistan latest match")
	require.NoError(t, err)
	assert.Equal(t, "web answer", out)
	assert.NotEmpty(t, fallback.lastInput)
}

func TestSpecificTool_TransportError(t *testing.T) {
	provider := &fakeScoreProvider{err: errors.New("dial timeout")}
	tool := newSpecificForTest(provider, cache.NewMockCacheService(), &captureTool{})

	out, err := tool.Run(context.Background(), "india score")
	require.NoError(t, err)
	assert.Equal(t, "Error fetching match details: dial timeout", out)
}

func TestSearchTool_EnhancesQueryAndCaches(t *testing.T) {
	ctx := context.Background()
	provider := &fakeSearchProvider{hits: []cricket.SearchHit{
		{Title: "Ashes latest", Content: "England lead the series.", URL: "https://example.com/ashes"},
	}}
	store := cache.NewMockCacheService()
	tool := newSearchForTest(provider, store)

	out, err := tool.Run(ctx, "ashes latest news")
	require.NoError(t, err)
	assert.Contains(t, out, "## Latest Cricket News & Updates")
	assert.Equal(t, "cricket news ashes latest news September 1, 2026", provider.lastQuery)

	ttl, ok := store.TTLOf("cricket:news:ashes_latest_news")
	require.True(t, ok)
	assert.Equal(t, newsTTL, ttl)

	out2, err := tool.Run(ctx, "Ashes latest news!")
	require.NoError(t, err)
	assert.Equal(t, out+cachedNewsSuffix, out2)
	assert.Equal(t, 1, provider.calls)
}

func TestSearchTool_ExpireRefetches(t *testing.T) {
	ctx := context.Background()
	provider := &fakeSearchProvider{hits: []cricket.SearchHit{
		{Title: "t", Content: "c", URL: "https://example.com"},
	}}
	store := cache.NewMockCacheService()
	tool := newSearchForTest(provider, store)

	_, err := tool.Run(ctx, "world cup")
	require.NoError(t, err)
	store.Expire("cricket:news:world_cup")

	_, err = tool.Run(ctx, "world cup")
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}

func TestSearchTool_NoResults(t *testing.T) {
	tool := newSearchForTest(&fakeSearchProvider{}, cache.NewMockCacheService())

	out, err := tool.Run(context.Background(), "village league final")
	require.NoError(t, err)
	assert.Equal(t, "No recent cricket information found for: **village league final**", out)
}

func TestSearchTool_ProviderError(t *testing.T) {
	tool := newSearchForTest(&fakeSearchProvider{err: errors.New("boom")}, cache.NewMockCacheService())

	out, err := tool.Run(context.Background(), "anything at all")
	require.NoError(t, err)
	assert.Equal(t, "cricket_search tool failed: boom", out)
}

func TestSearchTool_RejectsEmptyInput(t *testing.T) {
	tool := newSearchForTest(&fakeSearchProvider{}, cache.NewMockCacheService())

	_, err := tool.Run(context.Background(), "   ")
	assert.Error(t, err)
}

func TestEnhanceQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			"score words get date and score terms",
			"india vs australia score",
			"india vs australia score September 1, 2026 live score OR result",
		},
		{
			"news words get cricket news prefix",
			"squad selection for the tour",
			"cricket news squad selection for the tour September 1, 2026",
		},
		{
			"everything else gets cricket prefix",
			"ashes history",
			"cricket ashes history September 1, 2026",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EnhanceQuery(tt.query, testNow))
		})
	}
}

func TestToolRegistry(t *testing.T) {
	registry := NewToolRegistry()
	store := cache.NewMockCacheService()
	search := newSearchForTest(&fakeSearchProvider{}, store)

	require.NoError(t, registry.Register(newDailyForTest(&fakeScoreProvider{}, store)))
	require.NoError(t, registry.Register(newLiveForTest(&fakeScoreProvider{}, store)))
	require.NoError(t, registry.Register(newSpecificForTest(&fakeScoreProvider{}, store, search)))
	require.NoError(t, registry.Register(search))

	assert.Equal(t, 4, registry.Count())
	assert.Equal(t, []string{NameDaily, NameLive, NameSpecific, NameSearch}, registry.List())

	desc := registry.Describe()
	assert.Contains(t, desc, NameSpecific+": Get live or recent score")

	err := registry.Register(search)
	assert.Error(t, err, "duplicate registration must fail")

	_, ok := registry.Get(NameDaily)
	assert.True(t, ok)
	_, ok = registry.Get("unknown")
	assert.False(t, ok)
}
