package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchSendsTavilyRequest(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"title":"India beat Australia","url":"https://example.com/a","content":"India won by 5 wickets."},
			{"title":"Match report","url":"https://example.com/b","content":"A close finish."}
		]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{
		APIKey:  "tvly-test",
		BaseURL: srv.URL,
	})

	hits, err := client.Search(context.Background(), "india vs australia result")
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "India beat Australia", hits[0].Title)
	assert.Equal(t, "https://example.com/a", hits[0].URL)
	assert.Equal(t, "India won by 5 wickets.", hits[0].Content)

	assert.Equal(t, "tvly-test", gotBody["api_key"])
	assert.Equal(t, "india vs australia result", gotBody["query"])
	assert.Equal(t, "advanced", gotBody["search_depth"])
	assert.Equal(t, float64(DefaultMaxResults), gotBody["max_results"])
}

func TestSearchEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: srv.URL})
	hits, err := client.Search(context.Background(), "obscure village match")
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestSearchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewClient(Config{APIKey: "bad", BaseURL: srv.URL})
	_, err := client.Search(context.Background(), "anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}

func TestSearchConfigDefaults(t *testing.T) {
	client := NewClient(Config{APIKey: "k", BaseURL: "http://x"})
	assert.Equal(t, "advanced", client.depth)
	assert.Equal(t, DefaultMaxResults, client.maxResults)
	assert.Equal(t, DefaultTimeout, client.httpClient.Timeout)

	client = NewClient(Config{APIKey: "k", BaseURL: "http://x", Depth: "basic", MaxResults: 3})
	assert.Equal(t, "basic", client.depth)
	assert.Equal(t, 3, client.maxResults)
}
