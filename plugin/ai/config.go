package ai

import (
	"errors"

	"github.com/hrygo/cricketsense/internal/profile"
)

// Config represents AI and data-source configuration.
type Config struct {
	LLM       LLMConfig
	LiveScore LiveScoreConfig
	Search    SearchConfig
	Cache     CacheConfig
}

// LLMConfig represents LLM configuration.
type LLMConfig struct {
	Provider    string // openrouter, openai, deepseek
	Model       string // x-ai/grok-4.1-fast
	APIKey      string
	BaseURL     string
	MaxTokens   int     // default: 2048
	Temperature float32 // default: 0.7
}

// LiveScoreConfig represents the scoreboard provider configuration.
type LiveScoreConfig struct {
	APIKey  string
	Host    string
	BaseURL string
}

// SearchConfig represents the web-search provider configuration.
type SearchConfig struct {
	APIKey  string
	BaseURL string
	Depth   string // basic, advanced
}

// CacheConfig represents the response cache configuration.
type CacheConfig struct {
	Capacity int
}

// NewConfigFromProfile creates config from profile.
func NewConfigFromProfile(p *profile.Profile) *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:    p.LLMProvider,
			Model:       p.LLMModel,
			APIKey:      p.LLMAPIKey,
			BaseURL:     p.LLMBaseURL,
			MaxTokens:   2048,
			Temperature: 0.7,
		},
		LiveScore: LiveScoreConfig{
			APIKey:  p.LiveScoreAPIKey,
			Host:    p.LiveScoreHost,
			BaseURL: p.LiveScoreBaseURL,
		},
		Search: SearchConfig{
			APIKey:  p.SearchAPIKey,
			BaseURL: p.SearchBaseURL,
			Depth:   p.SearchDepth,
		},
		Cache: CacheConfig{
			Capacity: p.CacheCapacity,
		},
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.LLM.Provider == "" {
		return errors.New("LLM provider is required")
	}
	if c.LLM.APIKey == "" {
		return errors.New("LLM API key is required")
	}
	if c.LiveScore.APIKey == "" && c.Search.APIKey == "" {
		return errors.New("at least one data source (livescore or search) must be configured")
	}
	return nil
}
