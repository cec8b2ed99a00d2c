package profile

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the assistant.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Version is the current version of the assistant
	Version string

	// LLM configuration
	LLMProvider string // CRICKETSENSE_LLM_PROVIDER (default: openrouter)
	LLMModel    string // CRICKETSENSE_LLM_MODEL (default: x-ai/grok-4.1-fast)
	LLMAPIKey   string // CRICKETSENSE_LLM_API_KEY (legacy: OPENROUTER_API_KEY)
	LLMBaseURL  string // CRICKETSENSE_LLM_BASE_URL (default: https://openrouter.ai/api/v1)

	// Live-score provider configuration
	LiveScoreAPIKey  string // CRICKETSENSE_LIVESCORE_API_KEY (legacy: RAPIDAPI_KEY)
	LiveScoreHost    string // CRICKETSENSE_LIVESCORE_HOST (default: livescore6.p.rapidapi.com)
	LiveScoreBaseURL string // CRICKETSENSE_LIVESCORE_BASE_URL (derived from host when empty)

	// Web-search provider configuration
	SearchAPIKey  string // CRICKETSENSE_SEARCH_API_KEY (legacy: TAVILY_API_KEY)
	SearchBaseURL string // CRICKETSENSE_SEARCH_BASE_URL (default: https://api.tavily.com)
	SearchDepth   string // CRICKETSENSE_SEARCH_DEPTH (default: advanced)

	// Cache configuration
	CacheCapacity int // CRICKETSENSE_CACHE_CAPACITY (default: 1000)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// getEnvOrDefault returns the environment variable value or the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FromEnv loads configuration from environment variables.
// Supports both CRICKETSENSE_* (new) and the legacy unprefixed keys.
func (p *Profile) FromEnv() {
	// Helper to get env value with legacy fallback
	getEnvWithFallback := func(newKey, legacyKey string) string {
		if val := os.Getenv(newKey); val != "" {
			return val
		}
		return os.Getenv(legacyKey)
	}

	// Helper to get env value with legacy fallback and default value
	getEnvWithDefault := func(newKey, legacyKey, defaultValue string) string {
		if val := os.Getenv(newKey); val != "" {
			return val
		}
		if val := os.Getenv(legacyKey); val != "" {
			return val
		}
		return defaultValue
	}

	p.LLMProvider = getEnvWithDefault("CRICKETSENSE_LLM_PROVIDER", "", "openrouter")
	p.LLMModel = getEnvWithDefault("CRICKETSENSE_LLM_MODEL", "", "x-ai/grok-4.1-fast")
	p.LLMAPIKey = getEnvWithFallback("CRICKETSENSE_LLM_API_KEY", "OPENROUTER_API_KEY")
	p.LLMBaseURL = getEnvWithDefault("CRICKETSENSE_LLM_BASE_URL", "", "https://openrouter.ai/api/v1")

	p.LiveScoreAPIKey = getEnvWithFallback("CRICKETSENSE_LIVESCORE_API_KEY", "RAPIDAPI_KEY")
	p.LiveScoreHost = getEnvWithDefault("CRICKETSENSE_LIVESCORE_HOST", "RAPIDAPI_HOST", "livescore6.p.rapidapi.com")
	p.LiveScoreBaseURL = getEnvOrDefault("CRICKETSENSE_LIVESCORE_BASE_URL", "")

	p.SearchAPIKey = getEnvWithFallback("CRICKETSENSE_SEARCH_API_KEY", "TAVILY_API_KEY")
	p.SearchBaseURL = getEnvWithDefault("CRICKETSENSE_SEARCH_BASE_URL", "", "https://api.tavily.com")
	p.SearchDepth = getEnvWithDefault("CRICKETSENSE_SEARCH_DEPTH", "", "advanced")

	if v := os.Getenv("CRICKETSENSE_CACHE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			p.CacheCapacity = n
		}
	}
}

func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.LiveScoreBaseURL == "" {
		if p.LiveScoreHost == "" {
			return errors.New("live-score host is required")
		}
		p.LiveScoreBaseURL = "https://" + p.LiveScoreHost
	}

	if p.LLMAPIKey == "" && p.Mode == "prod" {
		return errors.New("LLM API key is required in prod mode")
	}

	if p.CacheCapacity <= 0 {
		p.CacheCapacity = 1000
	}

	return nil
}
