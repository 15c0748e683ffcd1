package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Veraticus/tareas/internal/capture"
	"github.com/Veraticus/tareas/internal/connectivity"
	"github.com/Veraticus/tareas/internal/lexicon"
	"github.com/Veraticus/tareas/internal/llm"
)

// DefaultDatabasePath is used when database.path is unset.
const DefaultDatabasePath = "$HOME/.local/share/tareas/tareas.db"

// DefaultServerAddress is used when server.address is unset.
const DefaultServerAddress = "127.0.0.1:8787"

// providerKeyEnv names the conventional environment variable of each
// provider's API key.
var providerKeyEnv = map[string]string{
	llm.ProviderAnthropic: "ANTHROPIC_API_KEY",
	llm.ProviderOpenAI:    "OPENAI_API_KEY",
	llm.ProviderGemini:    "GEMINI_API_KEY",
}

// LoadLLMConfig loads the classifier configuration from Viper and the
// environment. The API key follows this precedence:
// 1. llm.api_key (config file or TAREAS_LLM_API_KEY)
// 2. The provider's own variable (ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY)
// A missing key is not an error: it disables AI classification.
func LoadLLMConfig() llm.Config {
	provider := strings.ToLower(viper.GetString("llm.provider"))
	if provider == "" {
		provider = llm.ProviderAnthropic
	}

	cfg := llm.Config{
		Provider:    provider,
		APIKey:      viper.GetString("llm.api_key"),
		Model:       viper.GetString("llm.model"),
		BaseURL:     viper.GetString("llm.base_url"),
		Endpoint:    viper.GetString("llm.endpoint"),
		MaxRetries:  viper.GetInt("llm.max_retries"),
		RetryDelay:  viper.GetDuration("llm.retry_delay"),
		CacheTTL:    viper.GetDuration("llm.cache_ttl"),
		RateLimit:   viper.GetInt("llm.rate_limit"),
		Temperature: viper.GetFloat64("llm.temperature"),
		MaxTokens:   viper.GetInt("llm.max_tokens"),
		Timeout:     viper.GetDuration("llm.timeout"),
	}

	if cfg.APIKey == "" {
		if env, ok := providerKeyEnv[provider]; ok {
			cfg.APIKey = os.Getenv(env)
		}
	}

	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.RateLimit == 0 {
		cfg.RateLimit = 60
	}

	return cfg
}

// Credential returns what enables AI classification for cfg: the API key,
// or the endpoint URL for the endpoint provider, which holds its own key.
func Credential(cfg llm.Config) string {
	if cfg.Provider == llm.ProviderEndpoint {
		return cfg.Endpoint
	}
	return cfg.APIKey
}

// LoadConnectivityConfig loads the network probe settings.
func LoadConnectivityConfig() (connectivity.Config, error) {
	mode, err := connectivity.ParseMode(viper.GetString("connectivity.force"))
	if err != nil {
		return connectivity.Config{}, err
	}
	return connectivity.Config{
		Address:  viper.GetString("connectivity.probe_address"),
		Mode:     mode,
		Interval: viper.GetDuration("connectivity.interval"),
		Timeout:  viper.GetDuration("connectivity.timeout"),
	}, nil
}

// LoadLexicon returns the built-in lexicon, overridden by the YAML file at
// parser.lexicon when set.
func LoadLexicon() (lexicon.Lexicon, error) {
	path := viper.GetString("parser.lexicon")
	if path == "" {
		return lexicon.Default(), nil
	}
	lex, err := lexicon.LoadFile(ExpandPath(path))
	if err != nil {
		return lexicon.Lexicon{}, fmt.Errorf("failed to load lexicon: %w", err)
	}
	return lex, nil
}

// DatabasePath returns the expanded SQLite path.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}

// Debounce returns the delay before live suggestions are refreshed.
func Debounce() time.Duration {
	if d := viper.GetDuration("parser.debounce"); d > 0 {
		return d
	}
	return capture.DefaultDebounce
}

// ServerAddress returns the listen address of the classify endpoint.
func ServerAddress() string {
	if addr := viper.GetString("server.address"); addr != "" {
		return addr
	}
	return DefaultServerAddress
}
