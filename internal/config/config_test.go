package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/tareas/internal/capture"
	"github.com/Veraticus/tareas/internal/common"
	"github.com/Veraticus/tareas/internal/connectivity"
	"github.com/Veraticus/tareas/internal/lexicon"
	"github.com/Veraticus/tareas/internal/llm"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadLLMConfig_Defaults(t *testing.T) {
	resetViper(t)
	t.Setenv("ANTHROPIC_API_KEY", "")

	cfg := LoadLLMConfig()
	assert.Equal(t, llm.ProviderAnthropic, cfg.Provider)
	assert.Empty(t, cfg.APIKey)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Equal(t, time.Hour, cfg.CacheTTL)
	assert.Equal(t, 60, cfg.RateLimit)
}

func TestLoadLLMConfig_KeyPrecedence(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		viperKey string
		env      map[string]string
		want     string
	}{
		{
			name:     "config key wins",
			provider: "anthropic",
			viperKey: "from-config",
			env:      map[string]string{"ANTHROPIC_API_KEY": "from-env"},
			want:     "from-config",
		},
		{
			name:     "anthropic env fallback",
			provider: "anthropic",
			env:      map[string]string{"ANTHROPIC_API_KEY": "sk-ant"},
			want:     "sk-ant",
		},
		{
			name:     "openai env fallback",
			provider: "OpenAI",
			env:      map[string]string{"OPENAI_API_KEY": "sk-oai", "ANTHROPIC_API_KEY": "sk-ant"},
			want:     "sk-oai",
		},
		{
			name:     "gemini env fallback",
			provider: "gemini",
			env:      map[string]string{"GEMINI_API_KEY": "g-key"},
			want:     "g-key",
		},
		{
			name:     "endpoint has no env fallback",
			provider: "endpoint",
			env:      map[string]string{"ANTHROPIC_API_KEY": "sk-ant"},
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetViper(t)
			for _, name := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY"} {
				t.Setenv(name, tt.env[name])
			}
			viper.Set("llm.provider", tt.provider)
			if tt.viperKey != "" {
				viper.Set("llm.api_key", tt.viperKey)
			}

			assert.Equal(t, tt.want, LoadLLMConfig().APIKey)
		})
	}
}

func TestLoadLLMConfig_Values(t *testing.T) {
	resetViper(t)
	viper.Set("llm.provider", "endpoint")
	viper.Set("llm.endpoint", "https://tareas.example/api/classify")
	viper.Set("llm.retry_delay", "250ms")
	viper.Set("llm.rate_limit", 10)

	cfg := LoadLLMConfig()
	assert.Equal(t, "https://tareas.example/api/classify", cfg.Endpoint)
	assert.Equal(t, 250*time.Millisecond, cfg.RetryDelay)
	assert.Equal(t, 10, cfg.RateLimit)
	assert.Equal(t, cfg.Endpoint, Credential(cfg))
}

func TestCredential(t *testing.T) {
	assert.Equal(t, "sk", Credential(llm.Config{Provider: llm.ProviderAnthropic, APIKey: "sk", Endpoint: "x"}))
	assert.Empty(t, Credential(llm.Config{Provider: llm.ProviderOpenAI}))
}

func TestLoadConnectivityConfig(t *testing.T) {
	resetViper(t)
	viper.Set("connectivity.probe_address", "1.1.1.1:53")
	viper.Set("connectivity.interval", "10s")
	viper.Set("connectivity.force", "offline")

	cfg, err := LoadConnectivityConfig()
	require.NoError(t, err)
	assert.Equal(t, connectivity.Config{Address: "1.1.1.1:53", Mode: connectivity.ModeOffline, Interval: 10 * time.Second}, cfg)

	viper.Set("connectivity.force", "maybe")
	_, err = LoadConnectivityConfig()
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestLoadLexicon(t *testing.T) {
	resetViper(t)

	lex, err := LoadLexicon()
	require.NoError(t, err)
	assert.Equal(t, lexicon.Default(), lex)

	path := filepath.Join(t.TempDir(), "lexicon.yaml")
	require.NoError(t, os.WriteFile(path, []byte("known_names: [Lucía]\n"), 0o600))
	viper.Set("parser.lexicon", path)

	lex, err = LoadLexicon()
	require.NoError(t, err)
	assert.Equal(t, []string{"lucía"}, lex.KnownNames)

	viper.Set("parser.lexicon", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = LoadLexicon()
	assert.Error(t, err)
}

func TestSimpleSettings(t *testing.T) {
	resetViper(t)
	t.Setenv("HOME", "/home/tester")

	assert.Equal(t, "/home/tester/.local/share/tareas/tareas.db", DatabasePath())
	assert.Equal(t, capture.DefaultDebounce, Debounce())
	assert.Equal(t, DefaultServerAddress, ServerAddress())

	viper.Set("database.path", "~/tareas.db")
	viper.Set("parser.debounce", "300ms")
	viper.Set("server.address", ":9000")

	assert.Equal(t, "/home/tester/tareas.db", DatabasePath())
	assert.Equal(t, 300*time.Millisecond, Debounce())
	assert.Equal(t, ":9000", ServerAddress())
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("TAREAS_DIR", "/data")

	tests := map[string]string{
		"":                 "",
		"~":                "/home/tester",
		"~/db/tareas.db":   "/home/tester/db/tareas.db",
		"$TAREAS_DIR/x.db": "/data/x.db",
		"/abs/path":        "/abs/path",
	}
	for in, want := range tests {
		assert.Equal(t, want, ExpandPath(in), "input %q", in)
	}
}
