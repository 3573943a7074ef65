package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/yassu-studio/internal/llm"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func envMap(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeFile(t, "config.json", `{
		"server": {"port": 9090},
		"llm": {"provider": "openai", "models": {"advanced": "gpt-4o"}},
		"workflow": {"concurrency": 3},
		"verbose": true
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Models["advanced"])
	assert.Equal(t, 3, cfg.Workflow.Concurrency)
	assert.True(t, cfg.Verbose)

	// Unset values keep defaults
	assert.Equal(t, DefaultBatchDelayMS, cfg.Workflow.BatchDelayMS)
	assert.Equal(t, DefaultMaxMatches, cfg.Matching.MaxMatches)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
server:
  port: 7070
workflow:
  concurrency: 4
  batch_delay_ms: -1
matching:
  max_matches: 5
archive:
  endpoint: localhost:9000
  bucket: plans
  access_key: a
  secret_key: b
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, 4, cfg.Workflow.Concurrency)
	assert.Equal(t, -1, cfg.Workflow.BatchDelayMS)
	assert.Equal(t, 5, cfg.Matching.MaxMatches)
	assert.True(t, cfg.Archive.Enabled())
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		cfg, err := LoadConfig("")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("file not found", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid JSON", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "config.json", `{ invalid json }`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config JSON")
	})

	t.Run("invalid YAML", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "config.yml", "server: [unclosed"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse config YAML")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadConfig(writeFile(t, "config.toml", "port = 1"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config format")
	})
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"PORT":            "3000",
		"DATABASE_URL":    "postgres://localhost/yassu",
		"LLM_PROVIDER":    "OpenAI",
		"OPENAI_API_KEY":  "sk-test",
		"GEMINI_API_KEY":  "ignored",
		"OPENAI_BASE_URL": "https://gateway.example.com/v1/",
		"S3_ENDPOINT":     "minio:9000",
		"S3_BUCKET":       "plans",
		"S3_USE_SSL":      "true",
	}))
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "postgres://localhost/yassu", cfg.Database.URL)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, "https://gateway.example.com/v1/", cfg.LLM.BaseURL)
	assert.Equal(t, "minio:9000", cfg.Archive.Endpoint)
	assert.Equal(t, "plans", cfg.Archive.Bucket)
	assert.True(t, cfg.Archive.UseSSL)
}

func TestApplyEnv_GeminiKey(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{
		"GEMINI_API_KEY":  "g-key",
		"OPENAI_API_KEY":  "ignored",
		"OPENAI_BASE_URL": "https://ignored.example.com",
	})))

	assert.Equal(t, "g-key", cfg.LLM.APIKey)
	assert.Empty(t, cfg.LLM.BaseURL)
}

func TestApplyEnv_BlankValuesIgnored(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{"PORT": "  ", "DATABASE_URL": ""})))
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Empty(t, cfg.Database.URL)
}

func TestApplyEnv_InvalidNumbers(t *testing.T) {
	cfg := Default()
	err := cfg.ApplyEnv(envMap(map[string]string{"PORT": "eighty"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT must be an integer")

	err = Default().ApplyEnv(envMap(map[string]string{"S3_USE_SSL": "maybe"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "S3_USE_SSL must be a boolean")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero concurrency", func(c *Config) { c.Workflow.Concurrency = 0 }, true},
		{"negative batch delay allowed", func(c *Config) { c.Workflow.BatchDelayMS = -1 }, false},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "anthropic" }, true},
		{"unknown tier", func(c *Config) { c.LLM.Models = map[string]string{"huge": "m"} }, true},
		{"empty model", func(c *Config) { c.LLM.Models = map[string]string{"lite": ""} }, true},
		{"bad base url", func(c *Config) { c.LLM.BaseURL = "not a url" }, true},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }, true},
		{"archive missing bucket", func(c *Config) { c.Archive = ArchiveConfig{Endpoint: "minio:9000", AccessKey: "a", SecretKey: "b"} }, true},
		{"max matches too large", func(c *Config) { c.Matching.MaxMatches = 1000 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestClientConfig(t *testing.T) {
	cfg := LLMConfig{
		Provider:       "openai",
		BaseURL:        "https://gateway.example.com/v1/",
		Models:         map[string]string{"lite": "tiny-model"},
		TimeoutSeconds: 15,
	}.ClientConfig()

	assert.Equal(t, llm.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "tiny-model", cfg.GetModel(llm.TierLite))
	assert.Equal(t, "gpt-4o-mini", cfg.GetModel(llm.TierAdvanced))
	assert.Equal(t, "https://gateway.example.com/v1/", cfg.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.CallTimeout())
}

func TestClientConfig_DefaultTimeout(t *testing.T) {
	cfg := LLMConfig{Provider: "gemini"}.ClientConfig()
	assert.Equal(t, llm.ProviderGemini, cfg.Provider)
	assert.Equal(t, llm.DefaultTimeout, cfg.CallTimeout())
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	for _, key := range []string{"PORT", "LLM_PROVIDER", "OPENAI_BASE_URL", "S3_ENDPOINT", "S3_USE_SSL", "LLM_REQUESTS_PER_MINUTE"} {
		t.Setenv(key, "")
	}
	t.Setenv("WORKFLOW_CONCURRENCY", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.Equal(t, 3, cfg.Workflow.Concurrency)
}

func TestBatchDelay(t *testing.T) {
	assert.Equal(t, 500*time.Millisecond, WorkflowConfig{BatchDelayMS: 500}.BatchDelay())
	assert.Equal(t, -time.Millisecond, WorkflowConfig{BatchDelayMS: -1}.BatchDelay())
}
