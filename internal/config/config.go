// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/yassu-studio/internal/llm"
)

// Defaults applied by Default.
const (
	DefaultPort              = 8080
	DefaultConcurrency       = 2
	DefaultBatchDelayMS      = 500
	DefaultMaxMatches        = 10
	DefaultRequestsPerMinute = 60
)

// Config is the full application configuration. It can be loaded from a JSON or
// YAML file and is then overridden by environment variables.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	LLM      LLMConfig      `json:"llm" yaml:"llm"`
	Workflow WorkflowConfig `json:"workflow" yaml:"workflow"`
	Matching MatchingConfig `json:"matching" yaml:"matching"`
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
	Verbose  bool           `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `json:"port" yaml:"port" validate:"min=1,max=65535"`
	// RequestsPerMinute is the per-client limit; 0 disables limiting.
	RequestsPerMinute int `json:"requests_per_minute" yaml:"requests_per_minute" validate:"min=0"`
	Burst             int `json:"burst,omitempty" yaml:"burst,omitempty" validate:"min=0"`
}

// DatabaseConfig holds the PostgreSQL connection settings.
type DatabaseConfig struct {
	URL string `json:"url,omitempty" yaml:"url,omitempty"`
}

// LLMConfig selects and tunes the completion provider.
type LLMConfig struct {
	Provider string `json:"provider" yaml:"provider" validate:"oneof=gemini openai"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty" validate:"omitempty,url"`
	// Models overrides the provider default per tier (lite, standard, advanced).
	Models            map[string]string `json:"models,omitempty" yaml:"models,omitempty" validate:"dive,keys,oneof=lite standard advanced,endkeys,required"`
	TimeoutSeconds    int               `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"min=0"`
	RequestsPerMinute int               `json:"requests_per_minute,omitempty" yaml:"requests_per_minute,omitempty" validate:"min=0"`
}

// WorkflowConfig configures business plan generation.
type WorkflowConfig struct {
	Concurrency int `json:"concurrency" yaml:"concurrency" validate:"min=1,max=8"`
	// BatchDelayMS separates batches; negative disables the delay.
	BatchDelayMS int `json:"batch_delay_ms" yaml:"batch_delay_ms"`
}

// MatchingConfig configures the matching engine.
type MatchingConfig struct {
	MaxMatches    int    `json:"max_matches" yaml:"max_matches" validate:"min=1,max=100"`
	SearchBaseURL string `json:"search_base_url,omitempty" yaml:"search_base_url,omitempty" validate:"omitempty,url"`
}

// ArchiveConfig configures the optional S3 archive. It is disabled when Endpoint is empty.
type ArchiveConfig struct {
	Endpoint  string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Region    string `json:"region,omitempty" yaml:"region,omitempty"`
	Bucket    string `json:"bucket,omitempty" yaml:"bucket,omitempty" validate:"required_with=Endpoint"`
	AccessKey string `json:"access_key,omitempty" yaml:"access_key,omitempty" validate:"required_with=Endpoint"`
	SecretKey string `json:"secret_key,omitempty" yaml:"secret_key,omitempty" validate:"required_with=Endpoint"`
	UseSSL    bool   `json:"use_ssl,omitempty" yaml:"use_ssl,omitempty"`
}

// Enabled reports whether an archive endpoint is configured.
func (a ArchiveConfig) Enabled() bool {
	return strings.TrimSpace(a.Endpoint) != ""
}

// Default returns a Config with every default applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              DefaultPort,
			RequestsPerMinute: DefaultRequestsPerMinute,
		},
		LLM: LLMConfig{
			Provider: string(llm.ProviderGemini),
		},
		Workflow: WorkflowConfig{
			Concurrency:  DefaultConcurrency,
			BatchDelayMS: DefaultBatchDelayMS,
		},
		Matching: MatchingConfig{
			MaxMatches: DefaultMaxMatches,
		},
	}
}

// LoadConfig loads configuration from a JSON (.json) or YAML (.yaml, .yml) file.
// Values missing from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	return cfg, nil
}

// Load reads the optional config file, applies environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyEnv overrides values from the environment. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	intVar := func(key string, dst *int) error {
		v, ok := get(key)
		if !ok {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: %s must be an integer: %w", key, err)
		}
		*dst = n
		return nil
	}

	if err := intVar("PORT", &c.Server.Port); err != nil {
		return err
	}
	if v, ok := get("DATABASE_URL"); ok {
		c.Database.URL = v
	}

	if v, ok := get("LLM_PROVIDER"); ok {
		c.LLM.Provider = strings.ToLower(v)
	}
	keyVar := "GEMINI_API_KEY"
	if c.LLM.Provider == string(llm.ProviderOpenAI) {
		keyVar = "OPENAI_API_KEY"
		if v, ok := get("OPENAI_BASE_URL"); ok {
			c.LLM.BaseURL = v
		}
	}
	if v, ok := get(keyVar); ok {
		c.LLM.APIKey = v
	}
	if err := intVar("LLM_REQUESTS_PER_MINUTE", &c.LLM.RequestsPerMinute); err != nil {
		return err
	}
	if err := intVar("WORKFLOW_CONCURRENCY", &c.Workflow.Concurrency); err != nil {
		return err
	}

	if v, ok := get("S3_ENDPOINT"); ok {
		c.Archive.Endpoint = v
	}
	if v, ok := get("S3_REGION"); ok {
		c.Archive.Region = v
	}
	if v, ok := get("S3_BUCKET"); ok {
		c.Archive.Bucket = v
	}
	if v, ok := get("S3_ACCESS_KEY"); ok {
		c.Archive.AccessKey = v
	}
	if v, ok := get("S3_SECRET_KEY"); ok {
		c.Archive.SecretKey = v
	}
	if v, ok := get("S3_USE_SSL"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: S3_USE_SSL must be a boolean: %w", err)
		}
		c.Archive.UseSSL = b
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Required secrets (API key, database URL) are checked by the commands that need them.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// ClientConfig converts the LLM section into an llm.Config.
func (l LLMConfig) ClientConfig() *llm.Config {
	cfg := llm.ConfigFor(llm.Provider(l.Provider))
	for tier, model := range l.Models {
		cfg = cfg.WithModel(llm.ModelTier(tier), model)
	}
	cfg.BaseURL = l.BaseURL
	if l.TimeoutSeconds > 0 {
		cfg = cfg.WithTimeout(time.Duration(l.TimeoutSeconds) * time.Second)
	}
	return cfg
}

// BatchDelay returns the delay between workflow batches.
func (w WorkflowConfig) BatchDelay() time.Duration {
	return time.Duration(w.BatchDelayMS) * time.Millisecond
}
