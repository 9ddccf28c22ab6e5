package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the verity API configuration.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Model   ModelConfig   `yaml:"model"`
	Audit   AuditConfig   `yaml:"audit"`
	Fetch   FetchConfig   `yaml:"fetch"`
	Explain ExplainConfig `yaml:"explain"`
	Auth    AuthConfig    `yaml:"auth"`
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// Model load modes.
const (
	LoadEager = "eager"
	LoadLazy  = "lazy"
)

// ModelConfig holds trained artifact settings.
type ModelConfig struct {
	ArtifactPath string `yaml:"artifact_path"`
	Load         string `yaml:"load"` // eager, lazy (default: eager)
}

// Audit drivers.
const (
	AuditNone   = "none"
	AuditRedis  = "redis"
	AuditValkey = "valkey"
	AuditSQLite = "sqlite"
)

// AuditConfig holds prediction audit log settings.
type AuditConfig struct {
	Driver           string   `yaml:"driver"` // none, redis, valkey, sqlite (default: none)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Stream           string   `yaml:"stream"`
	MaxLen           int64    `yaml:"max_len"` // 0 = unbounded
	DSN              string   `yaml:"dsn"`
	Table            string   `yaml:"table"`
	Buffer           int      `yaml:"buffer"`
	TimeoutMS        int      `yaml:"timeout_ms"`
	TextLimit        int      `yaml:"text_limit"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// UsesRedis reports whether the audit driver talks to a Redis-protocol server.
func (a AuditConfig) UsesRedis() bool {
	return a.Driver == AuditRedis || a.Driver == AuditValkey
}

// FetchConfig holds URL scanning settings.
type FetchConfig struct {
	TimeoutSec  int     `yaml:"timeout_sec"`
	MaxChars    int     `yaml:"max_chars"`
	UserAgent   string  `yaml:"user_agent"`
	RatePerSec  float64 `yaml:"rate_per_sec"` // 0 = unlimited
	Burst       int     `yaml:"burst"`
	CacheTTLSec int     `yaml:"cache_ttl_sec"` // 0 = no page cache; needs a redis audit store
}

// Explanation narrator providers.
const (
	ExplainNone   = "none"
	ExplainOpenAI = "openai"
)

// ExplainConfig holds explanation narrator settings.
type ExplainConfig struct {
	Provider   string `yaml:"provider"` // none, openai (default: none)
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	TimeoutSec int    `yaml:"timeout_sec"`
	MaxTokens  int    `yaml:"max_tokens"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Model.ArtifactPath == "" {
		c.Model.ArtifactPath = "models/verity.vrty"
	}
	if c.Model.Load == "" {
		c.Model.Load = LoadEager
	}
	if c.Audit.Driver == "" {
		c.Audit.Driver = AuditNone
	}
	if c.Audit.Stream == "" {
		c.Audit.Stream = "verity:audit"
	}
	if c.Audit.Table == "" {
		c.Audit.Table = "predictions"
	}
	if c.Audit.Buffer <= 0 {
		c.Audit.Buffer = 1024
	}
	if c.Audit.TimeoutMS <= 0 {
		c.Audit.TimeoutMS = 2000
	}
	if c.Audit.TextLimit <= 0 {
		c.Audit.TextLimit = 500
	}
	if c.Audit.ReadinessTimeout <= 0 {
		c.Audit.ReadinessTimeout = 10
	}
	if c.Fetch.TimeoutSec <= 0 {
		c.Fetch.TimeoutSec = 10
	}
	if c.Fetch.MaxChars <= 0 {
		c.Fetch.MaxChars = 10000
	}
	if c.Fetch.Burst <= 0 {
		c.Fetch.Burst = 5
	}
	if c.Explain.Provider == "" {
		c.Explain.Provider = ExplainNone
	}
	if c.Explain.TimeoutSec <= 0 {
		c.Explain.TimeoutSec = 15
	}
	if c.Explain.MaxTokens <= 0 {
		c.Explain.MaxTokens = 400
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Model.Load {
	case LoadEager, LoadLazy:
	default:
		return fmt.Errorf("model.load must be %q or %q, got %q", LoadEager, LoadLazy, c.Model.Load)
	}
	switch c.Audit.Driver {
	case AuditNone:
	case AuditRedis, AuditValkey:
		if len(c.Audit.Addrs) == 0 {
			return fmt.Errorf("audit.addrs is required for driver %q", c.Audit.Driver)
		}
		if c.Audit.MaxLen < 0 {
			return fmt.Errorf("audit.max_len must not be negative, got %d", c.Audit.MaxLen)
		}
	case AuditSQLite:
		if c.Audit.DSN == "" {
			return fmt.Errorf("audit.dsn is required for driver %q", AuditSQLite)
		}
	default:
		return fmt.Errorf("audit.driver must be one of none, redis, valkey, sqlite, got %q", c.Audit.Driver)
	}
	if c.Fetch.RatePerSec < 0 {
		return fmt.Errorf("fetch.rate_per_sec must not be negative, got %v", c.Fetch.RatePerSec)
	}
	if c.Fetch.CacheTTLSec > 0 && !c.Audit.UsesRedis() {
		return fmt.Errorf("fetch.cache_ttl_sec requires a redis or valkey audit driver")
	}
	switch c.Explain.Provider {
	case ExplainNone:
	case ExplainOpenAI:
		if c.Explain.APIKey == "" {
			return fmt.Errorf("explain.api_key is required for provider %q", ExplainOpenAI)
		}
		if c.Explain.Model == "" {
			return fmt.Errorf("explain.model is required for provider %q", ExplainOpenAI)
		}
	default:
		return fmt.Errorf("explain.provider must be %q or %q, got %q", ExplainNone, ExplainOpenAI, c.Explain.Provider)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
