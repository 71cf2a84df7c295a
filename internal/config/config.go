package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/meridio/rankdex/internal/folding"
)

// Config holds the rankdex API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Backend  BackendConfig  `yaml:"backend"`
	Language LanguageConfig `yaml:"language"`
	Folding  FoldingConfig  `yaml:"folding"`
	Search   SearchConfig   `yaml:"search"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
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

// BackendConfig selects and configures the index engine.
type BackendConfig struct {
	Driver           string   `yaml:"driver"` // bleve, redis (default: bleve)
	Path             string   `yaml:"path"`   // bleve index directory; empty = in-memory
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// LanguageConfig holds the analyzer language fallback chain.
type LanguageConfig struct {
	// Code is the site language, e.g. "es" or "pt-BR".
	Code string `yaml:"code"`
	// Fallback is consulted when Code is empty.
	Fallback string `yaml:"fallback"`
	// RerankOverride pins the comparison language; "" or "auto" follows
	// the chain above.
	RerankOverride string `yaml:"rerank_override"`
}

// FoldingConfig holds accent folding profiles.
type FoldingConfig struct {
	// Default applies to every language.
	Default folding.Overrides `yaml:"default"`
	// Languages overlays per-base-language rules onto Default.
	Languages map[string]folding.Overrides `yaml:"languages"`
	// KeepEnye forces "ñ" into (true) or out of (false) every profile.
	// Unset leaves the profiles as configured.
	KeepEnye *bool `yaml:"keep_enye"`
}

// SearchConfig holds query, rerank and pagination settings.
type SearchConfig struct {
	IndexName       string   `yaml:"index_name"`
	RerankPool      int      `yaml:"rerank_pool"`    // 0 = derive from page size
	RerankCeiling   int      `yaml:"rerank_ceiling"` // 0 = default ceiling
	DefaultPageSize int      `yaml:"default_page_size"`
	MaxPageSize     int      `yaml:"max_page_size"`
	StopwordsAdd    []string `yaml:"stopwords_add"`
	StopwordsRemove []string `yaml:"stopwords_remove"`
	CacheSize       int      `yaml:"cache_size"` // memo entries per table
	ForceNormalized bool     `yaml:"force_normalized"`
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
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Backend.Driver == "" {
		c.Backend.Driver = "bleve"
	}
	if c.Backend.ReadinessTimeout <= 0 {
		c.Backend.ReadinessTimeout = 10
	}
	if c.Search.IndexName == "" {
		c.Search.IndexName = "content"
	}
	if c.Search.DefaultPageSize <= 0 {
		c.Search.DefaultPageSize = 10
	}
	if c.Search.MaxPageSize <= 0 {
		c.Search.MaxPageSize = 100
	}
	if c.Search.CacheSize <= 0 {
		c.Search.CacheSize = 50000
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	switch c.Backend.Driver {
	case "bleve":
		// path may be empty (in-memory)
	case "redis":
		if len(c.Backend.Addrs) == 0 {
			return fmt.Errorf("backend.addrs is required for the redis driver")
		}
	default:
		return fmt.Errorf("backend.driver must be \"bleve\" or \"redis\", got %q", c.Backend.Driver)
	}
	if c.Search.RerankPool < 0 || c.Search.RerankCeiling < 0 {
		return fmt.Errorf("search.rerank_pool and search.rerank_ceiling must not be negative")
	}
	if c.Search.RerankCeiling > 0 && c.Search.RerankPool > c.Search.RerankCeiling {
		return fmt.Errorf("search.rerank_pool %d exceeds rerank_ceiling %d",
			c.Search.RerankPool, c.Search.RerankCeiling)
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
