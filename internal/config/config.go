package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers.
const (
	StoreNone   = "none"
	StoreValkey = "valkey"
	StoreRedis  = "redis"
	StoreBadger = "badger"
)

// Embedding providers.
const (
	ProviderOpenAI    = "openai"
	ProviderLangchain = "langchain"
)

// Config holds the dsaranker configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Corpus    CorpusConfig    `yaml:"corpus"`
	Search    SearchConfig    `yaml:"search"`
	Text      TextConfig      `yaml:"text"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Store     StoreConfig     `yaml:"store"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int      `yaml:"port"`
	ReadTimeoutSec  int      `yaml:"read_timeout_sec"`
	WriteTimeoutSec int      `yaml:"write_timeout_sec"`
	ShutdownSec     int      `yaml:"shutdown_timeout_sec"`
	APIKeys         []string `yaml:"api_keys"`
	CORSOrigins     []string `yaml:"cors_origins"`
}

// CorpusConfig locates the precomputed artifacts.
type CorpusConfig struct {
	Dir       string `yaml:"dir"`
	Documents string `yaml:"documents"`
	IDF       string `yaml:"idf"`
	TFIDF     string `yaml:"tfidf"`
	BM25      string `yaml:"bm25"`
}

// SearchConfig holds ranking settings.
type SearchConfig struct {
	MaxCandidates int `yaml:"max_candidates"`
}

// TextConfig holds query normalization settings.
type TextConfig struct {
	MaxEditDistance int    `yaml:"max_edit_distance"`
	Language        string `yaml:"language"`
}

// EmbeddingConfig holds embedding model settings.
type EmbeddingConfig struct {
	Enabled             bool   `yaml:"enabled"`
	Provider            string `yaml:"provider"` // openai, langchain
	BaseURL             string `yaml:"base_url"`
	APIKey              string `yaml:"api_key"`
	Model               string `yaml:"model"`
	Dimensions          int    `yaml:"dimensions"`
	QueryInstruction    string `yaml:"query_instruction"`
	DocumentInstruction string `yaml:"document_instruction"`
	Concurrency         int    `yaml:"concurrency"`
	PrecomputeOnStart   bool   `yaml:"precompute_on_start"`
	TimeoutSec          int    `yaml:"timeout_sec"`
}

// StoreConfig holds the persistent embedding store settings.
type StoreConfig struct {
	Driver           string   `yaml:"driver"` // none, valkey, redis, badger (default: none)
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	Path             string   `yaml:"path"`
	TTLHours         int      `yaml:"ttl_hours"` // 0 = no expiry
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// TTL returns the entry lifetime; zero means entries never expire.
func (s StoreConfig) TTL() time.Duration {
	return time.Duration(s.TTLHours) * time.Hour
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}
	return Parse(data)
}

// Parse decodes YAML, expands ${VAR} references, applies defaults and validates.
func Parse(data []byte) (Config, error) {
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

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 5000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Corpus.Dir == "" {
		c.Corpus.Dir = "data"
	}
	if c.Corpus.Documents == "" {
		c.Corpus.Documents = "idToData.json"
	}
	if c.Corpus.IDF == "" {
		c.Corpus.IDF = "IDF.json"
	}
	if c.Corpus.TFIDF == "" {
		c.Corpus.TFIDF = "TF_IDF.json"
	}
	if c.Corpus.BM25 == "" {
		c.Corpus.BM25 = "BM25.json"
	}
	if c.Search.MaxCandidates <= 0 {
		c.Search.MaxCandidates = 50
	}
	if c.Text.MaxEditDistance <= 0 {
		c.Text.MaxEditDistance = 2
	}
	if c.Text.Language == "" {
		c.Text.Language = "english"
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = ProviderOpenAI
	}
	if c.Embedding.Concurrency <= 0 {
		c.Embedding.Concurrency = 4
	}
	if c.Embedding.TimeoutSec <= 0 {
		c.Embedding.TimeoutSec = 30
	}
	if c.Store.Driver == "" {
		c.Store.Driver = StoreNone
	}
	if c.Store.ReadinessTimeout <= 0 {
		c.Store.ReadinessTimeout = 10
	}
	if c.Store.Driver == StoreBadger && c.Store.Path == "" {
		c.Store.Path = filepath.Join(c.Corpus.Dir, "embeddings.badger")
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Embedding.Enabled {
		if !slices.Contains([]string{ProviderOpenAI, ProviderLangchain}, c.Embedding.Provider) {
			return fmt.Errorf("embedding.provider must be %q or %q, got %q",
				ProviderOpenAI, ProviderLangchain, c.Embedding.Provider)
		}
		if c.Embedding.Model == "" {
			return fmt.Errorf("embedding.model is required when embedding is enabled")
		}
		if c.Embedding.Dimensions < 0 {
			return fmt.Errorf("embedding.dimensions must be >= 0, got %d", c.Embedding.Dimensions)
		}
	}
	switch c.Store.Driver {
	case StoreNone, StoreBadger:
	case StoreValkey, StoreRedis:
		if len(c.Store.Addrs) == 0 {
			return fmt.Errorf("store.addrs is required for driver %q", c.Store.Driver)
		}
	default:
		return fmt.Errorf("store.driver must be one of none, valkey, redis, badger; got %q", c.Store.Driver)
	}
	if c.Store.TTLHours < 0 {
		return fmt.Errorf("store.ttl_hours must be >= 0, got %d", c.Store.TTLHours)
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
