// Package config provides unified configuration loading for the legal query
// analysis engine. Supports YAML files, environment variables, and
// programmatic overrides.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the engine.
type Config struct {
	Classifier    ClassifierConfig    `yaml:"classifier"`
	Feedback      FeedbackConfig      `yaml:"feedback"`
	QueryStore    QueryStoreConfig    `yaml:"query_store"`
	Corpus        CorpusConfig        `yaml:"corpus"`
	Cache         CacheConfig         `yaml:"cache"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ClassifierConfig exposes every weight/threshold named in the engine's
// configuration surface.
type ClassifierConfig struct {
	MLWeight         float64 `yaml:"ml_weight"`
	SimilarityWeight float64 `yaml:"similarity_weight"`
	TaxonomyWeight   float64 `yaml:"taxonomy_weight"`
	UnknownThreshold float64 `yaml:"unknown_threshold"`
	EnableClassifier bool    `yaml:"enable_classifier"`
}

// FeedbackConfig controls the bounded confidence-adjustment system (C7).
type FeedbackConfig struct {
	PositiveStep float64 `yaml:"positive_feedback_step"`
	NegativeStep float64 `yaml:"negative_feedback_step"`
	DeltaCeiling float64 `yaml:"delta_ceiling"`
	DeltaFloor   float64 `yaml:"delta_floor"`
	// DBPath is the sqlite journal backing the feedback store.
	DBPath string `yaml:"db_path"`
}

// QueryStoreConfig controls the append-only query event log (C8).
type QueryStoreConfig struct {
	DBPath string `yaml:"db_path"`
}

// CorpusConfig points at the immutable input tables loaded at init (C1).
type CorpusConfig struct {
	// Driver selects how the corpus is sourced: "embedded" uses the
	// data compiled into the binary. "file" passes Validate, but engine.New
	// rejects it with an error; no file-based loader exists.
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
}

// CacheConfig holds response-cache settings for section-retrieval results.
type CacheConfig struct {
	Driver string      `yaml:"driver"` // memory or redis
	TTL    time.Duration `yaml:"ttl"`
	Redis  RedisConfig `yaml:"redis"`
}

// RedisConfig holds Redis-specific settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// ObservabilityConfig holds logging settings.
type ObservabilityConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DatabaseDriver selects the SQL driver used for the feedback store and
// query store (spec.md §4.7/§4.8 "embedded key-value store or single-file
// journal"). sqlite is the default, embedded, zero-ops choice; postgres is
// supported for operators who already run a Postgres fleet.
type DatabaseDriver string

const (
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
	DatabaseDriverPostgres DatabaseDriver = "postgres"
)

// Load reads configuration from a YAML file (optional) plus a .env file
// (optional) and applies environment overrides, in that order.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	_ = godotenv.Load() // best effort; absence of .env is not an error

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns the configuration defaults enumerated in the
// engine's external interface specification.
func DefaultConfig() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			MLWeight:         0.55,
			SimilarityWeight: 0.25,
			TaxonomyWeight:   0.20,
			UnknownThreshold: 0.05,
			EnableClassifier: true,
		},
		Feedback: FeedbackConfig{
			PositiveStep: 0.10,
			NegativeStep: 0.05,
			DeltaCeiling: 0.30,
			DeltaFloor:   -0.20,
			DBPath:       "nyaya-feedback.db",
		},
		QueryStore: QueryStoreConfig{
			DBPath: "nyaya-events.db",
		},
		Corpus: CorpusConfig{
			Driver: "embedded",
		},
		Cache: CacheConfig{
			Driver: "memory",
			TTL:    5 * time.Minute,
			Redis: RedisConfig{
				Addr:     "localhost:6379",
				DB:       0,
				PoolSize: 10,
			},
		},
		Observability: ObservabilityConfig{
			LogLevel:  "info",
			LogFormat: "console",
		},
	}
}

// Validate checks the configuration for internally inconsistent values.
func (c *Config) Validate() error {
	sum := c.Classifier.MLWeight + c.Classifier.SimilarityWeight + c.Classifier.TaxonomyWeight
	if sum <= 0 {
		return fmt.Errorf("classifier weights must sum to a positive value, got %f", sum)
	}
	if c.Feedback.DeltaCeiling <= 0 {
		return fmt.Errorf("delta_ceiling must be positive, got %f", c.Feedback.DeltaCeiling)
	}
	if c.Feedback.DeltaFloor >= 0 {
		return fmt.Errorf("delta_floor must be negative, got %f", c.Feedback.DeltaFloor)
	}
	if c.Cache.Driver != "memory" && c.Cache.Driver != "redis" {
		return fmt.Errorf("invalid cache driver: %s", c.Cache.Driver)
	}
	if c.Corpus.Driver != "embedded" && c.Corpus.Driver != "file" {
		return fmt.Errorf("invalid corpus driver: %s", c.Corpus.Driver)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("NYAYA_ML_WEIGHT"); v != "" {
		if f, err := parseFloat(v); err == nil {
			cfg.Classifier.MLWeight = f
		}
	}
	if v := os.Getenv("NYAYA_SIMILARITY_WEIGHT"); v != "" {
		if f, err := parseFloat(v); err == nil {
			cfg.Classifier.SimilarityWeight = f
		}
	}
	if v := os.Getenv("NYAYA_TAXONOMY_WEIGHT"); v != "" {
		if f, err := parseFloat(v); err == nil {
			cfg.Classifier.TaxonomyWeight = f
		}
	}
	if v := os.Getenv("NYAYA_ENABLE_CLASSIFIER"); v != "" {
		cfg.Classifier.EnableClassifier = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("NYAYA_FEEDBACK_DB_PATH"); v != "" {
		cfg.Feedback.DBPath = v
	}
	if v := os.Getenv("NYAYA_QUERY_STORE_DB_PATH"); v != "" {
		cfg.QueryStore.DBPath = v
	}
	if v := os.Getenv("REDIS_URL"); v != "" {
		cfg.Cache.Driver = "redis"
		cfg.Cache.Redis.Addr = strings.TrimPrefix(v, "redis://")
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
}

func parseFloat(s string) (float64, error) {
	var f float64
	_, err := fmt.Sscanf(s, "%f", &f)
	return f, err
}
