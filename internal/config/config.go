package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/alexanderramin/wanderplan/internal/llm"
)

// GeneratorKind selects the itinerary generator.
type GeneratorKind string

const (
	GeneratorSample GeneratorKind = "sample"
	GeneratorLLM    GeneratorKind = "llm"
)

// StageMode selects how the progress stages advance.
type StageMode string

const (
	StageDwell     StageMode = "dwell"
	StageMilestone StageMode = "milestone"
)

// Config holds all configuration for wanderplan.
type Config struct {
	DBPath            string
	Generator         GeneratorKind
	StageMode         StageMode
	StageDwell        time.Duration
	GenerationTimeout time.Duration
	SampleLatency     time.Duration
	LogFile           string
	LLM               llm.LLMConfig
}

// Load reads configuration from the environment. Values in the given .env
// files (default ".env") fill in variables that are not already set; missing
// files are skipped.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("loading %s: %w", f, err)
		}
	}

	cfg := &Config{
		DBPath:            getEnv("WANDERPLAN_DB", defaultDBPath()),
		Generator:         GeneratorKind(getEnv("WANDERPLAN_GENERATOR", string(GeneratorSample))),
		StageMode:         StageMode(getEnv("WANDERPLAN_STAGE_MODE", string(StageDwell))),
		StageDwell:        getMillisEnv("WANDERPLAN_STAGE_DWELL_MS", 2*time.Second),
		GenerationTimeout: getMillisEnv("WANDERPLAN_GENERATION_TIMEOUT_MS", 3*time.Minute),
		SampleLatency:     getMillisEnv("WANDERPLAN_SAMPLE_LATENCY_MS", 1500*time.Millisecond),
		LogFile:           os.Getenv("WANDERPLAN_LOG_FILE"),
		LLM:               llm.LoadConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks enumerated settings and bounds.
func (c *Config) Validate() error {
	switch c.Generator {
	case GeneratorSample, GeneratorLLM:
	default:
		return fmt.Errorf("WANDERPLAN_GENERATOR must be %q or %q, got %q", GeneratorSample, GeneratorLLM, c.Generator)
	}
	switch c.StageMode {
	case StageDwell, StageMilestone:
	default:
		return fmt.Errorf("WANDERPLAN_STAGE_MODE must be %q or %q, got %q", StageDwell, StageMilestone, c.StageMode)
	}
	if c.GenerationTimeout <= 0 {
		return errors.New("WANDERPLAN_GENERATION_TIMEOUT_MS must be positive")
	}
	if c.DBPath == "" {
		return errors.New("WANDERPLAN_DB is empty")
	}
	return nil
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "wanderplan.db"
	}
	return filepath.Join(home, ".wanderplan", "wanderplan.db")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getMillisEnv reads a whole number of milliseconds. Negative or malformed
// values fall back to the default; zero is allowed.
func getMillisEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n >= 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return defaultValue
}
