package llm

import (
	"os"
	"strconv"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskResolveDestination TaskType = "resolve_destination"
	TaskForecast           TaskType = "forecast"
	TaskRecommend          TaskType = "recommend"
)

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	LogCalls       bool
	Endpoint       string
	Model          string
	TimeoutMs      int
	MaxRetries     int
	RetryBackoffMs int
	Tasks          map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig pointed at a local Ollama.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		LogCalls:       false,
		Endpoint:       "http://localhost:11434",
		Model:          "llama3.2",
		TimeoutMs:      30000,
		MaxRetries:     1,
		RetryBackoffMs: 250,
		Tasks: map[TaskType]TaskConfig{
			TaskResolveDestination: {Temperature: 0.0, MaxTokens: 256, TimeoutMs: 15000},
			TaskForecast:           {Temperature: 0.1, MaxTokens: 1024, TimeoutMs: 30000},
			TaskRecommend:          {Temperature: 0.7, MaxTokens: 4096, TimeoutMs: 90000},
		},
	}
}

// LoadConfig reads LLM configuration from WANDERPLAN_LLM_* environment
// variables, falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("WANDERPLAN_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("WANDERPLAN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("WANDERPLAN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if n, ok := envInt("WANDERPLAN_LLM_TIMEOUT_MS"); ok && n > 0 {
		cfg.TimeoutMs = n
	}
	if n, ok := envInt("WANDERPLAN_LLM_MAX_RETRIES"); ok && n >= 0 {
		cfg.MaxRetries = n
	}
	if n, ok := envInt("WANDERPLAN_LLM_RETRY_BACKOFF_MS"); ok && n >= 0 {
		cfg.RetryBackoffMs = n
	}

	applyTaskTimeoutEnv(&cfg, TaskResolveDestination, "WANDERPLAN_LLM_DESTINATION_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskForecast, "WANDERPLAN_LLM_FORECAST_TIMEOUT_MS")
	applyTaskTimeoutEnv(&cfg, TaskRecommend, "WANDERPLAN_LLM_RECOMMEND_TIMEOUT_MS")

	return cfg
}

// TaskTimeout returns the effective per-attempt timeout for a task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

func envInt(name string) (int, bool) {
	v := os.Getenv(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	n, ok := envInt(envName)
	if !ok || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}
