package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_EveryTaskHasSettings(t *testing.T) {
	cfg := DefaultConfig()
	for _, task := range []TaskType{TaskResolveDestination, TaskForecast, TaskRecommend} {
		tc, ok := cfg.Tasks[task]
		assert.True(t, ok, task)
		assert.Positive(t, tc.MaxTokens, task)
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("WANDERPLAN_LLM_ENDPOINT", "http://gpu-box:11434")
	t.Setenv("WANDERPLAN_LLM_MODEL", "mistral")
	t.Setenv("WANDERPLAN_LLM_MAX_RETRIES", "3")
	t.Setenv("WANDERPLAN_LLM_LOG_CALLS", "true")

	cfg := LoadConfig()

	assert.Equal(t, "http://gpu-box:11434", cfg.Endpoint)
	assert.Equal(t, "mistral", cfg.Model)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfig_TaskTimeoutOverrides(t *testing.T) {
	t.Setenv("WANDERPLAN_LLM_TIMEOUT_MS", "9000")
	t.Setenv("WANDERPLAN_LLM_DESTINATION_TIMEOUT_MS", "4000")
	t.Setenv("WANDERPLAN_LLM_RECOMMEND_TIMEOUT_MS", "120000")

	cfg := LoadConfig()

	assert.Equal(t, 9000, cfg.TimeoutMs)
	assert.Equal(t, 4000, cfg.TaskTimeout(TaskResolveDestination))
	assert.Equal(t, 120000, cfg.TaskTimeout(TaskRecommend))
	assert.Equal(t, 30000, cfg.TaskTimeout(TaskForecast))
}

func TestLoadConfig_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("WANDERPLAN_LLM_FORECAST_TIMEOUT_MS", "not-a-number")
	t.Setenv("WANDERPLAN_LLM_MAX_RETRIES", "-2")

	cfg := LoadConfig()

	assert.Equal(t, 30000, cfg.TaskTimeout(TaskForecast))
	assert.Equal(t, 1, cfg.MaxRetries)
}

func TestTaskTimeout_UnknownTaskUsesGlobal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeoutMs = 1234
	assert.Equal(t, 1234, cfg.TaskTimeout(TaskType("other")))
}
