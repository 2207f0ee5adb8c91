package llm

import (
	"os"
	"strconv"
	"strings"
)

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskSchedule     TaskType = "schedule"
	TaskChat         TaskType = "chat"
	TaskGoalPlan     TaskType = "goal_plan"
	TaskEventExtract TaskType = "event_extract"
	TaskSuggestions  TaskType = "suggestions"
)

// AllTasks lists every task type in a stable order.
var AllTasks = []TaskType{TaskSchedule, TaskChat, TaskGoalPlan, TaskEventExtract, TaskSuggestions}

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int    // per attempt; overrides global if > 0
	Attempts    int    // total tries including the first; < 1 means 1
	Model       string // overrides global if non-empty
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled   bool
	LogCalls  bool
	Endpoint  string
	Model     string
	TimeoutMs int
	// BackoffMs is the delay before the second attempt; it doubles for
	// each attempt after that.
	BackoffMs int
	Tasks     map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default.
//
// Structured tasks run cooler and retry; chat runs warmer with a single
// attempt to keep interactive latency low.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:   false,
		LogCalls:  false,
		Endpoint:  "http://localhost:11434",
		Model:     "llama3.2",
		TimeoutMs: 20000,
		BackoffMs: 1000,
		Tasks: map[TaskType]TaskConfig{
			TaskSchedule:     {Temperature: 0.35, MaxTokens: 800, TimeoutMs: 30000, Attempts: 3},
			TaskGoalPlan:     {Temperature: 0.4, MaxTokens: 1200, TimeoutMs: 45000, Attempts: 3},
			TaskSuggestions:  {Temperature: 0.5, MaxTokens: 300, TimeoutMs: 15000, Attempts: 3},
			TaskChat:         {Temperature: 0.75, MaxTokens: 250, TimeoutMs: 15000, Attempts: 1},
			TaskEventExtract: {Temperature: 0.2, MaxTokens: 200, TimeoutMs: 10000, Attempts: 1},
		},
	}
}

// LoadConfig reads LLM configuration from environment variables,
// falling back to defaults for any unset values.
func LoadConfig() LLMConfig {
	cfg := DefaultConfig()

	if v := os.Getenv("LIFEPLAN_LLM_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LIFEPLAN_LLM_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("LIFEPLAN_LLM_ENDPOINT"); v != "" {
		cfg.Endpoint = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("LIFEPLAN_LLM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("LIFEPLAN_LLM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("LIFEPLAN_LLM_BACKOFF_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.BackoffMs = n
		}
	}

	for _, task := range AllTasks {
		prefix := "LIFEPLAN_LLM_" + strings.ToUpper(string(task))
		applyTaskTimeoutEnv(&cfg, task, prefix+"_TIMEOUT_MS")
		applyTaskModelEnv(&cfg, task, prefix+"_MODEL")
	}

	return cfg
}

// TaskTimeout returns the effective per-attempt timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// TaskAttempts returns how many times a task is tried before giving up.
func (c LLMConfig) TaskAttempts(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.Attempts > 1 {
		return tc.Attempts
	}
	return 1
}

// TaskModel returns the model used for a task.
func (c LLMConfig) TaskModel(task TaskType) string {
	if tc, ok := c.Tasks[task]; ok && tc.Model != "" {
		return tc.Model
	}
	return c.Model
}

func applyTaskTimeoutEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := os.Getenv(envName)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return
	}
	tc := cfg.Tasks[task]
	tc.TimeoutMs = n
	cfg.Tasks[task] = tc
}

func applyTaskModelEnv(cfg *LLMConfig, task TaskType, envName string) {
	v := strings.TrimSpace(os.Getenv(envName))
	if v == "" {
		return
	}
	tc := cfg.Tasks[task]
	tc.Model = v
	cfg.Tasks[task] = tc
}
