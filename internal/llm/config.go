package llm

// TaskType identifies the kind of LLM task being performed.
type TaskType string

const (
	TaskIntake       TaskType = "intake"
	TaskResume       TaskType = "resume"
	TaskRank         TaskType = "rank"
	TaskPage         TaskType = "page"
	TaskRequirements TaskType = "requirements"
	TaskTimeline     TaskType = "timeline"
	TaskValidate     TaskType = "validate"
	TaskQnA          TaskType = "qna"
)

// AllTasks lists every task type, in pipeline order.
var AllTasks = []TaskType{
	TaskIntake, TaskResume, TaskRank, TaskPage,
	TaskRequirements, TaskTimeline, TaskValidate, TaskQnA,
}

// TaskConfig holds per-task LLM parameters.
type TaskConfig struct {
	Temperature float64
	MaxTokens   int
	TimeoutMs   int // overrides global if > 0
}

// LLMConfig holds all configuration for the LLM subsystem.
type LLMConfig struct {
	Enabled        bool
	LogCalls       bool
	Endpoint       string
	Model          string
	TimeoutMs      int
	MaxRetries     int
	RetryBackoffMs int
	Tasks          map[TaskType]TaskConfig
}

// DefaultConfig returns an LLMConfig with sensible defaults.
// LLM is disabled by default; every collaborator then uses its fallback.
func DefaultConfig() LLMConfig {
	return LLMConfig{
		Enabled:        false,
		Endpoint:       "http://localhost:11434",
		Model:          "llama3.2",
		TimeoutMs:      20000,
		MaxRetries:     1,
		RetryBackoffMs: 250,
		Tasks: map[TaskType]TaskConfig{
			TaskIntake:       {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 10000},
			TaskResume:       {Temperature: 0.1, MaxTokens: 512, TimeoutMs: 15000},
			TaskRank:         {Temperature: 0.3, MaxTokens: 1024, TimeoutMs: 20000},
			TaskPage:         {Temperature: 0.4, MaxTokens: 1024, TimeoutMs: 20000},
			TaskRequirements: {Temperature: 0.1, MaxTokens: 1024, TimeoutMs: 15000},
			TaskTimeline:     {Temperature: 0.2, MaxTokens: 2048, TimeoutMs: 30000},
			TaskValidate:     {Temperature: 0.2, MaxTokens: 1024, TimeoutMs: 15000},
			TaskQnA:          {Temperature: 0.5, MaxTokens: 1024, TimeoutMs: 20000},
		},
	}
}

// TaskTimeout returns the effective timeout for a given task type.
// Uses the task-specific timeout if set, otherwise the global timeout.
func (c LLMConfig) TaskTimeout(task TaskType) int {
	if tc, ok := c.Tasks[task]; ok && tc.TimeoutMs > 0 {
		return tc.TimeoutMs
	}
	return c.TimeoutMs
}

// WithTaskTimeout returns a copy of c with the timeout of task replaced.
// Non-positive values are ignored.
func (c LLMConfig) WithTaskTimeout(task TaskType, timeoutMs int) LLMConfig {
	if timeoutMs <= 0 {
		return c
	}
	tasks := make(map[TaskType]TaskConfig, len(c.Tasks))
	for k, v := range c.Tasks {
		tasks[k] = v
	}
	tc := tasks[task]
	tc.TimeoutMs = timeoutMs
	tasks[task] = tc
	c.Tasks = tasks
	return c
}
