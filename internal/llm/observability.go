package llm

import (
	"github.com/alexanderramin/gradplan/internal/logging"
)

// LLMCallEvent records metadata about a single LLM invocation.
type LLMCallEvent struct {
	Task      TaskType
	Model     string
	LatencyMs int64
	Attempts  int
	Success   bool
	ErrorCode string
}

// Observer receives events about LLM calls for logging and metrics.
type Observer interface {
	OnCallComplete(event LLMCallEvent)
}

// LogObserver writes LLM call events to a structured logger.
type LogObserver struct {
	log logging.Logger
}

// NewLogObserver creates an Observer that logs events under "llm".
func NewLogObserver(log logging.Logger) *LogObserver {
	return &LogObserver{log: log.Named("llm")}
}

func (o *LogObserver) OnCallComplete(event LLMCallEvent) {
	fields := []logging.Field{
		logging.String("task", string(event.Task)),
		logging.String("model", event.Model),
		logging.Int64("latency_ms", event.LatencyMs),
		logging.Int("attempts", event.Attempts),
	}
	if event.Success {
		o.log.Debug("llm_call", fields...)
		return
	}
	o.log.Warn("llm_call failed", append(fields, logging.String("error_code", event.ErrorCode))...)
}

// MultiObserver fans events out to several observers; nil entries are skipped.
type MultiObserver []Observer

func (m MultiObserver) OnCallComplete(event LLMCallEvent) {
	for _, o := range m {
		if o != nil {
			o.OnCallComplete(event)
		}
	}
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnCallComplete(LLMCallEvent) {}
