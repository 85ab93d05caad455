// Package metrics exposes gradplan's Prometheus instruments on a private
// registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gradplan"

type Metrics struct {
	registry *prometheus.Registry

	PlanRuns            *prometheus.CounterVec
	ProgramOutcomes     *prometheus.CounterVec
	DeadlineAdjustments *prometheus.CounterVec
	TasksPerTimeline    prometheus.Histogram
	LLMCalls            *prometheus.CounterVec
	LLMLatency          *prometheus.HistogramVec
	UseCases            *prometheus.CounterVec
	UseCaseDuration     *prometheus.HistogramVec
	CacheLookups        *prometheus.CounterVec
}

type Option func(*options)

type options struct {
	runtime bool
}

// WithRuntimeCollectors adds the Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(o *options) { o.runtime = true }
}

func New(opts ...Option) *Metrics {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	m := &Metrics{
		registry: prometheus.NewRegistry(),
		PlanRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plan_runs_total",
			Help:      "Completed plan runs by status and source.",
		}, []string{"status", "source"}),
		ProgramOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "program_plans_total",
			Help:      "Per-program planning results by outcome.",
		}, []string{"outcome"}),
		DeadlineAdjustments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deadline_adjustments_total",
			Help:      "Deadline resolutions by kind (none, passed, short_lead, fallback).",
		}, []string{"kind"}),
		TasksPerTimeline: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "timeline_tasks",
			Help:      "Number of tasks in each produced timeline.",
			Buckets:   prometheus.LinearBuckets(1, 2, 8),
		}),
		LLMCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "calls_total",
			Help:      "Text-generation calls by task and status.",
		}, []string{"task", "status"}),
		LLMLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "llm",
			Name:      "call_duration_seconds",
			Help:      "Text-generation call latency including retries.",
			Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 20, 30, 60},
		}, []string{"task"}),
		UseCases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "use_cases_total",
			Help:      "Service use-case executions by name and result.",
		}, []string{"use_case", "result"}),
		UseCaseDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "use_case_duration_seconds",
			Help:      "Service use-case latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"use_case"}),
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requirements_cache_lookups_total",
			Help:      "Requirements cache lookups by result (hit, miss, error).",
		}, []string{"result"}),
	}

	m.registry.MustRegister(
		m.PlanRuns, m.ProgramOutcomes, m.DeadlineAdjustments, m.TasksPerTimeline,
		m.LLMCalls, m.LLMLatency, m.UseCases, m.UseCaseDuration, m.CacheLookups,
	)
	if o.runtime {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: namespace}),
		)
	}
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObservePlanRun(status domain.RunStatus, source string) {
	if source == "" {
		source = domain.SourceCLI
	}
	m.PlanRuns.WithLabelValues(string(status), source).Inc()
}

// ObserveProgram records one program's outcome, how its deadline was
// resolved and the size of its timeline.
func (m *Metrics) ObserveProgram(outcome domain.PlanOutcome, adjustmentKind string, tasks int) {
	m.ProgramOutcomes.WithLabelValues(string(outcome)).Inc()
	if adjustmentKind != "" {
		m.DeadlineAdjustments.WithLabelValues(adjustmentKind).Inc()
	}
	m.TasksPerTimeline.Observe(float64(tasks))
}

func (m *Metrics) ObserveUseCase(name string, d time.Duration, success bool) {
	result := "success"
	if !success {
		result = "error"
	}
	m.UseCases.WithLabelValues(name, result).Inc()
	m.UseCaseDuration.WithLabelValues(name).Observe(d.Seconds())
}

// ObserveCacheLookup takes "hit", "miss" or "error".
func (m *Metrics) ObserveCacheLookup(result string) {
	m.CacheLookups.WithLabelValues(result).Inc()
}

// OnCallComplete lets Metrics serve as an llm.Observer.
func (m *Metrics) OnCallComplete(event llm.LLMCallEvent) {
	status := "success"
	if !event.Success {
		status = event.ErrorCode
		if status == "" {
			status = "error"
		}
	}
	m.LLMCalls.WithLabelValues(string(event.Task), status).Inc()
	m.LLMLatency.WithLabelValues(string(event.Task)).Observe(float64(event.LatencyMs) / 1000)
}

var _ llm.Observer = (*Metrics)(nil)
