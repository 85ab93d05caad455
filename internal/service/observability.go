package service

import (
	"context"
	"time"

	"github.com/alexanderramin/gradplan/internal/logging"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger logging.Logger
}

// NewLogUseCaseObserver writes service use-case events to logger.
func NewLogUseCaseObserver(logger logging.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger.Named("service")}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := make([]logging.Field, 0, 4+len(event.Fields))
	fields = append(fields,
		logging.String("use_case", event.Name),
		logging.Int64("duration_ms", event.Duration.Milliseconds()),
		logging.Bool("success", event.Success),
	)
	for k, v := range event.Fields {
		fields = append(fields, logging.Any(k, v))
	}
	if event.Err != nil {
		fields = append(fields, logging.Err(event.Err))
		o.logger.Error("service_use_case", fields...)
		return
	}
	o.logger.Info("service_use_case", fields...)
}

// UseCaseMetrics is the subset of the metrics registry the observer feeds.
type UseCaseMetrics interface {
	ObserveUseCase(name string, d time.Duration, success bool)
}

type metricsUseCaseObserver struct {
	metrics UseCaseMetrics
}

// NewMetricsUseCaseObserver counts use cases and records their duration.
func NewMetricsUseCaseObserver(m UseCaseMetrics) UseCaseObserver {
	if m == nil {
		return NoopUseCaseObserver{}
	}
	return &metricsUseCaseObserver{metrics: m}
}

func (o *metricsUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	o.metrics.ObserveUseCase(event.Name, event.Duration, event.Success)
}

type multiUseCaseObserver []UseCaseObserver

// MultiUseCaseObserver fans each event out to every non-nil observer.
func MultiUseCaseObserver(observers ...UseCaseObserver) UseCaseObserver {
	var out multiUseCaseObserver
	for _, obs := range observers {
		if obs != nil {
			out = append(out, obs)
		}
	}
	if len(out) == 0 {
		return NoopUseCaseObserver{}
	}
	return out
}

func (m multiUseCaseObserver) ObserveUseCase(ctx context.Context, event UseCaseEvent) {
	for _, obs := range m {
		obs.ObserveUseCase(ctx, event)
	}
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}
