package service

import (
	"time"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/domain"
)

type PlanService interface {
	app.PlanUseCase
	app.TimelineUseCase
}

type HistoryService interface {
	app.HistoryUseCase
}

// ProgramSource supplies the candidate programs for a set of target
// countries. *catalog.Catalog implements it.
type ProgramSource interface {
	Filter(countries []string) []domain.Program
}

// RunRecorder receives per-run and per-program counters. *metrics.Metrics
// implements it.
type RunRecorder interface {
	ObservePlanRun(status domain.RunStatus, source string)
	ObserveProgram(outcome domain.PlanOutcome, adjustmentKind string, tasks int)
	ObserveCacheLookup(result string)
}

type noopRecorder struct{}

func (noopRecorder) ObservePlanRun(domain.RunStatus, string)        {}
func (noopRecorder) ObserveProgram(domain.PlanOutcome, string, int) {}
func (noopRecorder) ObserveCacheLookup(string)                      {}

// Clock returns the current time. Tests pin it.
type Clock func() time.Time
