package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/alexanderramin/gradplan/internal/planner"
	"github.com/alexanderramin/gradplan/internal/testutil"
)

// offlineCollaborators uses the disabled client, so every stage takes its
// deterministic fallback.
func offlineCollaborators() Collaborators {
	return NewCollaborators(llm.New(llm.DefaultConfig(), nil), false)
}

func fixedClock() Clock {
	return func() time.Time { return testutil.Today.Add(9 * time.Hour) }
}

func rawProfile() map[string]any {
	return map[string]any{
		"gpa":              3.6,
		"target_degree":    "MS Computer Science",
		"target_countries": []any{"Germany"},
		"budget":           "$20,000",
		"interests":        []any{"machine learning"},
		"target_intake":    "Fall 2025",
		"test_scores":      map[string]any{"IELTS": "7.5"},
	}
}

func planRequest() app.PlanRequest {
	return app.NewPlanRequest(rawProfile(), domain.SourceHTTP)
}

type stubPrograms []domain.Program

func (s stubPrograms) Filter([]string) []domain.Program {
	return append([]domain.Program(nil), s...)
}

func germanPrograms() stubPrograms {
	return stubPrograms{
		testutil.NewTestProgram("MS in Computer Science", testutil.WithUniversity("TU Munich")),
		testutil.NewTestProgram("MS in Data Science", testutil.WithUniversity("RWTH Aachen")),
		testutil.NewTestProgram("MS in Informatics", testutil.WithUniversity("TU Berlin")),
		testutil.NewTestProgram("MS in Robotics", testutil.WithUniversity("KIT")),
	}
}

func newTestPlanService(t *testing.T, programs ProgramSource, collab Collaborators, opts ...PlanOption) (PlanService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	opts = append([]PlanOption{WithClock(fixedClock())}, opts...)
	return NewPlanService(programs, collab, testutil.NewTestUoW(database), opts...), database
}

type eventLog struct {
	mu     sync.Mutex
	events []app.PlanEvent
}

func (l *eventLog) record(ev app.PlanEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) agents() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []string
	for _, ev := range l.events {
		if ev.Type == app.EventStatus {
			out = append(out, ev.Agent)
		}
	}
	return out
}

func (l *eventLog) last() app.PlanEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.events[len(l.events)-1]
}

type countingRequirements struct {
	calls atomic.Int32
	reqs  domain.ProgramRequirements
}

func (c *countingRequirements) Parse(_ context.Context, programName, _ string) domain.ProgramRequirements {
	c.calls.Add(1)
	r := c.reqs
	r.ProgramName = programName
	return r
}

type failingGenerator struct{}

func (failingGenerator) GenerateTimeline(context.Context, planner.GenerationRequest) ([]domain.TimelineTask, error) {
	return nil, planner.GenerationFailure(errors.New("model offline"))
}

type recorderStub struct {
	mu       sync.Mutex
	runs     []domain.RunStatus
	outcomes []domain.PlanOutcome
	kinds    []string
	lookups  []string
}

func (r *recorderStub) ObservePlanRun(status domain.RunStatus, _ string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, status)
}

func (r *recorderStub) ObserveProgram(outcome domain.PlanOutcome, kind string, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, outcome)
	r.kinds = append(r.kinds, kind)
}

func (r *recorderStub) ObserveCacheLookup(result string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups = append(r.lookups, result)
}

type brokenCache struct{}

func (brokenCache) Get(context.Context, string) (domain.ProgramRequirements, error) {
	return domain.ProgramRequirements{}, errors.New("connection reset")
}

func (brokenCache) Set(context.Context, string, domain.ProgramRequirements) error {
	return errors.New("connection reset")
}
