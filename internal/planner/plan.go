package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
)

// Stage is a step of a single planning run. Runs move strictly forward
// through Start, DeadlineResolved, TasksBuilt, Clamped and Finalized.
type Stage string

const (
	StageStart            Stage = "start"
	StageDeadlineResolved Stage = "deadline_resolved"
	StageTasksBuilt       Stage = "tasks_built"
	StageClamped          Stage = "clamped"
	StageFinalized        Stage = "finalized"
)

type Policy struct {
	MinLeadDays  int
	BufferDays   int
	FallbackDays int
}

func DefaultPolicy() Policy {
	return Policy{
		MinLeadDays:  DefaultMinLeadDays,
		BufferDays:   MinBufferDays,
		FallbackDays: DefaultFallbackDays,
	}
}

func (p Policy) normalized() Policy {
	d := DefaultPolicy()
	p.MinLeadDays = domain.IntWithDefault(p.MinLeadDays, d.MinLeadDays)
	p.FallbackDays = domain.IntWithDefault(p.FallbackDays, d.FallbackDays)
	if p.BufferDays < MinBufferDays {
		p.BufferDays = MinBufferDays
	}
	return p
}

// GenerationRequest is what an external task generator receives: the
// resolved window plus the context that decides which tasks are needed.
type GenerationRequest struct {
	Window       domain.Window
	Categories   []domain.TaskCategory
	BufferDays   int
	Program      domain.Program
	Requirements domain.ProgramRequirements
	Profile      domain.StudentProfile
}

// TimelineGenerator produces a candidate task list for a resolved window.
// Output is untrusted: the planner clamps it before use.
type TimelineGenerator interface {
	GenerateTimeline(ctx context.Context, req GenerationRequest) ([]domain.TimelineTask, error)
}

type PlanInput struct {
	Today        time.Time
	Program      domain.Program
	Requirements domain.ProgramRequirements
	Profile      domain.StudentProfile
}

// PlanResult is always renderable. Outcome tells callers whether the
// timeline is normal, adjusted, degraded or an error placeholder; Err holds
// the recovered PlanningError, if any.
type PlanResult struct {
	Window     domain.Window
	Adjustment domain.AdjustmentRecord
	Outcome    domain.PlanOutcome
	Categories []domain.TaskCategory
	Timeline   []domain.TimelineTask
	Warnings   []string
	Trace      []Stage
	Err        error
}

// Usable reports whether the timeline holds real tasks rather than the
// single error placeholder.
func (r PlanResult) Usable() bool {
	return r.Outcome != domain.OutcomeGenerationFailed
}

type Planner struct {
	policy    Policy
	generator TimelineGenerator
}

type Option func(*Planner)

// WithGenerator delegates task placement to g instead of BuildTimeline.
func WithGenerator(g TimelineGenerator) Option {
	return func(p *Planner) { p.generator = g }
}

func New(policy Policy, opts ...Option) *Planner {
	p := &Planner{policy: policy.normalized()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Planner) Policy() Policy { return p.policy }

// Plan runs one program through resolve, build, clamp and finalize.
func (p *Planner) Plan(ctx context.Context, in PlanInput) PlanResult {
	res := PlanResult{Trace: []Stage{StageStart}, Outcome: domain.OutcomeOK}

	window, record, err := ResolveDeadline(in.Program.ApplicationDeadline, in.Today, p.policy.MinLeadDays)
	if err != nil {
		window = FallbackWindow(in.Today, p.policy.FallbackDays)
		record = domain.AdjustmentRecord{OriginalDeadline: in.Program.ApplicationDeadline}
		res.Outcome = domain.OutcomeDegraded
		res.Err = err
	} else if record.Adjusted {
		res.Outcome = domain.OutcomeAdjusted
	}
	res.Window, res.Adjustment = window, record
	res.Trace = append(res.Trace, StageDeadlineResolved)

	res.Categories = SelectCategories(in.Requirements, in.Profile)
	tasks, genErr := p.buildTasks(ctx, in, window, res.Categories)
	res.Trace = append(res.Trace, StageTasksBuilt)

	if genErr != nil {
		res.Outcome = domain.OutcomeGenerationFailed
		res.Err = errors.Join(res.Err, genErr)
		res.Timeline = ErrorTimeline(window, genErr)
		res.Warnings = []string{"The timeline could not be generated. Try again or plan the tasks manually."}
		res.Trace = append(res.Trace, StageClamped, StageFinalized)
		return res
	}

	tasks = ClampTimeline(tasks, window)
	res.Trace = append(res.Trace, StageClamped)

	res.Timeline = InjectAdjustmentWarning(tasks, record, window)
	res.Warnings = DetectGaps(tasks, in.Requirements, in.Profile, window, p.policy.BufferDays)
	if res.Outcome == domain.OutcomeDegraded {
		res.Warnings = append([]string{fmt.Sprintf(
			"The deadline %q could not be read, so the plan assumes %s. Confirm the real deadline.",
			in.Program.ApplicationDeadline, domain.FormatDate(window.Deadline))}, res.Warnings...)
	}
	res.Trace = append(res.Trace, StageFinalized)
	return res
}

func (p *Planner) buildTasks(ctx context.Context, in PlanInput, window domain.Window, categories []domain.TaskCategory) ([]domain.TimelineTask, error) {
	if p.generator == nil {
		return describeFor(BuildTimeline(window, categories, p.policy.BufferDays), in.Program), nil
	}
	tasks, err := p.generator.GenerateTimeline(ctx, GenerationRequest{
		Window:       window,
		Categories:   categories,
		BufferDays:   p.policy.BufferDays,
		Program:      in.Program,
		Requirements: in.Requirements,
		Profile:      in.Profile,
	})
	if err != nil {
		var pe *PlanningError
		if errors.As(err, &pe) && pe.Kind == KindGenerationFailure {
			return nil, err
		}
		return nil, GenerationFailure(err)
	}
	if len(tasks) == 0 {
		return nil, &PlanningError{Kind: KindGenerationFailure, Detail: "generator returned no tasks"}
	}
	return tasks, nil
}

// describeFor names the program in each task description.
func describeFor(tasks []domain.TimelineTask, program domain.Program) []domain.TimelineTask {
	name := program.DisplayName()
	if name == "" {
		return tasks
	}
	for i := range tasks {
		tasks[i].Description = fmt.Sprintf("%s: %s", name, tasks[i].Description)
	}
	return tasks
}
