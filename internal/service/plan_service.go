package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/cache"
	"github.com/alexanderramin/gradplan/internal/db"
	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/intelligence"
	"github.com/alexanderramin/gradplan/internal/logging"
	"github.com/alexanderramin/gradplan/internal/planner"
	"github.com/alexanderramin/gradplan/internal/repository"
	"github.com/google/uuid"
)

type planService struct {
	programs ProgramSource
	collab   Collaborators
	uow      db.UnitOfWork

	// planner may call the timeline generator; scheduler never does.
	planner   *planner.Planner
	scheduler *planner.Planner

	cache    cache.RequirementsCache
	recorder RunRecorder
	log      logging.Logger
	observer UseCaseObserver
	now      Clock
}

type PlanOption func(*planService)

func WithPolicy(p planner.Policy) PlanOption {
	return func(s *planService) {
		s.planner = newPlanner(p, s.collab.Timeline)
		s.scheduler = planner.New(p)
	}
}

func WithCache(c cache.RequirementsCache) PlanOption {
	return func(s *planService) {
		if c != nil {
			s.cache = c
		}
	}
}

func WithRecorder(r RunRecorder) PlanOption {
	return func(s *planService) {
		if r != nil {
			s.recorder = r
		}
	}
}

func WithLogger(l logging.Logger) PlanOption {
	return func(s *planService) {
		if l != nil {
			s.log = l.Named("plan")
		}
	}
}

func WithObserver(o UseCaseObserver) PlanOption {
	return func(s *planService) {
		s.observer = useCaseObserverOrNoop([]UseCaseObserver{o})
	}
}

func WithClock(c Clock) PlanOption {
	return func(s *planService) {
		if c != nil {
			s.now = c
		}
	}
}

func NewPlanService(programs ProgramSource, collab Collaborators, uow db.UnitOfWork, opts ...PlanOption) PlanService {
	s := &planService{
		programs:  programs,
		collab:    collab,
		uow:       uow,
		planner:   newPlanner(planner.DefaultPolicy(), collab.Timeline),
		scheduler: planner.New(planner.DefaultPolicy()),
		cache:     cache.NopCache{},
		recorder:  noopRecorder{},
		log:       logging.NewNopLogger(),
		observer:  NoopUseCaseObserver{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func newPlanner(p planner.Policy, gen planner.TimelineGenerator) *planner.Planner {
	if gen == nil {
		return planner.New(p)
	}
	return planner.New(p, planner.WithGenerator(gen))
}

func (s *planService) today(now *time.Time) time.Time {
	if now != nil {
		return domain.CivilDate(*now)
	}
	return domain.CivilDate(s.now())
}

// Run takes the raw profile through intake, program search and per-program
// planning, then stores the run. Programs are planned one at a time; a
// failure on one program is recorded on its result and the run goes on.
func (s *planService) Run(ctx context.Context, req app.PlanRequest, emit func(app.PlanEvent)) (resp *app.PlanResponse, err error) {
	startedAt := s.now().UTC()
	source := domain.CoalesceStr(req.Source, domain.SourceCLI)
	fields := map[string]any{"source": source}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "plan-run",
			StartedAt: startedAt,
			Duration:  s.now().UTC().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	send := func(ev app.PlanEvent) {
		if emit != nil {
			emit(ev)
		}
	}
	fail := func(e error) (*app.PlanResponse, error) {
		send(app.ErrorEvent(e))
		return nil, e
	}

	send(app.StatusEvent(app.AgentProfileIntake, "Analyzing student profile..."))
	profile, err := s.collab.Intake.Normalize(ctx, req.Profile)
	if err != nil {
		return fail(&app.PlanError{Code: app.PlanErrInvalidProfile, Message: err.Error(), Err: err})
	}

	if strings.TrimSpace(req.ResumeText) != "" && s.collab.Resume != nil {
		send(app.StatusEvent(app.AgentResumeParser, "Reading resume..."))
		resume, rerr := s.collab.Resume.Parse(ctx, req.ResumeText)
		if rerr != nil {
			s.log.Warn("resume ignored", logging.Err(rerr))
		} else {
			profile = MergeResume(profile, resume)
		}
	}

	send(app.StatusEvent(app.AgentProgramSearch, fmt.Sprintf("Searching programs for %s...", profile.TargetDegree)))
	shortlist := s.collab.Rank.Rank(ctx, profile, s.programs.Filter(profile.TargetCountries))
	send(app.StatusEvent(app.AgentProgramSearch, fmt.Sprintf("Found %d top matches.", len(shortlist))))

	today := s.today(req.Now)
	run := &domain.PlanRun{
		ID:        uuid.New().String(),
		Profile:   profile,
		Today:     today,
		Source:    source,
		Results:   make([]domain.ProgramResult, 0, len(shortlist)),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	for _, prog := range shortlist {
		res := s.planShortlisted(ctx, prog, profile, today, send)
		run.Results = append(run.Results, res)
		s.recorder.ObserveProgram(res.Outcome, adjustmentKind(res), len(res.Timeline))
	}

	if err := ctx.Err(); err != nil {
		return fail(&app.PlanError{Code: app.PlanErrCanceled, Message: "plan run canceled", Err: err})
	}

	send(app.StatusEvent(app.AgentQnA, "Preparing application questions..."))
	run.QnA = s.collab.QnA.Generate(ctx, profile, shortlist)
	run.Status = run.DeriveStatus()
	fields["run_id"] = run.ID
	fields["programs"] = len(run.Results)
	fields["status"] = string(run.Status)

	if req.Persist {
		err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLitePlanRunRepo(tx).Create(ctx, run)
		})
		if err != nil {
			return fail(&app.PlanError{Code: app.PlanErrPersistence, Message: "saving plan run", Err: err})
		}
	}

	s.recorder.ObservePlanRun(run.Status, run.Source)
	resp = app.ResponseFromRun(run)
	send(app.ResultEvent(resp))
	return resp, nil
}

func (s *planService) planShortlisted(ctx context.Context, prog domain.Program, profile domain.StudentProfile, today time.Time, send func(app.PlanEvent)) domain.ProgramResult {
	if err := ctx.Err(); err != nil {
		return errorResult(prog, today, err)
	}
	if strings.TrimSpace(prog.Name) == "" {
		return errorResult(prog, today, errors.New("program has no name"))
	}

	send(app.StatusEvent(app.AgentRequirementsParser, fmt.Sprintf("Fetching requirements for %s...", prog.University)))
	reqs := s.requirementsFor(ctx, prog, send)

	send(app.StatusEvent(app.AgentTimelinePlanner, fmt.Sprintf("Planning timeline for %s...", prog.University)))
	pr := s.planner.Plan(ctx, planner.PlanInput{Today: today, Program: prog, Requirements: reqs, Profile: profile})
	if pr.Err != nil {
		s.log.Warn("planning recovered",
			logging.String("program", prog.DisplayName()),
			logging.String("outcome", string(pr.Outcome)),
			logging.Err(pr.Err))
	}

	warnings := pr.Warnings
	if pr.Usable() {
		send(app.StatusEvent(app.AgentChecklistValidator, "Validating application plan..."))
		checked := s.collab.Checklist.Validate(ctx, intelligence.ChecklistInput{
			Tasks:        pr.Timeline,
			Requirements: reqs,
			Profile:      profile,
			Window:       pr.Window,
			BufferDays:   s.planner.Policy().BufferDays,
		})
		warnings = mergeWarnings(pr.Warnings, checked)
	}
	return resultFrom(prog, reqs, pr, warnings)
}

// requirementsFor serves parsed requirements from the cache, or fetches and
// parses the program page and caches the result. Cache failures only cost a
// re-parse.
func (s *planService) requirementsFor(ctx context.Context, prog domain.Program, send func(app.PlanEvent)) domain.ProgramRequirements {
	key := prog.Key()
	cached, err := s.cache.Get(ctx, key)
	switch {
	case err == nil:
		s.recorder.ObserveCacheLookup("hit")
		return cached
	case errors.Is(err, cache.ErrCacheMiss):
		s.recorder.ObserveCacheLookup("miss")
	default:
		s.recorder.ObserveCacheLookup("error")
		s.log.Warn("requirements cache read failed", logging.String("key", key), logging.Err(err))
	}

	page := s.collab.Pages.Fetch(ctx, prog)
	send(app.StatusEvent(app.AgentRequirementsParser, fmt.Sprintf("Extracting requirements for %s...", prog.Name)))
	reqs := s.collab.Requirements.Parse(ctx, prog.Name, page)
	if intelligence.IsParseFailure(reqs) {
		return reqs
	}
	if err := s.cache.Set(ctx, key, reqs); err != nil {
		s.log.Warn("requirements cache write failed", logging.String("key", key), logging.Err(err))
	}
	return reqs
}

// PlanProgram runs the deterministic planner for one program. Nothing is
// stored.
func (s *planService) PlanProgram(ctx context.Context, req app.TimelineRequest) (resp *app.TimelineResponse, err error) {
	startedAt := s.now().UTC()
	fields := map[string]any{"program": req.Program.Name}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "plan-program",
			StartedAt: startedAt,
			Duration:  s.now().UTC().Sub(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if strings.TrimSpace(req.Program.Name) == "" {
		return nil, &app.PlanError{Code: app.PlanErrInvalidProgram, Message: "program name is required"}
	}
	reqs := req.Requirements
	reqs.ProgramName = domain.CoalesceStr(reqs.ProgramName, req.Program.Name)

	pr := s.scheduler.Plan(ctx, planner.PlanInput{
		Today:        s.today(req.Now),
		Program:      req.Program,
		Requirements: reqs,
		Profile:      req.Profile,
	})
	fields["outcome"] = string(pr.Outcome)
	fields["tasks"] = len(pr.Timeline)
	s.recorder.ObserveProgram(pr.Outcome, planner.ClassifyAdjustment(pr.Window, pr.Adjustment), len(pr.Timeline))

	return &app.TimelineResponse{Result: resultFrom(req.Program, reqs, pr, pr.Warnings), Trace: pr.Trace}, nil
}

func resultFrom(prog domain.Program, reqs domain.ProgramRequirements, pr planner.PlanResult, warnings []string) domain.ProgramResult {
	if warnings == nil {
		warnings = []string{}
	}
	return domain.ProgramResult{
		Program:      prog,
		Requirements: reqs,
		Window:       pr.Window,
		Adjustment:   pr.Adjustment,
		Outcome:      pr.Outcome,
		Timeline:     pr.Timeline,
		Warnings:     warnings,
	}
}

func errorResult(prog domain.Program, today time.Time, err error) domain.ProgramResult {
	return domain.ProgramResult{
		Program:    prog,
		Window:     domain.Window{Today: today, Deadline: today},
		Adjustment: domain.AdjustmentRecord{OriginalDeadline: prog.ApplicationDeadline},
		Outcome:    domain.OutcomeError,
		Timeline:   domain.Timeline{},
		Warnings:   []string{},
		Error:      err.Error(),
	}
}

func adjustmentKind(res domain.ProgramResult) string {
	if res.Outcome == domain.OutcomeError {
		return planner.AdjustmentNone
	}
	return planner.ClassifyAdjustment(res.Window, res.Adjustment)
}

// mergeWarnings appends extra to base, skipping blanks and exact repeats.
func mergeWarnings(base, extra []string) []string {
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, w := range list {
			w = strings.TrimSpace(w)
			if w == "" || seen[w] {
				continue
			}
			seen[w] = true
			out = append(out, w)
		}
	}
	return out
}

// MergeResume fills profile gaps from a parsed resume. Answers the student
// gave directly always win.
func MergeResume(p domain.StudentProfile, r domain.ResumeProfile) domain.StudentProfile {
	if p.GPA == 0 && r.GPA > 0 {
		p.GPA = r.GPA
	}
	p.TargetDegree = domain.CoalesceStr(p.TargetDegree, r.TargetDegree)
	if len(p.Interests) == 0 && len(r.Interests) > 0 {
		p.Interests = r.Interests
	}
	for name, score := range r.TestScores {
		if p.HasScore(name) || strings.TrimSpace(score) == "" {
			continue
		}
		if p.TestScores == nil {
			p.TestScores = make(map[string]string)
		}
		p.TestScores[name] = score
	}
	return p
}
