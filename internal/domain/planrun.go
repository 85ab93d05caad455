package domain

import "time"

// ProgramResult is the planning output for one shortlisted program.
type ProgramResult struct {
	Program      Program             `json:"program"`
	Requirements ProgramRequirements `json:"requirements"`
	Window       Window              `json:"window"`
	Adjustment   AdjustmentRecord    `json:"adjustment"`
	Outcome      PlanOutcome         `json:"outcome"`
	Timeline     Timeline            `json:"timeline"`
	Warnings     []string            `json:"warnings"`
	Error        string              `json:"error,omitempty"`
}

// PlanRun is one persisted end-to-end planning invocation for a student.
type PlanRun struct {
	ID        string          `json:"id"`
	Profile   StudentProfile  `json:"profile"`
	Today     time.Time       `json:"-"`
	Status    RunStatus       `json:"status"`
	Results   []ProgramResult `json:"shortlist"`
	QnA       []QnAPair       `json:"qna,omitempty"`
	Source    string          `json:"source,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// Run sources recorded with each persisted run.
const (
	SourceCLI  = "cli"
	SourceHTTP = "http"
)

// PlanRunSummary is the history listing view of a run.
type PlanRunSummary struct {
	ID        string    `json:"id"`
	Status    RunStatus `json:"status"`
	Source    string    `json:"source"`
	Programs  int       `json:"programs"`
	CreatedAt time.Time `json:"created_at"`
}

// DeriveStatus summarizes per-program outcomes: failed when no program
// produced a timeline, partial when some did not.
func (r *PlanRun) DeriveStatus() RunStatus {
	if len(r.Results) == 0 {
		return RunFailed
	}
	failed := 0
	for _, res := range r.Results {
		if res.Outcome == OutcomeError || res.Outcome == OutcomeGenerationFailed {
			failed++
		}
	}
	switch {
	case failed == len(r.Results):
		return RunFailed
	case failed > 0:
		return RunPartial
	default:
		return RunCompleted
	}
}
