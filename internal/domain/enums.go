package domain

import "strings"

// DateLayout is the ISO calendar date format used for every date that crosses
// a package boundary (JSON, SQLite, prompts).
const DateLayout = "2006-01-02"

type TaskCategory string

const (
	CategoryVerifyRequirements TaskCategory = "verify_requirements"
	CategoryObtainTranscripts  TaskCategory = "obtain_transcripts"
	CategoryPrepareCV          TaskCategory = "prepare_cv"
	CategoryDraftSOP           TaskCategory = "draft_sop"
	CategoryRequestLOR         TaskCategory = "request_lor"
	CategoryReceiveLOR         TaskCategory = "receive_lor"
	CategoryTakeTest           TaskCategory = "take_test"
	CategorySubmitApplication  TaskCategory = "submit_application"
	CategoryFinalReview        TaskCategory = "final_review"
)

// ForwardOrder is the natural dependency order in which application
// sub-tasks are performed.
var ForwardOrder = []TaskCategory{
	CategoryVerifyRequirements,
	CategoryObtainTranscripts,
	CategoryPrepareCV,
	CategoryDraftSOP,
	CategoryRequestLOR,
	CategoryReceiveLOR,
	CategoryTakeTest,
	CategorySubmitApplication,
	CategoryFinalReview,
}

// Rank returns the category's position in ForwardOrder, or -1 when unknown.
func (c TaskCategory) Rank() int {
	for i, fc := range ForwardOrder {
		if fc == c {
			return i
		}
	}
	return -1
}

// Valid reports whether c is one of the known categories.
func (c TaskCategory) Valid() bool {
	return c.Rank() >= 0
}

// ParseTaskCategory accepts the canonical value in any case, with dashes or
// spaces in place of underscores.
func ParseTaskCategory(s string) (TaskCategory, bool) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "_", " ", "_").Replace(norm)
	c := TaskCategory(norm)
	return c, c.Valid()
}

type TaskStatus string

const (
	TaskPending TaskStatus = "Pending"
	TaskDone    TaskStatus = "Done"
)

// PlanOutcome distinguishes a usable plan from degraded or failed ones so
// callers can decide whether to render an error.
type PlanOutcome string

const (
	OutcomeOK               PlanOutcome = "ok"
	OutcomeAdjusted         PlanOutcome = "adjusted"
	OutcomeDegraded         PlanOutcome = "degraded"
	OutcomeGenerationFailed PlanOutcome = "generation_failed"
	OutcomeError            PlanOutcome = "error"
)

type RunStatus string

const (
	RunCompleted RunStatus = "completed"
	RunPartial   RunStatus = "partial"
	RunFailed    RunStatus = "failed"
)

type QnACategory string

const (
	QnACountry   QnACategory = "country"
	QnATests     QnACategory = "tests"
	QnADocuments QnACategory = "documents"
	QnAVisa      QnACategory = "visa"
	QnASOP       QnACategory = "sop"
	QnAGeneral   QnACategory = "general"
)

// ValidQnACategories is the accepted set of Q&A category strings.
var ValidQnACategories = map[QnACategory]bool{
	QnACountry: true, QnATests: true, QnADocuments: true,
	QnAVisa: true, QnASOP: true, QnAGeneral: true,
}
