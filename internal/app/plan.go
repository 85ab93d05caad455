package app

import (
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
)

// Agent names identify the pipeline stage that produced a status event.
const (
	AgentProfileIntake      = "ProfileIntake"
	AgentResumeParser       = "ResumeParser"
	AgentProgramSearch      = "ProgramSearch"
	AgentRequirementsParser = "RequirementsParser"
	AgentTimelinePlanner    = "TimelinePlanner"
	AgentChecklistValidator = "ChecklistValidator"
	AgentQnA                = "QnA"
)

type EventType string

const (
	EventStatus EventType = "status"
	EventResult EventType = "result"
	EventError  EventType = "error"
)

// PlanEvent is one progress update. Status events carry Agent and Message,
// the final result event carries Data, error events carry Message.
type PlanEvent struct {
	Type    EventType     `json:"type"`
	Agent   string        `json:"agent,omitempty"`
	Message string        `json:"message,omitempty"`
	Data    *PlanResponse `json:"data,omitempty"`
}

func StatusEvent(agent, message string) PlanEvent {
	return PlanEvent{Type: EventStatus, Agent: agent, Message: message}
}

func ResultEvent(resp *PlanResponse) PlanEvent {
	return PlanEvent{Type: EventResult, Data: resp}
}

func ErrorEvent(err error) PlanEvent {
	return PlanEvent{Type: EventError, Message: err.Error()}
}

// PlanRequest carries the raw student answers. Profile keys follow the
// student profile JSON names; aliases are accepted by intake.
type PlanRequest struct {
	Profile    map[string]any
	ResumeText string
	Source     string
	Now        *time.Time
	// Persist controls whether the run is written to history.
	Persist bool
}

func NewPlanRequest(profile map[string]any, source string) PlanRequest {
	return PlanRequest{
		Profile: profile,
		Source:  source,
		Persist: true,
	}
}

// PlanResponse is the persisted run as returned to callers.
type PlanResponse struct {
	RunID     string                 `json:"id"`
	Status    domain.RunStatus       `json:"status"`
	Profile   domain.StudentProfile  `json:"profile"`
	Shortlist []domain.ProgramResult `json:"shortlist"`
	QnA       []domain.QnAPair       `json:"qna"`
	CreatedAt time.Time              `json:"created_at"`
}

// ResponseFromRun projects a stored run into the response shape.
func ResponseFromRun(run *domain.PlanRun) *PlanResponse {
	shortlist := run.Results
	if shortlist == nil {
		shortlist = []domain.ProgramResult{}
	}
	qna := run.QnA
	if qna == nil {
		qna = []domain.QnAPair{}
	}
	return &PlanResponse{
		RunID:     run.ID,
		Status:    run.Status,
		Profile:   run.Profile,
		Shortlist: shortlist,
		QnA:       qna,
		CreatedAt: run.CreatedAt,
	}
}
