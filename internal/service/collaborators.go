package service

import (
	"github.com/alexanderramin/gradplan/internal/intelligence"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/alexanderramin/gradplan/internal/planner"
)

// Collaborators are the text-generation backed stages of a plan run. Each
// one degrades to a deterministic fallback on its own, so a disabled or
// unreachable model still yields a complete run.
type Collaborators struct {
	Intake       intelligence.ProfileIntakeService
	Resume       intelligence.ResumeService
	Rank         intelligence.ProgramRankService
	Pages        intelligence.PageService
	Requirements intelligence.RequirementsService
	Checklist    intelligence.ChecklistService
	QnA          intelligence.QnAService

	// Timeline is optional. Nil means tasks come from the deterministic
	// builder.
	Timeline planner.TimelineGenerator
}

// NewCollaborators wires every stage to client. useGenerator switches task
// placement from the deterministic builder to the model.
func NewCollaborators(client llm.LLMClient, useGenerator bool) Collaborators {
	c := Collaborators{
		Intake:       intelligence.NewProfileIntakeService(client),
		Resume:       intelligence.NewResumeService(client),
		Rank:         intelligence.NewProgramRankService(client),
		Pages:        intelligence.NewPageService(client),
		Requirements: intelligence.NewRequirementsService(client),
		Checklist:    intelligence.NewChecklistService(client),
		QnA:          intelligence.NewQnAService(client),
	}
	if useGenerator {
		c.Timeline = intelligence.NewTimelineService(client)
	}
	return c
}
