package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/alexanderramin/gradplan/internal/planner"
)

type ChecklistInput struct {
	Tasks        []domain.TimelineTask
	Requirements domain.ProgramRequirements
	Profile      domain.StudentProfile
	Window       domain.Window
	BufferDays   int
}

// ChecklistService reviews a finished timeline and returns student-facing
// warnings.
type ChecklistService interface {
	Validate(ctx context.Context, in ChecklistInput) []string
}

type checklistService struct {
	client llm.LLMClient
}

func NewChecklistService(client llm.LLMClient) ChecklistService {
	return &checklistService{client: client}
}

type checklistOutput struct {
	Warnings []string `json:"warnings"`
}

// Validate falls back to planner.DetectGaps when the model is unavailable or
// its answer does not decode.
func (s *checklistService) Validate(ctx context.Context, in ChecklistInput) []string {
	fallback := func() []string {
		return planner.DetectGaps(in.Tasks, in.Requirements, in.Profile, in.Window, in.BufferDays)
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskValidate,
		SystemPrompt: checklistSystemPrompt,
		UserPrompt:   checklistPrompt(in),
		JSON:         true,
	})
	if err != nil {
		return fallback()
	}
	out, err := llm.ExtractJSON[checklistOutput](resp.Text, nil)
	if err != nil {
		return fallback()
	}
	warnings := make([]string, 0, len(out.Warnings))
	for _, w := range out.Warnings {
		if w = strings.TrimSpace(w); w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

func checklistPrompt(in ChecklistInput) string {
	var b strings.Builder
	r := in.Requirements
	fmt.Fprintf(&b, "Required documents: %s\n", listOr(r.RequiredDocuments, "not specified, may need to verify on the official website"))
	fmt.Fprintf(&b, "Test requirements: %s\n", listOr(r.TestRequirements, "not specified, may need to verify on the official website"))
	fmt.Fprintf(&b, "Special notes: %s\n", domain.CoalesceStr(r.SpecialNotes, "none"))
	fmt.Fprintf(&b, "Deadline: %s\n\nTimeline:\n", domain.FormatDate(in.Window.Deadline))
	for _, t := range in.Tasks {
		fmt.Fprintf(&b, "- %s: %s\n", t.DueDate, t.Title)
	}
	return b.String()
}
