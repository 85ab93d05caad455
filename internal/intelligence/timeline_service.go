package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/alexanderramin/gradplan/internal/planner"
)

// TimelineService generates candidate task lists with the model. Output is
// handed back to the planner, which clamps it into the window; any failure
// surfaces as a GenerationFailure so the planner substitutes its error task.
type TimelineService struct {
	client llm.LLMClient
}

func NewTimelineService(client llm.LLMClient) *TimelineService {
	return &TimelineService{client: client}
}

var _ planner.TimelineGenerator = (*TimelineService)(nil)

type timelineTaskOutput struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	DueDate     string  `json:"due_date"`
	Category    string  `json:"category"`
	Dependency  *string `json:"dependency"`
}

type timelineOutput struct {
	Tasks []timelineTaskOutput `json:"tasks"`
}

func validateTimeline(out timelineOutput) error {
	if len(out.Tasks) == 0 {
		return errors.New("no tasks")
	}
	for i, t := range out.Tasks {
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("task %d has no title", i)
		}
	}
	return nil
}

func (s *TimelineService) GenerateTimeline(ctx context.Context, req planner.GenerationRequest) ([]domain.TimelineTask, error) {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskTimeline,
		SystemPrompt: timelineSystemPrompt,
		UserPrompt:   timelinePrompt(req),
		JSON:         true,
	})
	if err != nil {
		return nil, planner.GenerationFailure(err)
	}
	out, err := llm.ExtractJSON[timelineOutput](resp.Text, validateTimeline)
	if err != nil {
		return nil, planner.GenerationFailure(err)
	}

	tasks := make([]domain.TimelineTask, 0, len(out.Tasks))
	for _, t := range out.Tasks {
		task := domain.TimelineTask{
			Title:       strings.TrimSpace(t.Title),
			Description: strings.TrimSpace(t.Description),
			DueDate:     strings.TrimSpace(t.DueDate),
			Status:      domain.TaskPending,
		}
		if c, ok := domain.ParseTaskCategory(t.Category); ok {
			task.Category = c
		}
		if t.Dependency != nil {
			task.Dependency = strings.TrimSpace(*t.Dependency)
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

func timelinePrompt(req planner.GenerationRequest) string {
	var b strings.Builder
	w := req.Window
	fmt.Fprintf(&b, "Program: %s\n", req.Program.DisplayName())
	fmt.Fprintf(&b, "Today: %s\n", domain.FormatDate(w.Today))
	fmt.Fprintf(&b, "Deadline: %s\n", domain.FormatDate(w.Deadline))
	fmt.Fprintf(&b, "Days available: %d\n", w.LeadDays())
	fmt.Fprintf(&b, "Buffer before deadline: %d days\n", req.BufferDays)

	cats := make([]string, len(req.Categories))
	for i, c := range req.Categories {
		cats[i] = string(c)
	}
	fmt.Fprintf(&b, "Needed categories, in order: %s\n\n", strings.Join(cats, ", "))

	r := req.Requirements
	fmt.Fprintf(&b, "Required documents: %s\n", listOr(r.RequiredDocuments, "standard documents (transcripts, CV, SOP, LORs)"))
	fmt.Fprintf(&b, "Test requirements: %s\n", listOr(r.TestRequirements, "unknown, check whether GRE or TOEFL is needed"))
	fmt.Fprintf(&b, "Special notes: %s\n\n", domain.CoalesceStr(r.SpecialNotes, "none"))

	p := req.Profile
	fmt.Fprintf(&b, "Student GPA: %.2f\n", p.GPA)
	fmt.Fprintf(&b, "Target degree: %s\n", p.TargetDegree)
	if len(p.TestScores) == 0 {
		b.WriteString("Test scores: none provided, tests may need scheduling\n")
	} else {
		fmt.Fprintf(&b, "Test scores: %s\n", formatScores(p.TestScores))
	}
	return b.String()
}

func listOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, "; ")
}
