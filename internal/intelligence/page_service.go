package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
)

// minPageChars rejects model output too short to hold requirements.
const minPageChars = 40

// PageService produces the admission page text that requirements are
// extracted from. Text is synthesized; nothing is fetched from the web.
type PageService interface {
	Fetch(ctx context.Context, program domain.Program) string
}

type pageService struct {
	client llm.LLMClient
}

func NewPageService(client llm.LLMClient) PageService {
	return &pageService{client: client}
}

func (s *pageService) Fetch(ctx context.Context, program domain.Program) string {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskPage,
		SystemPrompt: pageSystemPrompt,
		UserPrompt: fmt.Sprintf("Program: %s\nUniversity: %s\nCountry: %s\nEligibility: %s",
			program.Name, program.University, program.Country, program.EligibilityCriteria),
	})
	if err != nil || len(strings.TrimSpace(resp.Text)) < minPageChars {
		return CatalogPage(program)
	}
	return strings.TrimSpace(resp.Text)
}

// CatalogPage renders the catalog entry as page text.
func CatalogPage(p domain.Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Admission Requirements: %s\n", p.Name)
	fmt.Fprintf(&b, "University: %s\n", p.University)
	if p.Country != "" {
		fmt.Fprintf(&b, "Country: %s\n", p.Country)
	}
	if p.TuitionRange != "" {
		fmt.Fprintf(&b, "Tuition: %s\n", p.TuitionRange)
	}
	if p.ApplicationDeadline != "" {
		fmt.Fprintf(&b, "Application deadline: %s\n", p.ApplicationDeadline)
	}
	if p.EligibilityCriteria != "" {
		fmt.Fprintf(&b, "Eligibility: %s\n", p.EligibilityCriteria)
	}
	b.WriteString("Check the official program website for the complete document list.")
	return b.String()
}
