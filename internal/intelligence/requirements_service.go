package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
)

// RequirementsService extracts a program's admission checklist from page
// text.
type RequirementsService interface {
	Parse(ctx context.Context, programName, pageText string) domain.ProgramRequirements
}

type requirementsService struct {
	client llm.LLMClient
}

func NewRequirementsService(client llm.LLMClient) RequirementsService {
	return &requirementsService{client: client}
}

type requirementsOutput struct {
	RequiredDocuments []string `json:"required_documents"`
	TestRequirements  []string `json:"test_requirements"`
	SpecialNotes      string   `json:"special_notes"`
}

func (s *requirementsService) Parse(ctx context.Context, programName, pageText string) domain.ProgramRequirements {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskRequirements,
		SystemPrompt: requirementsSystemPrompt,
		UserPrompt:   fmt.Sprintf("Program: %s\n\nPage text:\n%s", programName, pageText),
		JSON:         true,
	})
	if err != nil {
		return RequirementsParseFailure(programName, err)
	}
	out, err := llm.ExtractJSON[requirementsOutput](resp.Text, nil)
	if err != nil {
		return RequirementsParseFailure(programName, err)
	}
	return domain.ProgramRequirements{
		ProgramName:       programName,
		RequiredDocuments: cleanList(out.RequiredDocuments),
		TestRequirements:  cleanList(out.TestRequirements),
		SpecialNotes:      strings.TrimSpace(out.SpecialNotes),
	}
}

const parseFailureMarker = "Error parsing requirements"

// IsParseFailure reports whether r is the RequirementsParseFailure
// placeholder. Placeholders are never cached.
func IsParseFailure(r domain.ProgramRequirements) bool {
	return len(r.RequiredDocuments) == 1 && r.RequiredDocuments[0] == parseFailureMarker
}

// RequirementsParseFailure is the placeholder checklist used when extraction
// fails. The test list is known-empty; the document list carries the marker.
func RequirementsParseFailure(programName string, err error) domain.ProgramRequirements {
	return domain.ProgramRequirements{
		ProgramName:       programName,
		RequiredDocuments: []string{parseFailureMarker},
		TestRequirements:  []string{},
		SpecialNotes:      fmt.Sprintf("Failed to parse: %v", err),
	}
}

// cleanList trims entries and drops blanks. nil stays nil: an absent list
// means the requirement set is unknown.
func cleanList(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
