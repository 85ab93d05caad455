package intelligence

import (
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequirementsParse_Success(t *testing.T) {
	client := &mockLLMClient{response: `{
		"required_documents": ["Transcripts", " SOP ", "", "2 LORs"],
		"test_requirements": ["GRE required", "TOEFL 90"],
		"special_notes": "APS certificate needed"
	}`}
	svc := NewRequirementsService(client)

	req := svc.Parse(context.Background(), "MS in Data Science", "page text")
	assert.Equal(t, "MS in Data Science", req.ProgramName)
	assert.Equal(t, []string{"Transcripts", "SOP", "2 LORs"}, req.RequiredDocuments)
	assert.Equal(t, []string{"GRE required", "TOEFL 90"}, req.TestRequirements)
	assert.Equal(t, "APS certificate needed", req.SpecialNotes)
	assert.Contains(t, client.lastRequest().UserPrompt, "page text")
}

func TestRequirementsParse_AbsentListStaysUnknown(t *testing.T) {
	svc := NewRequirementsService(&mockLLMClient{response: `{"required_documents": []}`})

	req := svc.Parse(context.Background(), "MS in AI", "text")
	assert.True(t, req.DocumentsKnown())
	assert.Empty(t, req.RequiredDocuments)
	assert.False(t, req.TestsKnown())
}

func TestRequirementsParse_Fallback(t *testing.T) {
	tests := []struct {
		name   string
		client *mockLLMClient
	}{
		{"unavailable", &mockLLMClient{err: llm.ErrTimeout}},
		{"not json", &mockLLMClient{response: "Requirements: SOP, LORs"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := NewRequirementsService(tt.client).Parse(context.Background(), "MS in AI", "text")
			assert.Equal(t, []string{"Error parsing requirements"}, req.RequiredDocuments)
			require.NotNil(t, req.TestRequirements)
			assert.Empty(t, req.TestRequirements)
			assert.True(t, strings.HasPrefix(req.SpecialNotes, "Failed to parse: "))
			assert.True(t, IsParseFailure(req))
		})
	}
}

func TestPageFetch(t *testing.T) {
	program := testPrograms()[1]

	page := NewPageService(&mockLLMClient{response: strings.Repeat("Submit SOP, two LORs and GRE scores. ", 3)}).
		Fetch(context.Background(), program)
	assert.Contains(t, page, "two LORs")

	fallback := NewPageService(&mockLLMClient{err: llm.ErrOllamaUnavailable}).Fetch(context.Background(), program)
	assert.Equal(t, CatalogPage(program), fallback)
	assert.Contains(t, fallback, "GRE required, TOEFL 90")
	assert.Contains(t, fallback, "RWTH Aachen")

	short := NewPageService(&mockLLMClient{response: "ok"}).Fetch(context.Background(), program)
	assert.Equal(t, CatalogPage(program), short)
}
