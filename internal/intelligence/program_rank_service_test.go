package intelligence

import (
	"context"
	"testing"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRank_UsesModelOrderAndCatalogFields(t *testing.T) {
	client := &mockLLMClient{response: mustJSON(map[string]any{
		"programs": []map[string]string{
			{"name": "MS in AI", "university": "University of Amsterdam", "match_reasoning": "Strong ML group."},
			{"name": "ms in data science", "university": "RWTH AACHEN", "match_reasoning": "Tuition-free."},
		},
	})}
	svc := NewProgramRankService(client)

	got := svc.Rank(context.Background(), testProfile(), testPrograms())
	require.Len(t, got, 2)
	assert.Equal(t, "MS in AI", got[0].Name)
	assert.Equal(t, "2025-04-01", got[0].ApplicationDeadline, "catalog fields are kept")
	assert.Equal(t, "Strong ML group.", got[0].MatchReasoning)
	assert.Equal(t, "RWTH Aachen", got[1].University)
	assert.Equal(t, llm.TaskRank, client.lastRequest().Task)
}

func TestRank_DropsUnknownAndDuplicatePicks(t *testing.T) {
	client := &mockLLMClient{response: mustJSON(map[string]any{
		"programs": []map[string]string{
			{"name": "MS in Quantum Basket Weaving", "university": "Nowhere"},
			{"name": "MS in AI", "university": "University of Amsterdam"},
			{"name": "MS in AI", "university": "University of Amsterdam"},
		},
	})}

	got := NewProgramRankService(client).Rank(context.Background(), testProfile(), testPrograms())
	require.Len(t, got, 1)
	assert.Equal(t, "MS in AI", got[0].Name)
	assert.Contains(t, got[0].MatchReasoning, "Netherlands", "missing reasoning gets a default")
}

func TestRank_CapsAtShortlistSize(t *testing.T) {
	var picks []map[string]string
	for _, p := range testPrograms() {
		picks = append(picks, map[string]string{"name": p.Name, "university": p.University, "match_reasoning": "fit"})
	}
	client := &mockLLMClient{response: mustJSON(map[string]any{"programs": picks})}

	got := NewProgramRankService(client).Rank(context.Background(), testProfile(), testPrograms())
	assert.Len(t, got, ShortlistSize)
}

func TestRank_FallbackFirstThree(t *testing.T) {
	tests := []struct {
		name   string
		client *mockLLMClient
	}{
		{"unavailable", &mockLLMClient{err: llm.ErrOllamaUnavailable}},
		{"garbage", &mockLLMClient{response: "no idea"}},
		{"empty list", &mockLLMClient{response: `{"programs": []}`}},
		{"only unknown picks", &mockLLMClient{response: `{"programs": [{"name": "X", "university": "Y"}]}`}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewProgramRankService(tt.client).Rank(context.Background(), testProfile(), testPrograms())
			require.Len(t, got, 3)
			for i, p := range got {
				assert.Equal(t, testPrograms()[i].Name, p.Name)
				assert.NotEmpty(t, p.MatchReasoning)
			}
		})
	}
}

func TestRank_FewerCandidatesThanShortlist(t *testing.T) {
	svc := NewProgramRankService(&mockLLMClient{err: llm.ErrDisabled})

	got := svc.Rank(context.Background(), testProfile(), testPrograms()[:2])
	assert.Len(t, got, 2)
	assert.Empty(t, svc.Rank(context.Background(), testProfile(), nil))
}

func TestFirstPrograms_DoesNotMutateInput(t *testing.T) {
	in := testPrograms()
	out := FirstPrograms(in, domain.StudentProfile{})
	assert.NotEmpty(t, out[0].MatchReasoning)
	assert.Empty(t, in[0].MatchReasoning)
}
