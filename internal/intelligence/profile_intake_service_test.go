package intelligence

import (
	"context"
	"testing"

	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapProfile_Aliases(t *testing.T) {
	raw := map[string]any{
		"gpa":       "3.4",
		"degree":    "MS in Data Science",
		"countries": "Germany, Netherlands ,",
		"budget":    float64(25000),
		"interests": []any{"NLP", " ", "vision"},
		"intake":    "Fall 2025",
		"tests":     []any{map[string]any{"name": "GRE", "score": float64(321)}},
	}

	p := MapProfile(raw)
	assert.InDelta(t, 3.4, p.GPA, 1e-9)
	assert.Equal(t, "MS in Data Science", p.TargetDegree)
	assert.Equal(t, []string{"Germany", "Netherlands"}, p.TargetCountries)
	assert.Equal(t, "25000", p.Budget)
	assert.Equal(t, []string{"NLP", "vision"}, p.Interests)
	assert.Equal(t, "Fall 2025", p.TargetIntake)
	assert.Equal(t, map[string]string{"GRE": "321"}, p.TestScores)
}

func TestMapProfile_CanonicalKeysWin(t *testing.T) {
	p := MapProfile(map[string]any{
		"target_degree": "MS CS",
		"degree":        "ignored",
		"test_scores":   map[string]any{"TOEFL": "104"},
	})
	assert.Equal(t, "MS CS", p.TargetDegree)
	assert.Equal(t, map[string]string{"TOEFL": "104"}, p.TestScores)
	assert.Empty(t, p.TargetCountries)
	assert.Nil(t, MapProfile(map[string]any{}).TestScores)
}

func TestNormalize_FallbackWhenLLMDown(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrOllamaUnavailable}
	svc := NewProfileIntakeService(client)

	p, err := svc.Normalize(context.Background(), map[string]any{"degree": "MS in AI", "gpa": 3.1})
	require.NoError(t, err)
	assert.Equal(t, "MS in AI", p.TargetDegree)
	assert.InDelta(t, 3.1, p.GPA, 1e-9)
	assert.Equal(t, llm.TaskIntake, client.lastRequest().Task)
	assert.True(t, client.lastRequest().JSON)
}

func TestNormalize_MergesModelOutputWithDirectMapping(t *testing.T) {
	client := &mockLLMClient{response: "```json\n" + `{
		"gpa": 3.5,
		"target_degree": "MS in Computer Science",
		"target_countries": ["Germany"],
		"budget": "",
		"interests": [],
		"target_intake": "Fall 2025",
		"test_scores": [{"name": "IELTS", "score": "7.5"}]
	}` + "\n```"}
	svc := NewProfileIntakeService(client)

	p, err := svc.Normalize(context.Background(), map[string]any{
		"gpa":       "8.8/10",
		"degree":    "masters cs",
		"countries": "deutschland",
		"budget":    "20k USD",
		"interests": "ML, robotics",
	})
	require.NoError(t, err)
	assert.InDelta(t, 3.5, p.GPA, 1e-9)
	assert.Equal(t, "MS in Computer Science", p.TargetDegree)
	assert.Equal(t, []string{"Germany"}, p.TargetCountries)
	assert.Equal(t, "20k USD", p.Budget, "blank model field falls back to raw input")
	assert.Equal(t, []string{"ML", "robotics"}, p.Interests)
	assert.Equal(t, map[string]string{"IELTS": "7.5"}, p.TestScores)
}

func TestNormalize_InvalidModelOutputFallsBack(t *testing.T) {
	client := &mockLLMClient{response: `{"gpa": 42, "target_degree": "x"}`}
	svc := NewProfileIntakeService(client)

	p, err := svc.Normalize(context.Background(), map[string]any{"target_degree": "MS Physics", "gpa": 3.9})
	require.NoError(t, err)
	assert.Equal(t, "MS Physics", p.TargetDegree)
	assert.InDelta(t, 3.9, p.GPA, 1e-9)
}

func TestNormalize_MissingDegreeIsIncomplete(t *testing.T) {
	svc := NewProfileIntakeService(&mockLLMClient{err: llm.ErrDisabled})

	_, err := svc.Normalize(context.Background(), map[string]any{"gpa": 3.0})
	assert.ErrorIs(t, err, ErrIncompleteProfile)
	assert.Contains(t, err.Error(), "target_degree")
}
