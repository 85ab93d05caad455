package intelligence

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertQnAShape(t *testing.T, pairs []domain.QnAPair) {
	t.Helper()
	require.Len(t, pairs, QnACount)
	for _, p := range pairs {
		assert.LessOrEqual(t, utf8.RuneCountInString(p.Question), MaxQuestionLen, p.Question)
		assert.NotEmpty(t, p.Answer)
		assert.True(t, domain.ValidQnACategories[p.Category], string(p.Category))
	}
}

func TestQnAGenerate_TruncatesAndNormalizes(t *testing.T) {
	client := &mockLLMClient{response: `{"qna_pairs": [
		{"question": "What is the APS certificate and do I need it?", "answer": "APS is mandatory for some applicants to Germany. Source: General knowledge", "category": "Country"},
		{"question": "Blocked account amount?", "answer": "About 11,904 EUR per year. Source: General knowledge", "category": "finance"},
		{"question": "", "answer": "dropped"},
		{"question": "GRE for Germany?", "answer": "Usually optional. Source: General knowledge", "category": "tests"},
		{"question": "When to start SOP?", "answer": "4-6 weeks before. Source: General knowledge", "category": "sop"},
		{"question": "Visa timeline?", "answer": "Three months ahead. Source: General knowledge", "category": "visa"},
		{"question": "Sixth?", "answer": "Cut off.", "category": "general"}
	]}`}
	svc := NewQnAService(client)

	pairs := svc.Generate(context.Background(), testProfile(), testPrograms())
	assertQnAShape(t, pairs)
	assert.Equal(t, "What is the APS certificate an", pairs[0].Question)
	assert.Equal(t, domain.QnACountry, pairs[0].Category)
	assert.Equal(t, domain.QnAGeneral, pairs[1].Category, "unknown category becomes general")
	assert.Equal(t, "Visa timeline?", pairs[4].Question)

	prompt := client.lastRequest().UserPrompt
	assert.Contains(t, prompt, "Netherlands")
	assert.NotContains(t, prompt, "USA", "only the first three programs' countries")
}

func TestQnAGenerate_PadsShortAnswers(t *testing.T) {
	client := &mockLLMClient{response: `{"qna_pairs": [{"question": "Do I need GRE?", "answer": "Check each program.", "category": "tests"}]}`}

	pairs := NewQnAService(client).Generate(context.Background(), testProfile(), testPrograms())
	assertQnAShape(t, pairs)
	assert.Equal(t, "Do I need GRE?", pairs[0].Question)
	for _, p := range pairs[1:] {
		assert.Equal(t, "Application tips?", p.Question)
	}
}

func TestQnAGenerate_Fallback(t *testing.T) {
	for _, client := range []*mockLLMClient{
		{err: llm.ErrRetryExhausted},
		{response: "not json"},
		{response: `{"qna_pairs": []}`},
	} {
		pairs := NewQnAService(client).Generate(context.Background(), testProfile(), nil)
		assertQnAShape(t, pairs)
		assert.Equal(t, FallbackQnA(), pairs)
	}
}

func TestFallbackQnA_Shape(t *testing.T) {
	assertQnAShape(t, FallbackQnA())
}
