package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
)

const (
	// QnACount is the exact number of pairs every run carries.
	QnACount = 5
	// MaxQuestionLen is the question length limit in characters.
	MaxQuestionLen = 30
)

// QnAService produces short questions and answers tailored to the
// shortlist.
type QnAService interface {
	Generate(ctx context.Context, profile domain.StudentProfile, programs []domain.Program) []domain.QnAPair
}

type qnaService struct {
	client llm.LLMClient
}

func NewQnAService(client llm.LLMClient) QnAService {
	return &qnaService{client: client}
}

type qnaOutput struct {
	Pairs []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
		Category string `json:"category"`
	} `json:"qna_pairs"`
}

func validateQnA(out qnaOutput) error {
	if len(out.Pairs) == 0 {
		return errors.New("no pairs")
	}
	return nil
}

// Generate always returns exactly QnACount pairs. Model output is truncated
// or padded with a generic tip; a failed call returns FallbackQnA.
func (s *qnaService) Generate(ctx context.Context, profile domain.StudentProfile, programs []domain.Program) []domain.QnAPair {
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskQnA,
		SystemPrompt: qnaSystemPrompt,
		UserPrompt:   qnaPrompt(profile, programs),
		JSON:         true,
	})
	if err != nil {
		return FallbackQnA()
	}
	out, err := llm.ExtractJSON[qnaOutput](resp.Text, validateQnA)
	if err != nil {
		return FallbackQnA()
	}

	pairs := make([]domain.QnAPair, 0, QnACount)
	for _, p := range out.Pairs {
		if len(pairs) == QnACount {
			break
		}
		q := truncateRunes(strings.TrimSpace(p.Question), MaxQuestionLen)
		a := strings.TrimSpace(p.Answer)
		if q == "" || a == "" {
			continue
		}
		cat := domain.QnACategory(strings.ToLower(strings.TrimSpace(p.Category)))
		if !domain.ValidQnACategories[cat] {
			cat = domain.QnAGeneral
		}
		pairs = append(pairs, domain.QnAPair{Question: q, Answer: a, Category: cat})
	}
	for len(pairs) < QnACount {
		pairs = append(pairs, domain.QnAPair{
			Question: "Application tips?",
			Answer:   "Start early, get strong LORs, tailor SOP to each program. Review deadlines weekly. Source: General knowledge",
			Category: domain.QnAGeneral,
		})
	}
	return pairs
}

// FallbackQnA is the fixed set used when generation fails.
func FallbackQnA() []domain.QnAPair {
	return []domain.QnAPair{
		{
			Question: "When to start applying?",
			Answer:   "Start 6-8 months before deadline. Research programs, prepare documents, draft SOP early. Source: General knowledge",
			Category: domain.QnAGeneral,
		},
		{
			Question: "Strong SOP tips?",
			Answer:   "Highlight research interests, career goals, and why this program. Be specific and authentic. Source: General knowledge",
			Category: domain.QnASOP,
		},
		{
			Question: "LOR best practices?",
			Answer:   "Request from professors who know you well. Give 4-6 weeks notice. Provide resume and project details. Source: General knowledge",
			Category: domain.QnADocuments,
		},
		{
			Question: "Test scores needed?",
			Answer:   "Check each program's requirements. GRE often optional, TOEFL/IELTS for non-native English speakers. Source: General knowledge",
			Category: domain.QnATests,
		},
		{
			Question: "Application checklist?",
			Answer:   "Transcripts, SOP, LORs, test scores, CV, application fee. Verify program-specific requirements. Source: General knowledge",
			Category: domain.QnADocuments,
		},
	}
}

func qnaPrompt(profile domain.StudentProfile, programs []domain.Program) string {
	var countries, names []string
	seen := map[string]bool{}
	for i, p := range programs {
		if i < 3 && p.Country != "" && !seen[p.Country] {
			seen[p.Country] = true
			countries = append(countries, p.Country)
		}
		if i < 2 {
			names = append(names, p.Name)
		}
	}
	scores := "not provided"
	if len(profile.TestScores) > 0 {
		scores = formatScores(profile.TestScores)
	}
	ctx, _ := json.Marshal(map[string]any{
		"target_degree":    profile.TargetDegree,
		"target_countries": countries,
		"top_programs":     names,
		"gpa":              profile.GPA,
		"test_scores":      scores,
		"budget":           profile.Budget,
	})
	return fmt.Sprintf("Student context:\n%s", ctx)
}

// formatScores renders scores as "GRE 320, TOEFL 100" in name order.
func formatScores(scores map[string]string) string {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = n + " " + scores[n]
	}
	return strings.Join(parts, ", ")
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
