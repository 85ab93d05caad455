package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
)

// ShortlistSize is how many programs a run plans for.
const ShortlistSize = 3

// ProgramRankService narrows country-filtered candidates to a shortlist.
type ProgramRankService interface {
	Rank(ctx context.Context, profile domain.StudentProfile, candidates []domain.Program) []domain.Program
}

type programRankService struct {
	client llm.LLMClient
}

func NewProgramRankService(client llm.LLMClient) ProgramRankService {
	return &programRankService{client: client}
}

type rankedProgram struct {
	Name           string `json:"name"`
	University     string `json:"university"`
	MatchReasoning string `json:"match_reasoning"`
}

type rankOutput struct {
	Programs []rankedProgram `json:"programs"`
}

func validateRank(out rankOutput) error {
	if len(out.Programs) == 0 {
		return errors.New("no programs ranked")
	}
	return nil
}

// Rank returns at most ShortlistSize programs. Model picks are matched back
// to the candidate list so catalog fields are never rewritten; picks that
// match nothing are dropped. With no usable picks the first candidates are
// returned in catalog order.
func (s *programRankService) Rank(ctx context.Context, profile domain.StudentProfile, candidates []domain.Program) []domain.Program {
	if len(candidates) == 0 {
		return []domain.Program{}
	}
	fallback := FirstPrograms(candidates, profile)

	payload := struct {
		Profile    domain.StudentProfile `json:"profile"`
		Candidates []domain.Program      `json:"candidates"`
	}{profile, candidates}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fallback
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskRank,
		SystemPrompt: rankSystemPrompt,
		UserPrompt:   string(data),
		JSON:         true,
	})
	if err != nil {
		return fallback
	}
	out, err := llm.ExtractJSON[rankOutput](resp.Text, validateRank)
	if err != nil {
		return fallback
	}

	picked := make([]domain.Program, 0, ShortlistSize)
	seen := map[string]bool{}
	for _, r := range out.Programs {
		p, ok := matchCandidate(candidates, r)
		if !ok || seen[p.Key()] {
			continue
		}
		seen[p.Key()] = true
		p.MatchReasoning = strings.TrimSpace(r.MatchReasoning)
		if p.MatchReasoning == "" {
			p.MatchReasoning = defaultReasoning(p, profile)
		}
		picked = append(picked, p)
		if len(picked) == ShortlistSize {
			break
		}
	}
	if len(picked) == 0 {
		return fallback
	}
	return picked
}

func matchCandidate(candidates []domain.Program, r rankedProgram) (domain.Program, bool) {
	name := strings.ToLower(strings.TrimSpace(r.Name))
	uni := strings.ToLower(strings.TrimSpace(r.University))
	for _, c := range candidates {
		if strings.ToLower(c.Name) != name {
			continue
		}
		if uni == "" || strings.ToLower(c.University) == uni {
			return c, true
		}
	}
	return domain.Program{}, false
}

// FirstPrograms is the ranking fallback: the first ShortlistSize candidates
// with a deterministic reasoning line.
func FirstPrograms(candidates []domain.Program, profile domain.StudentProfile) []domain.Program {
	n := min(len(candidates), ShortlistSize)
	out := make([]domain.Program, n)
	for i := range n {
		out[i] = candidates[i]
		if out[i].MatchReasoning == "" {
			out[i].MatchReasoning = defaultReasoning(out[i], profile)
		}
	}
	return out
}

func defaultReasoning(p domain.Program, profile domain.StudentProfile) string {
	reason := fmt.Sprintf("Offered in %s", p.Country)
	if profile.TargetDegree != "" {
		reason += fmt.Sprintf(" and related to your target degree (%s)", profile.TargetDegree)
	}
	if p.EligibilityCriteria != "" {
		reason += ". Eligibility: " + p.EligibilityCriteria
	}
	return reason + "."
}
