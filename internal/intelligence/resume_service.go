package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
)

// maxResumeChars bounds the resume text sent to the model.
const maxResumeChars = 10000

var ErrEmptyResume = errors.New("resume text is empty")

// ResumeService extracts profile fields from resume text. Unlike the other
// collaborators it has no deterministic fallback: callers get an empty
// profile and the error.
type ResumeService interface {
	Parse(ctx context.Context, text string) (domain.ResumeProfile, error)
}

type resumeService struct {
	client llm.LLMClient
}

func NewResumeService(client llm.LLMClient) ResumeService {
	return &resumeService{client: client}
}

func validateResume(r domain.ResumeProfile) error {
	switch {
	case r.GPA < 0 || r.GPA > 10:
		return fmt.Errorf("gpa %v out of range", r.GPA)
	case r.WorkExperienceYears < 0:
		return errors.New("negative work experience")
	case r.Backlogs < 0 || r.ResearchPapers < 0:
		return errors.New("negative count")
	}
	return nil
}

func (s *resumeService) Parse(ctx context.Context, text string) (domain.ResumeProfile, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return emptyResume(), ErrEmptyResume
	}
	if r := []rune(text); len(r) > maxResumeChars {
		text = string(r[:maxResumeChars])
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskResume,
		SystemPrompt: resumeSystemPrompt,
		UserPrompt:   "Resume text:\n\n" + text,
		JSON:         true,
	})
	if err != nil {
		return emptyResume(), fmt.Errorf("parsing resume: %w", err)
	}
	out, err := llm.ExtractJSON[domain.ResumeProfile](resp.Text, validateResume)
	if err != nil {
		return emptyResume(), fmt.Errorf("parsing resume: %w", err)
	}
	if out.TestScores == nil {
		out.TestScores = map[string]string{}
	}
	if out.Interests == nil {
		out.Interests = []string{}
	}
	return out, nil
}

func emptyResume() domain.ResumeProfile {
	return domain.ResumeProfile{TestScores: map[string]string{}, Interests: []string{}}
}
