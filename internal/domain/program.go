package domain

import (
	"fmt"
	"strings"
)

type Program struct {
	Name                string `json:"name" yaml:"name"`
	University          string `json:"university" yaml:"university"`
	Country             string `json:"country" yaml:"country"`
	TuitionRange        string `json:"tuition_range" yaml:"tuition_range"`
	ApplicationDeadline string `json:"application_deadline" yaml:"application_deadline"`
	EligibilityCriteria string `json:"eligibility_criteria" yaml:"eligibility_criteria"`
	MatchReasoning      string `json:"match_reasoning,omitempty" yaml:"match_reasoning,omitempty"`
}

// Key identifies a program across catalog reloads and cache entries.
func (p Program) Key() string {
	return strings.ToLower(strings.TrimSpace(p.University) + "|" + strings.TrimSpace(p.Name))
}

// DisplayName returns "Name at University", or just the name when the
// university is unknown.
func (p Program) DisplayName() string {
	if p.University == "" {
		return p.Name
	}
	return fmt.Sprintf("%s at %s", p.Name, p.University)
}

// ProgramRequirements is the extracted admission checklist for a program.
// A nil list means the requirement set is unknown and must be verified on
// the official site.
type ProgramRequirements struct {
	ProgramName       string   `json:"program_name"`
	RequiredDocuments []string `json:"required_documents"`
	TestRequirements  []string `json:"test_requirements"`
	SpecialNotes      string   `json:"special_notes,omitempty"`
}

// DocumentsKnown reports whether a required-documents list was supplied.
func (r ProgramRequirements) DocumentsKnown() bool {
	return r.RequiredDocuments != nil
}

// TestsKnown reports whether a test-requirements list was supplied.
func (r ProgramRequirements) TestsKnown() bool {
	return r.TestRequirements != nil
}

type StudentProfile struct {
	GPA             float64           `json:"gpa"`
	TargetDegree    string            `json:"target_degree"`
	TargetCountries []string          `json:"target_countries"`
	Budget          string            `json:"budget"`
	Interests       []string          `json:"interests"`
	TargetIntake    string            `json:"target_intake"`
	TestScores      map[string]string `json:"test_scores,omitempty"`
}

// HasScore reports whether a non-empty score is recorded for the named test.
// Matching ignores case and surrounding whitespace.
func (p StudentProfile) HasScore(test string) bool {
	want := strings.ToLower(strings.TrimSpace(test))
	for name, score := range p.TestScores {
		if strings.ToLower(strings.TrimSpace(name)) == want && strings.TrimSpace(score) != "" {
			return true
		}
	}
	return false
}

// HasAnyScore reports whether at least one test score is recorded.
func (p StudentProfile) HasAnyScore() bool {
	for _, score := range p.TestScores {
		if strings.TrimSpace(score) != "" {
			return true
		}
	}
	return false
}

type QnAPair struct {
	Question string      `json:"question"`
	Answer   string      `json:"answer"`
	Category QnACategory `json:"category"`
}

// ResumeProfile holds the fields extracted from a resume.
type ResumeProfile struct {
	GPA                 float64           `json:"gpa"`
	UndergradMajor      string            `json:"undergrad_major"`
	WorkExperienceYears float64           `json:"work_experience_years"`
	Backlogs            int               `json:"backlogs"`
	ResearchPapers      int               `json:"research_papers"`
	TestScores          map[string]string `json:"test_scores"`
	Interests           []string          `json:"interests"`
	TargetDegree        string            `json:"target_degree"`
}
