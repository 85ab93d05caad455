package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/google/uuid"
)

var programCounter atomic.Int64

// Today is the fixed planning date used across fixtures.
var Today = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// Program options
type ProgramOption func(*domain.Program)

func WithCountry(country string) ProgramOption {
	return func(p *domain.Program) {
		p.Country = country
	}
}

func WithDeadline(deadline string) ProgramOption {
	return func(p *domain.Program) {
		p.ApplicationDeadline = deadline
	}
}

func WithUniversity(university string) ProgramOption {
	return func(p *domain.Program) {
		p.University = university
	}
}

func NewTestProgram(name string, opts ...ProgramOption) domain.Program {
	n := programCounter.Add(1)
	p := domain.Program{
		Name:                name,
		University:          fmt.Sprintf("Test University %02d", n),
		Country:             "Germany",
		TuitionRange:        "€0 - €3,000/year",
		ApplicationDeadline: "2025-07-15",
		EligibilityCriteria: "Bachelor's in a related field",
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

func NewTestProfile() domain.StudentProfile {
	return domain.StudentProfile{
		GPA:             3.6,
		TargetDegree:    "MS Computer Science",
		TargetCountries: []string{"Germany"},
		Budget:          "$20,000",
		Interests:       []string{"machine learning"},
		TargetIntake:    "Fall 2025",
		TestScores:      map[string]string{"IELTS": "7.5"},
	}
}

// NewTestResult builds an ok result for program with a two-task timeline
// ending on the program's deadline.
func NewTestResult(program domain.Program) domain.ProgramResult {
	deadline, err := domain.ParseDate(program.ApplicationDeadline)
	if err != nil {
		deadline = domain.AddDays(Today, 180)
	}
	return domain.ProgramResult{
		Program: program,
		Requirements: domain.ProgramRequirements{
			ProgramName:       program.Name,
			RequiredDocuments: []string{"Transcripts", "CV"},
			TestRequirements:  []string{"IELTS 6.5"},
		},
		Window:     domain.Window{Today: Today, Deadline: deadline},
		Adjustment: domain.AdjustmentRecord{OriginalDeadline: program.ApplicationDeadline},
		Outcome:    domain.OutcomeOK,
		Timeline: domain.Timeline{
			{
				Title:       "Verify requirements",
				Description: "Check the official program page",
				DueDate:     domain.FormatDate(domain.AddDays(Today, 7)),
				Category:    domain.CategoryVerifyRequirements,
				Status:      domain.TaskPending,
			},
			{
				Title:       "Submit application",
				Description: "Submit through the university portal",
				DueDate:     domain.FormatDate(deadline),
				Category:    domain.CategorySubmitApplication,
				Dependency:  "Verify requirements",
				Status:      domain.TaskPending,
			},
		},
		Warnings: []string{},
	}
}

// PlanRun options
type PlanRunOption func(*domain.PlanRun)

func WithResults(results ...domain.ProgramResult) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.Results = results
	}
}

func WithSource(source string) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.Source = source
	}
}

func WithCreatedAt(t time.Time) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.CreatedAt = t
	}
}

func WithQnA(pairs ...domain.QnAPair) PlanRunOption {
	return func(r *domain.PlanRun) {
		r.QnA = pairs
	}
}

// NewTestPlanRun returns a completed run with one ok result unless options
// say otherwise. Status is derived after options apply.
func NewTestPlanRun(opts ...PlanRunOption) *domain.PlanRun {
	r := &domain.PlanRun{
		ID:        uuid.New().String(),
		Profile:   NewTestProfile(),
		Today:     Today,
		Results:   []domain.ProgramResult{NewTestResult(NewTestProgram("MS in Data Science"))},
		QnA:       []domain.QnAPair{},
		Source:    domain.SourceCLI,
		CreatedAt: time.Now().UTC().Truncate(time.Millisecond),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.Status = r.DeriveStatus()
	return r
}
