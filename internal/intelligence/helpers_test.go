package intelligence

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
)

type mockLLMClient struct {
	response string
	err      error

	mu       sync.Mutex
	requests []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2", Attempts: 1}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func (m *mockLLMClient) lastRequest() llm.GenerateRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return llm.GenerateRequest{}
	}
	return m.requests[len(m.requests)-1]
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}

var testToday = domainDate("2025-01-01")

func domainDate(s string) time.Time {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testPrograms() []domain.Program {
	return []domain.Program{
		{Name: "MS in Computer Science", University: "Technical University of Munich", Country: "Germany",
			ApplicationDeadline: "2025-05-31", EligibilityCriteria: "GPA > 3.0, GRE optional, IELTS 6.5"},
		{Name: "MS in Data Science", University: "RWTH Aachen", Country: "Germany",
			ApplicationDeadline: "2025-03-01", EligibilityCriteria: "GPA > 3.2, GRE required, TOEFL 90"},
		{Name: "MS in AI", University: "University of Amsterdam", Country: "Netherlands",
			ApplicationDeadline: "2025-04-01", EligibilityCriteria: "GPA > 3.0, Strong Math background"},
		{Name: "MS in Software Engineering", University: "San Jose State University", Country: "USA",
			ApplicationDeadline: "2025-02-20", EligibilityCriteria: "GPA > 3.0, GRE optional"},
	}
}

func testProfile() domain.StudentProfile {
	return domain.StudentProfile{
		GPA:             3.6,
		TargetDegree:    "MS in Computer Science",
		TargetCountries: []string{"Germany"},
		Budget:          "$20,000",
		Interests:       []string{"machine learning"},
		TargetIntake:    "Fall 2025",
		TestScores:      map[string]string{"IELTS": "7.5"},
	}
}
