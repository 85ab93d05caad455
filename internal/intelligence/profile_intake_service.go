package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/llm"
)

// ErrIncompleteProfile is returned when the raw data cannot yield a usable
// profile, with or without the model.
var ErrIncompleteProfile = errors.New("incomplete student profile")

// ProfileIntakeService turns raw form or API input into a StudentProfile.
type ProfileIntakeService interface {
	Normalize(ctx context.Context, raw map[string]any) (domain.StudentProfile, error)
}

type profileIntakeService struct {
	client llm.LLMClient
}

func NewProfileIntakeService(client llm.LLMClient) ProfileIntakeService {
	return &profileIntakeService{client: client}
}

type intakeOutput struct {
	GPA             float64  `json:"gpa"`
	TargetDegree    string   `json:"target_degree"`
	TargetCountries []string `json:"target_countries"`
	Budget          string   `json:"budget"`
	Interests       []string `json:"interests"`
	TargetIntake    string   `json:"target_intake"`
	TestScores      []struct {
		Name  string `json:"name"`
		Score string `json:"score"`
	} `json:"test_scores"`
}

func validateIntake(out intakeOutput) error {
	if out.GPA < 0 || out.GPA > 10 {
		return fmt.Errorf("gpa %v out of range", out.GPA)
	}
	return nil
}

// Normalize asks the model to clean the input and fills anything it leaves
// blank from the direct field mapping. Without a usable model response the
// direct mapping is returned as is.
func (s *profileIntakeService) Normalize(ctx context.Context, raw map[string]any) (domain.StudentProfile, error) {
	direct := MapProfile(raw)

	rawJSON, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return direct, ValidateProfile(direct)
	}
	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskIntake,
		SystemPrompt: intakeSystemPrompt,
		UserPrompt:   "Raw student data:\n\n" + string(rawJSON),
		JSON:         true,
	})
	if err != nil {
		return direct, ValidateProfile(direct)
	}
	out, err := llm.ExtractJSON[intakeOutput](resp.Text, validateIntake)
	if err != nil {
		return direct, ValidateProfile(direct)
	}

	profile := domain.StudentProfile{
		GPA:             out.GPA,
		TargetDegree:    domain.CoalesceStr(out.TargetDegree, direct.TargetDegree),
		TargetCountries: nonEmpty(out.TargetCountries, direct.TargetCountries),
		Budget:          domain.CoalesceStr(out.Budget, direct.Budget),
		Interests:       nonEmpty(out.Interests, direct.Interests),
		TargetIntake:    domain.CoalesceStr(out.TargetIntake, direct.TargetIntake),
		TestScores:      direct.TestScores,
	}
	if profile.GPA == 0 {
		profile.GPA = direct.GPA
	}
	if len(out.TestScores) > 0 {
		profile.TestScores = make(map[string]string, len(out.TestScores))
		for _, ts := range out.TestScores {
			if name := strings.TrimSpace(ts.Name); name != "" {
				profile.TestScores[name] = strings.TrimSpace(ts.Score)
			}
		}
	}
	return profile, ValidateProfile(profile)
}

// ValidateProfile checks the fields planning cannot do without.
func ValidateProfile(p domain.StudentProfile) error {
	var missing []string
	if strings.TrimSpace(p.TargetDegree) == "" {
		missing = append(missing, "target_degree")
	}
	if p.GPA < 0 {
		missing = append(missing, "gpa (negative)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrIncompleteProfile, strings.Join(missing, ", "))
	}
	return nil
}

// MapProfile maps raw input onto a profile without the model. Short aliases
// are accepted: degree, countries, intake and tests. List fields may be
// arrays or comma-separated strings; test scores may be an object or a list
// of {name, score} entries.
func MapProfile(raw map[string]any) domain.StudentProfile {
	return domain.StudentProfile{
		GPA:             toFloat(lookup(raw, "gpa")),
		TargetDegree:    toString(lookup(raw, "target_degree", "degree")),
		TargetCountries: toStringList(lookup(raw, "target_countries", "countries")),
		Budget:          toString(lookup(raw, "budget")),
		Interests:       toStringList(lookup(raw, "interests")),
		TargetIntake:    toString(lookup(raw, "target_intake", "intake")),
		TestScores:      toScores(lookup(raw, "test_scores", "tests")),
	}
}

func lookup(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func toString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(t))
	}
}

func toFloat(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

func toStringList(v any) []string {
	var items []string
	switch t := v.(type) {
	case []string:
		items = t
	case []any:
		for _, e := range t {
			items = append(items, toString(e))
		}
	case string:
		items = strings.Split(t, ",")
	}
	out := []string{}
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func toScores(v any) map[string]string {
	out := map[string]string{}
	switch t := v.(type) {
	case map[string]string:
		for k, s := range t {
			out[strings.TrimSpace(k)] = strings.TrimSpace(s)
		}
	case map[string]any:
		for k, s := range t {
			out[strings.TrimSpace(k)] = toString(s)
		}
	case []any:
		for _, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				continue
			}
			if name := toString(m["name"]); name != "" {
				out[name] = toString(m["score"])
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func nonEmpty(primary, fallback []string) []string {
	if len(primary) > 0 {
		return primary
	}
	return fallback
}
