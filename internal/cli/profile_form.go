package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/cli/formatter"
	"github.com/alexanderramin/gradplan/internal/importer"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// profileAnswers holds the raw form input. Lists are comma separated and
// scores are NAME=SCORE pairs.
type profileAnswers struct {
	TargetDegree string
	GPA          string
	Countries    string
	Budget       string
	Interests    string
	Intake       string
	Scores       string
	Resume       string
}

func gradplanHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func profileForm(a *profileAnswers) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Target degree").
				Placeholder("MS Computer Science").
				Value(&a.TargetDegree).
				Validate(requiredText("target degree")),
			huh.NewInput().
				Title("GPA").
				Description("Blank if unknown").
				Placeholder("3.6").
				Value(&a.GPA).
				Validate(validateGPA),
			huh.NewInput().
				Title("Test scores").
				Description("NAME=SCORE, comma separated").
				Placeholder("IELTS=7.5, GRE=320").
				Value(&a.Scores).
				Validate(validateScores),
		).Title("Academics"),
		huh.NewGroup(
			huh.NewInput().
				Title("Target countries").
				Description("Comma separated, blank for any").
				Placeholder("Germany, Netherlands").
				Value(&a.Countries),
			huh.NewInput().
				Title("Budget").
				Placeholder("$20,000 per year").
				Value(&a.Budget),
			huh.NewInput().
				Title("Interests").
				Placeholder("machine learning, robotics").
				Value(&a.Interests),
			huh.NewInput().
				Title("Target intake").
				Placeholder("Fall 2025").
				Value(&a.Intake),
		).Title("Preferences"),
		huh.NewGroup(
			huh.NewText().
				Title("Resume").
				Description("Optional. Paste plain text to fill gaps in the profile").
				Value(&a.Resume),
		).Title("Resume"),
	).WithTheme(gradplanHuhTheme()).WithShowHelp(false)
}

// request turns the answers into the profile file shape so validation and
// conversion match --profile.
func (a profileAnswers) request(source string) (app.PlanRequest, error) {
	pf := &importer.ProfileFile{
		TargetDegree:    strings.TrimSpace(a.TargetDegree),
		TargetCountries: splitList(a.Countries),
		Budget:          strings.TrimSpace(a.Budget),
		Interests:       splitList(a.Interests),
		TargetIntake:    strings.TrimSpace(a.Intake),
		ResumeText:      strings.TrimSpace(a.Resume),
	}
	if s := strings.TrimSpace(a.GPA); s != "" {
		gpa, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return app.PlanRequest{}, fmt.Errorf("gpa: %w", err)
		}
		pf.GPA = &gpa
	}
	scores, err := parseScores(a.Scores)
	if err != nil {
		return app.PlanRequest{}, err
	}
	pf.TestScores = scores

	if errs := importer.ValidateProfileFile(pf); len(errs) > 0 {
		return app.PlanRequest{}, joinErrors("invalid profile:", errs)
	}
	return importer.Convert(pf, source), nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseScores(s string) (map[string]string, error) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(parts))
	for _, part := range parts {
		name, score, ok := strings.Cut(part, "=")
		name, score = strings.TrimSpace(name), strings.TrimSpace(score)
		if !ok || name == "" || score == "" {
			return nil, fmt.Errorf("test score %q: use NAME=SCORE", part)
		}
		out[name] = score
	}
	return out, nil
}

func requiredText(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateGPA accepts empty or a number within importer.MaxGPA.
func validateGPA(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || v > importer.MaxGPA {
		return fmt.Errorf("enter a number between 0 and %.0f", importer.MaxGPA)
	}
	return nil
}

func validateScores(s string) error {
	_, err := parseScores(s)
	return err
}
