// Package formatter renders planning results for the terminal with lipgloss.
package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// OutcomeBadge returns a colored indicator such as "● ADJUSTED".
func OutcomeBadge(outcome domain.PlanOutcome) string {
	switch outcome {
	case domain.OutcomeOK:
		return StyleGreen.Render("● ON TRACK")
	case domain.OutcomeAdjusted:
		return StyleYellow.Render("● ADJUSTED")
	case domain.OutcomeDegraded:
		return StyleYellow.Render("▲ DEGRADED")
	case domain.OutcomeGenerationFailed:
		return StyleRed.Render("✖ GENERATION FAILED")
	case domain.OutcomeError:
		return StyleRed.Render("✖ ERROR")
	default:
		return StyleDim.Render("● " + strings.ToUpper(string(outcome)))
	}
}

func RunStatusPill(status domain.RunStatus) string {
	switch status {
	case domain.RunCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.RunPartial:
		return StyleYellow.Render("◐ Partial")
	case domain.RunFailed:
		return StyleRed.Render("✖ Failed")
	default:
		return StyleDim.Render(string(status))
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
