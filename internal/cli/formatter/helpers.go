package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RelativeDays describes due relative to today in whole calendar days.
func RelativeDays(due, today time.Time) string {
	days := domain.DaysBetween(today, due)
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 0 && days < 14:
		return fmt.Sprintf("In %dd", days)
	case days > 0 && days < 60:
		return fmt.Sprintf("In %dw", days/7)
	case days > 0:
		return fmt.Sprintf("In %dmo", days/30)
	case days > -14:
		return fmt.Sprintf("%dd ago", -days)
	default:
		return fmt.Sprintf("%dw ago", -days/7)
	}
}

// DueStyled colors a due date by urgency: red within a week, yellow within
// a month.
func DueStyled(due, today time.Time) string {
	text := fmt.Sprintf("%s (%s)", domain.FormatDate(due), RelativeDays(due, today))
	days := domain.DaysBetween(today, due)
	switch {
	case days <= 7:
		return StyleRed.Render(text)
	case days <= 30:
		return StyleYellow.Render(text)
	default:
		return StyleFg.Render(text)
	}
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

func dashIfEmpty(s string) string {
	if strings.TrimSpace(s) == "" {
		return "--"
	}
	return s
}
