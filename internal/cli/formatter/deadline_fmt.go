package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
)

// FormatDeadline renders the outcome of resolving one deadline. A non-nil
// resolveErr means window is the fallback window.
func FormatDeadline(raw string, window domain.Window, record domain.AdjustmentRecord, resolveErr error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", Dim("Input:   "), dashIfEmpty(raw))
	fmt.Fprintf(&b, "%s %s\n", Dim("Today:   "), domain.FormatDate(window.Today))
	fmt.Fprintf(&b, "%s %s\n", Dim("Deadline:"), Bold(domain.FormatDate(window.Deadline)))
	fmt.Fprintf(&b, "%s %d days\n", Dim("Lead:    "), window.LeadDays())

	switch {
	case resolveErr != nil:
		fmt.Fprintf(&b, "\n%s %s\n", OutcomeBadge(domain.OutcomeDegraded), resolveErr.Error())
		b.WriteString(Dim("Using the fallback window; confirm the real deadline.") + "\n")
	case record.Adjusted:
		fmt.Fprintf(&b, "\n%s %s\n", OutcomeBadge(domain.OutcomeAdjusted), record.Reason)
	default:
		fmt.Fprintf(&b, "\n%s\n", OutcomeBadge(domain.OutcomeOK))
	}
	return b.String()
}
