package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/domain"
)

// FormatPlanResponse renders a whole run: summary line, one section per
// shortlisted program, then the Q&A.
func FormatPlanResponse(resp *app.PlanResponse) string {
	var b strings.Builder

	b.WriteString(Header("Application plan"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s  %s  %s\n",
		RunStatusPill(resp.Status),
		Dim("run "+resp.RunID),
		Dim(fmt.Sprintf("%d programs", len(resp.Shortlist))),
	)
	if resp.Profile.TargetDegree != "" {
		fmt.Fprintf(&b, "%s %s\n", Dim("Target:"), resp.Profile.TargetDegree)
	}

	for i, res := range resp.Shortlist {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s %s\n", StyleBlue.Render(fmt.Sprintf("%d.", i+1)), FormatProgramResult(res))
	}

	if len(resp.QnA) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatQnA(resp.QnA))
	}
	return b.String()
}

// FormatProgramResult renders one program's window, timeline and warnings.
func FormatProgramResult(res domain.ProgramResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  %s\n", Bold(res.Program.DisplayName()), OutcomeBadge(res.Outcome))
	fmt.Fprintf(&b, "   %s %s → %s", Dim("Window:"),
		domain.FormatDate(res.Window.Today), domain.FormatDate(res.Window.Deadline))
	if res.Adjustment.Adjusted {
		fmt.Fprintf(&b, "  %s", StyleYellow.Render("(was "+dashIfEmpty(res.Adjustment.OriginalDeadline)+")"))
	}
	b.WriteString("\n")
	if res.Adjustment.Reason != "" {
		fmt.Fprintf(&b, "   %s\n", Dim(res.Adjustment.Reason))
	}
	if res.Error != "" {
		fmt.Fprintf(&b, "   %s\n", StyleRed.Render(res.Error))
	}

	if len(res.Timeline) > 0 {
		b.WriteString("\n")
		b.WriteString(indent(FormatTimeline(res.Timeline, res.Window.Today), "   "))
	}

	if len(res.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range res.Warnings {
			fmt.Fprintf(&b, "   %s %s\n", StyleYellow.Render("!"), w)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTimeline renders tasks as a table in their stored order.
func FormatTimeline(tasks domain.Timeline, today time.Time) string {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		due := t.DueDate
		if d, ok := t.Due(); ok {
			due = DueStyled(d, today)
		} else {
			due = StyleRed.Render(dashIfEmpty(due))
		}
		rows = append(rows, []string{due, t.Title, Dim(dashIfEmpty(t.Dependency))})
	}
	return RenderTable([]string{"DUE", "TASK", "AFTER"}, rows)
}

func FormatQnA(pairs []domain.QnAPair) string {
	var b strings.Builder
	b.WriteString(Header("Questions & answers"))
	b.WriteString("\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s %s\n", StylePurple.Render("Q"), Bold(p.Question))
		fmt.Fprintf(&b, "%s %s\n\n", StyleGreen.Render("A"), p.Answer)
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}
