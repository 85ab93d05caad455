package formatter

import (
	"fmt"

	"github.com/alexanderramin/gradplan/internal/domain"
)

// FormatRunList renders history summaries, newest first as given.
func FormatRunList(runs []domain.PlanRunSummary) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.ID,
			RunStatusPill(r.Status),
			fmt.Sprintf("%d", r.Programs),
			dashIfEmpty(r.Source),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return RenderTable([]string{"ID", "STATUS", "PROGRAMS", "SOURCE", "CREATED"}, rows)
}
