package formatter

import "github.com/alexanderramin/gradplan/internal/domain"

func FormatProgramList(programs []domain.Program) string {
	rows := make([][]string, 0, len(programs))
	for _, p := range programs {
		rows = append(rows, []string{
			p.Name,
			p.University,
			p.Country,
			dashIfEmpty(p.ApplicationDeadline),
			dashIfEmpty(p.TuitionRange),
		})
	}
	return RenderTable([]string{"PROGRAM", "UNIVERSITY", "COUNTRY", "DEADLINE", "TUITION"}, rows)
}
