package cli

import (
	"fmt"

	"github.com/alexanderramin/gradplan/internal/cli/formatter"
	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/planner"
	"github.com/spf13/cobra"
)

func newDeadlineCmd(a *App) *cobra.Command {
	var today string
	var minLead, fallbackDays int

	cmd := &cobra.Command{
		Use:   "deadline <YYYY-MM-DD>",
		Short: "Resolve a deadline into a planning window",
		Long: `Shows how a deadline would be scheduled: kept, rolled forward one
application cycle, or replaced by the fallback window when it cannot be
parsed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := domain.CivilDate(a.today())
			if t, err := parseToday(today); err != nil {
				return err
			} else if t != nil {
				now = *t
			}

			raw := args[0]
			window, record, err := planner.ResolveDeadline(raw, now, minLead)
			if err != nil {
				window = planner.FallbackWindow(now, fallbackDays)
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDeadline(raw, window, record, err))
			return nil
		},
	}

	policy := a.Policy
	if policy == (planner.Policy{}) {
		policy = planner.DefaultPolicy()
	}
	cmd.Flags().StringVar(&today, "today", "", "Resolve as of this date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&minLead, "min-lead", policy.MinLeadDays, "Minimum days of lead time before rolling forward")
	cmd.Flags().IntVar(&fallbackDays, "fallback-days", policy.FallbackDays, "Window length when the deadline is unparsable")

	return cmd
}
