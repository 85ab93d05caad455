package cli

import (
	"fmt"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse saved plan runs",
	}
	cmd.AddCommand(
		newHistoryListCmd(a),
		newHistoryShowCmd(a),
	)
	return cmd
}

func newHistoryListCmd(a *App) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent plan runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			runs, err := a.History.List(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), runs)
			}
			if len(runs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No plan runs yet.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRunList(runs))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}

func newHistoryShowCmd(a *App) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one saved plan run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			run, err := a.History.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			resp := app.ResponseFromRun(run)
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanResponse(resp))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}
