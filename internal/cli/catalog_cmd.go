package cli

import (
	"fmt"

	"github.com/alexanderramin/gradplan/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCatalogCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the program catalog",
	}
	cmd.AddCommand(newCatalogListCmd(a))
	return cmd
}

func newCatalogListCmd(a *App) *cobra.Command {
	var countries []string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog programs",
		Long:  "Lists catalog programs. A country filter that matches nothing shows the whole catalog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			programs := a.Catalog.Filter(countries)
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), programs)
			}
			if len(programs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The catalog is empty.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatProgramList(programs))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&countries, "country", nil, "Only programs in these countries")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print as JSON")
	return cmd
}
