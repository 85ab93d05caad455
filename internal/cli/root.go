// Package cli implements the gradplan command tree.
package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/planner"
	"github.com/alexanderramin/gradplan/internal/service"
	"github.com/spf13/cobra"
)

// App holds the use cases and settings the commands run against.
type App struct {
	Plans     app.PlanUseCase
	Timelines app.TimelineUseCase
	History   app.HistoryUseCase
	Catalog   service.ProgramSource

	// Policy seeds the deadline command defaults.
	Policy planner.Policy

	// IsInteractive reports whether stdin is a terminal. Nil means never,
	// which keeps the form and progress view out of scripted runs.
	IsInteractive func() bool

	// Serve runs the HTTP server on addr until ctx is done. An empty addr
	// means the configured one.
	Serve func(ctx context.Context, addr string) error

	// Now overrides the clock for commands that default to today.
	Now func() time.Time
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) today() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "gradplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "gradplan",
		Short:         "Graduate application planner",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Read by main before the App is wired; registered here so cobra
	// accepts it on every subcommand.
	root.PersistentFlags().String("config", "", "Path to a YAML config file")

	root.AddCommand(
		newPlanCmd(app),
		newTimelineCmd(app),
		newDeadlineCmd(app),
		newHistoryCmd(app),
		newCatalogCmd(app),
		newServeCmd(app),
	)
	return root
}
