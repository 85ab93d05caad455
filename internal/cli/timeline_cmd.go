package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/cli/formatter"
	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/planner"
	"github.com/spf13/cobra"
)

func newTimelineCmd(a *App) *cobra.Command {
	var (
		program domain.Program
		reqs    domain.ProgramRequirements
		profile domain.StudentProfile
		today   string
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Plan one program without text generation",
		Long: `Builds the deterministic timeline for a single program.

Requirement lists left out are treated as unknown, which adds a task to
verify them on the program website.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("documents") {
				reqs.RequiredDocuments = nil
			}
			if !flags.Changed("tests") {
				reqs.TestRequirements = nil
			}

			req := app.TimelineRequest{Program: program, Requirements: reqs, Profile: profile}
			var err error
			if req.Now, err = parseToday(today); err != nil {
				return err
			}

			resp, err := a.Timelines.PlanProgram(cmd.Context(), req)
			if err != nil {
				return err
			}
			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatProgramResult(resp.Result))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.Dim("Stages: "+joinStages(resp.Trace)))
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&program.Name, "program", "", "Program name")
	f.StringVar(&program.University, "university", "", "University")
	f.StringVar(&program.ApplicationDeadline, "deadline", "", "Application deadline (YYYY-MM-DD)")
	f.StringSliceVar(&reqs.RequiredDocuments, "documents", nil, "Required documents (comma separated)")
	f.StringSliceVar(&reqs.TestRequirements, "tests", nil, "Required tests, e.g. IELTS,GRE (optional)")
	f.StringVar(&reqs.SpecialNotes, "notes", "", "Special notes from the admissions page")
	f.Float64Var(&profile.GPA, "gpa", 0, "Student GPA")
	f.StringToStringVar(&profile.TestScores, "scores", nil, "Test scores on file, e.g. IELTS=7.5")
	f.StringVar(&today, "today", "", "Plan as of this date (YYYY-MM-DD)")
	f.BoolVar(&jsonOut, "json", false, "Print the result as JSON")
	_ = cmd.MarkFlagRequired("program")

	return cmd
}

func joinStages(stages []planner.Stage) string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = string(s)
	}
	return strings.Join(names, " → ")
}
