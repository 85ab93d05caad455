package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexanderramin/gradplan/internal/app"
	"github.com/alexanderramin/gradplan/internal/cli/formatter"
	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/alexanderramin/gradplan/internal/importer"
	"github.com/spf13/cobra"
)

func newPlanCmd(a *App) *cobra.Command {
	var profilePath, resumePath, today string
	var jsonOut, noSave bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Shortlist programs and build application timelines",
		Long: `Runs the full planning pipeline for one student profile.

The profile comes from --profile (JSON or YAML) or, on a terminal, from an
interactive form. Every run is saved to history unless --no-save is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := planRequest(a, profilePath)
			if err != nil {
				return err
			}
			if resumePath != "" {
				text, err := os.ReadFile(resumePath)
				if err != nil {
					return fmt.Errorf("reading resume: %w", err)
				}
				req.ResumeText = string(text)
			}
			if req.Now, err = parseToday(today); err != nil {
				return err
			}
			req.Persist = !noSave

			var resp *app.PlanResponse
			if a.interactive() && !jsonOut {
				resp, err = runProgressView(cmd.Context(), a.Plans, req, cmd.OutOrStdout())
			} else {
				resp, err = a.Plans.Run(cmd.Context(), req, nil)
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd.OutOrStdout(), resp)
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPlanResponse(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&profilePath, "profile", "", "Profile file (.json, .yaml)")
	cmd.Flags().StringVar(&resumePath, "resume", "", "Plain-text resume; overrides resume_text in the profile")
	cmd.Flags().StringVar(&today, "today", "", "Plan as of this date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the plan as JSON")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "Do not record the run in history")

	return cmd
}

// planRequest loads the profile from a file, or asks for it when running
// on a terminal.
func planRequest(a *App, profilePath string) (app.PlanRequest, error) {
	if profilePath != "" {
		pf, err := importer.LoadProfileFile(profilePath)
		if err != nil {
			return app.PlanRequest{}, err
		}
		if errs := importer.ValidateProfileFile(pf); len(errs) > 0 {
			return app.PlanRequest{}, joinErrors(fmt.Sprintf("invalid profile file %s:", profilePath), errs)
		}
		return importer.Convert(pf, domain.SourceCLI), nil
	}

	if !a.interactive() {
		return app.PlanRequest{}, errors.New("--profile is required when stdin is not a terminal")
	}
	var answers profileAnswers
	if err := profileForm(&answers).Run(); err != nil {
		return app.PlanRequest{}, fmt.Errorf("profile form: %w", err)
	}
	return answers.request(domain.SourceCLI)
}
