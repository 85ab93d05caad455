package importer

import (
	"github.com/alexanderramin/gradplan/internal/app"
)

// Convert turns a validated profile file into a plan request. The profile
// travels as raw answers so intake normalizes it exactly as it would an
// HTTP body.
func Convert(pf *ProfileFile, source string) app.PlanRequest {
	raw := map[string]any{
		"target_degree": pf.TargetDegree,
	}
	if pf.GPA != nil {
		raw["gpa"] = *pf.GPA
	}
	if len(pf.TargetCountries) > 0 {
		raw["target_countries"] = pf.TargetCountries
	}
	if pf.Budget != "" {
		raw["budget"] = pf.Budget
	}
	if len(pf.Interests) > 0 {
		raw["interests"] = pf.Interests
	}
	if pf.TargetIntake != "" {
		raw["target_intake"] = pf.TargetIntake
	}
	if len(pf.TestScores) > 0 {
		raw["test_scores"] = pf.TestScores
	}

	req := app.NewPlanRequest(raw, source)
	req.ResumeText = pf.ResumeText
	return req
}
