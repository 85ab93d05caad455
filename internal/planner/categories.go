package planner

import (
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
)

// Recommendation letters need 4 to 6 weeks between request and receipt.
const (
	LORSpanMinDays = 28
	LORSpanMaxDays = 42
)

// categoryPolicy is the scheduling and wording policy of one category.
// MinDays is the working time that precedes the task's due date.
type categoryPolicy struct {
	MinDays     int
	Title       string
	Description string
}

var policies = map[domain.TaskCategory]categoryPolicy{
	domain.CategoryVerifyRequirements: {3, "Verify admission requirements",
		"Confirm the document list, test policy and deadline on the official program page."},
	domain.CategoryObtainTranscripts: {14, "Obtain transcripts and certificates",
		"Request official transcripts and degree certificates from your institution."},
	domain.CategoryPrepareCV: {7, "Prepare CV",
		"Update your CV with coursework, projects, research and work experience."},
	domain.CategoryDraftSOP: {21, "Draft and finalize statement of purpose",
		"Write, review and polish a statement of purpose tailored to the program."},
	domain.CategoryRequestLOR: {3, "Request letters of recommendation",
		"Ask your recommenders and send them your CV, SOP draft and the submission instructions."},
	domain.CategoryReceiveLOR: {LORSpanMinDays, "Receive letters of recommendation",
		"Confirm every recommender has submitted; follow up on missing letters."},
	domain.CategoryTakeTest: {30, "Take required tests",
		"Prepare for and sit the required standardized tests, then send official scores."},
	domain.CategorySubmitApplication: {7, "Complete online application",
		"Fill in the application form, upload documents and pay the application fee."},
	domain.CategoryFinalReview: {2, "Final review and submission",
		"Review every uploaded document and submit the application ahead of the deadline."},
}

// MinDuration returns the minimum working days for c.
func MinDuration(c domain.TaskCategory) int {
	return policies[c].MinDays
}

var optionalTestMarkers = []string{"optional", "not required", "waived", "recommended", "no test"}

// ambiguityMarkers in special notes call for an explicit verification step.
var ambiguityMarkers = []string{
	"verify", "confirm", "check", "unclear", "not specified", "may need", "may require", "might",
	"official", "contact", "subject to change", "tbd", "tba", "failed to parse", "unknown",
}

// RequiredTests returns the test requirements that are mandatory.
func RequiredTests(req domain.ProgramRequirements) []string {
	var out []string
	for _, t := range req.TestRequirements {
		lower := strings.ToLower(strings.TrimSpace(t))
		if lower == "" || containsAny(lower, optionalTestMarkers) {
			continue
		}
		out = append(out, strings.TrimSpace(t))
	}
	return out
}

// NeedsTestTask reports whether take_test belongs in the plan: either the
// program requires tests, or the student has no recorded scores to reuse.
func NeedsTestTask(req domain.ProgramRequirements, profile domain.StudentProfile) bool {
	if len(RequiredTests(req)) > 0 {
		return true
	}
	return !profile.HasAnyScore()
}

// MissingScores lists required tests the student has no score for.
func MissingScores(req domain.ProgramRequirements, profile domain.StudentProfile) []string {
	var out []string
	for _, t := range RequiredTests(req) {
		if !profile.HasScore(testName(t)) {
			out = append(out, t)
		}
	}
	return out
}

// NeedsVerification reports whether the requirement data is incomplete or
// flagged as uncertain.
func NeedsVerification(req domain.ProgramRequirements) bool {
	if !req.DocumentsKnown() || !req.TestsKnown() {
		return true
	}
	notes := strings.ToLower(req.SpecialNotes)
	return containsAny(notes, ambiguityMarkers)
}

// SelectCategories returns the categories to schedule, in forward order.
func SelectCategories(req domain.ProgramRequirements, profile domain.StudentProfile) []domain.TaskCategory {
	var out []domain.TaskCategory
	for _, c := range domain.ForwardOrder {
		switch c {
		case domain.CategoryVerifyRequirements:
			if !NeedsVerification(req) {
				continue
			}
		case domain.CategoryTakeTest:
			if !NeedsTestTask(req, profile) {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// testName strips score qualifiers such as "TOEFL 90" down to "TOEFL".
func testName(requirement string) string {
	fields := strings.Fields(requirement)
	if len(fields) == 0 {
		return requirement
	}
	return strings.Trim(fields[0], ",:;")
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
