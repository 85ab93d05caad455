package importer

import (
	"fmt"
	"sort"
	"strings"
)

// MaxGPA accepts 4-point, 5-point and 10-point scales.
const MaxGPA = 10.0

// ValidateProfileFile checks the profile before planning.
// Returns a slice of all validation errors found.
func ValidateProfileFile(pf *ProfileFile) []error {
	var errs []error

	if strings.TrimSpace(pf.TargetDegree) == "" {
		errs = append(errs, fmt.Errorf("target_degree is required"))
	}
	if pf.GPA != nil && (*pf.GPA < 0 || *pf.GPA > MaxGPA) {
		errs = append(errs, fmt.Errorf("gpa: %.2f is outside 0-%.0f", *pf.GPA, MaxGPA))
	}
	errs = append(errs, validateList("target_countries", pf.TargetCountries)...)
	errs = append(errs, validateList("interests", pf.Interests)...)
	errs = append(errs, validateScores(pf.TestScores)...)

	return errs
}

func validateList(field string, items []string) []error {
	var errs []error
	for i, item := range items {
		if strings.TrimSpace(item) == "" {
			errs = append(errs, fmt.Errorf("%s[%d] is empty", field, i))
		}
	}
	return errs
}

func validateScores(scores map[string]string) []error {
	names := make([]string, 0, len(scores))
	for name := range scores {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			errs = append(errs, fmt.Errorf("test_scores: test name is empty"))
			continue
		}
		if strings.TrimSpace(scores[name]) == "" {
			errs = append(errs, fmt.Errorf("test_scores.%s: score is empty", name))
		}
	}
	return errs
}
