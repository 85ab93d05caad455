package planner

import (
	"testing"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/stretchr/testify/assert"
)

func knownRequirements() domain.ProgramRequirements {
	return domain.ProgramRequirements{
		ProgramName:       "MS in Data Science",
		RequiredDocuments: []string{"Transcripts", "CV", "SOP", "2 LORs"},
		TestRequirements:  []string{},
	}
}

func TestSelectCategories_TestRequired(t *testing.T) {
	req := knownRequirements()
	req.TestRequirements = []string{"GRE required", "TOEFL 90"}
	profile := domain.StudentProfile{TestScores: map[string]string{"GRE": "320", "TOEFL": "105"}}

	cats := SelectCategories(req, profile)
	assert.Contains(t, cats, domain.CategoryTakeTest)
	assert.NotContains(t, cats, domain.CategoryVerifyRequirements)
}

func TestSelectCategories_NoTestsRequiredButScoresPresent(t *testing.T) {
	profile := domain.StudentProfile{TestScores: map[string]string{"IELTS": "7.5"}}
	cats := SelectCategories(knownRequirements(), profile)
	assert.NotContains(t, cats, domain.CategoryTakeTest)
}

func TestSelectCategories_NoScoresAtAll_IncludesTest(t *testing.T) {
	cats := SelectCategories(knownRequirements(), domain.StudentProfile{})
	assert.Contains(t, cats, domain.CategoryTakeTest)
}

func TestSelectCategories_OptionalTestIsNotRequired(t *testing.T) {
	req := knownRequirements()
	req.TestRequirements = []string{"GRE optional"}
	profile := domain.StudentProfile{TestScores: map[string]string{"TOEFL": "100"}}

	assert.Empty(t, RequiredTests(req))
	assert.NotContains(t, SelectCategories(req, profile), domain.CategoryTakeTest)
}

func TestSelectCategories_AmbiguousNotes_IncludesVerify(t *testing.T) {
	req := knownRequirements()
	req.SpecialNotes = "Please check the official website for the latest deadline."
	cats := SelectCategories(req, domain.StudentProfile{})
	assert.Equal(t, domain.CategoryVerifyRequirements, cats[0])
}

func TestSelectCategories_UnknownLists_IncludesVerify(t *testing.T) {
	req := domain.ProgramRequirements{ProgramName: "MS in AI"}
	cats := SelectCategories(req, domain.StudentProfile{})
	assert.Contains(t, cats, domain.CategoryVerifyRequirements)
}

func TestSelectCategories_AlwaysCoreDocuments(t *testing.T) {
	cats := SelectCategories(knownRequirements(), domain.StudentProfile{TestScores: map[string]string{"GRE": "330"}})
	assert.Equal(t, []domain.TaskCategory{
		domain.CategoryObtainTranscripts,
		domain.CategoryPrepareCV,
		domain.CategoryDraftSOP,
		domain.CategoryRequestLOR,
		domain.CategoryReceiveLOR,
		domain.CategorySubmitApplication,
		domain.CategoryFinalReview,
	}, cats)
}

func TestMissingScores(t *testing.T) {
	req := knownRequirements()
	req.TestRequirements = []string{"GRE required", "TOEFL: 100"}
	profile := domain.StudentProfile{TestScores: map[string]string{"gre": "318"}}
	assert.Equal(t, []string{"TOEFL: 100"}, MissingScores(req, profile))
}
