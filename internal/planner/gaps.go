package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
)

// compressedThreshold is how many tasks pinned to today signal a window
// too short for the plan.
const compressedThreshold = 3

// DetectGaps reviews a finished timeline against the requirements and the
// window and returns student-facing warnings. It never returns nil.
func DetectGaps(tasks []domain.TimelineTask, req domain.ProgramRequirements, profile domain.StudentProfile, window domain.Window, bufferDays int) []string {
	if bufferDays < MinBufferDays {
		bufferDays = MinBufferDays
	}
	warnings := []string{}
	deadline := domain.CivilDate(window.Deadline)
	today := domain.CivilDate(window.Today)

	late := 0
	dueToday := 0
	for _, t := range tasks {
		due, ok := t.Due()
		if !ok {
			continue
		}
		if due.After(deadline) {
			late++
		}
		if due.Equal(today) && t.Category != "" {
			dueToday++
		}
	}
	if late > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d task(s) are scheduled after the %s deadline. Finish everything before then.",
			late, domain.FormatDate(deadline)))
	}
	if dueToday >= compressedThreshold {
		warnings = append(warnings, fmt.Sprintf(
			"%d tasks are due today because the window is short. Start immediately and work on them in parallel.", dueToday))
	}

	if last, ok := domain.Timeline(tasks).Last(); ok {
		if due, ok := last.Due(); ok && domain.DaysBetween(due, deadline) < bufferDays && !due.Equal(today) {
			warnings = append(warnings, fmt.Sprintf(
				"The final step leaves less than %d days before the deadline. Aim to submit a few days early.", bufferDays))
		}
	}

	if span, ok := lorSpan(tasks); ok && span < LORSpanMinDays {
		warnings = append(warnings, fmt.Sprintf(
			"Recommendation letters usually take 4-6 weeks, but the plan allows %d days. Request them as early as you can.", span))
	}

	if !req.DocumentsKnown() {
		warnings = append(warnings,
			"Document requirements could not be confirmed. Verify them on the university's official website first.")
	}
	if !req.TestsKnown() {
		warnings = append(warnings,
			"Test requirements are not specified. Confirm with the program whether GRE or English tests are needed.")
	}
	if missing := MissingScores(req, profile); len(missing) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"No score on file for %s. Book the test early so results arrive before the deadline.",
			strings.Join(missing, ", ")))
	}

	if idx := OrderViolations(tasks); len(idx) > 0 {
		warnings = append(warnings, fmt.Sprintf(
			"%d task(s) are out of chronological order. Review the sequence before starting.", len(idx)))
	}
	if idx := UnparsableDates(tasks); len(idx) > 0 {
		titles := make([]string, 0, len(idx))
		for _, i := range idx {
			titles = append(titles, tasks[i].Title)
		}
		warnings = append(warnings, fmt.Sprintf(
			"Some tasks have no valid due date (%s). Pick a date for them yourself.", strings.Join(titles, ", ")))
	}
	return warnings
}

// lorSpan returns the days between requesting and receiving letters when
// both tasks are present and dated.
func lorSpan(tasks []domain.TimelineTask) (int, bool) {
	var request, receive *domain.TimelineTask
	for i := range tasks {
		switch tasks[i].Category {
		case domain.CategoryRequestLOR:
			request = &tasks[i]
		case domain.CategoryReceiveLOR:
			receive = &tasks[i]
		}
	}
	if request == nil || receive == nil {
		return 0, false
	}
	from, ok1 := request.Due()
	to, ok2 := receive.Due()
	if !ok1 || !ok2 {
		return 0, false
	}
	return domain.DaysBetween(from, to), true
}
