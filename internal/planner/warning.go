package planner

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/gradplan/internal/domain"
)

// InjectAdjustmentWarning prepends an advisory task due today when the
// deadline was rolled forward. Unadjusted records return tasks as is.
func InjectAdjustmentWarning(tasks []domain.TimelineTask, record domain.AdjustmentRecord, window domain.Window) []domain.TimelineTask {
	if !record.Adjusted {
		return tasks
	}
	newDeadline := domain.FormatDate(window.Deadline)
	reason := strings.TrimSpace(record.Reason)
	if reason == "" {
		reason = "the original deadline could not be met"
	}
	warning := domain.TimelineTask{
		Title: fmt.Sprintf("Intake adjusted to %s", newDeadline),
		Description: fmt.Sprintf(
			"The %s deadline was moved: %s. The plan targets the next intake cycle (%s). Verify this date with the university.",
			record.OriginalDeadline, reason, newDeadline),
		DueDate: domain.FormatDate(window.Today),
		Status:  domain.TaskPending,
	}

	out := make([]domain.TimelineTask, 0, len(tasks)+1)
	out = append(out, warning)
	return append(out, tasks...)
}

// ErrorTimeline is the single-task timeline substituted when task generation
// fails. The task is due on the deadline so it still renders in range.
func ErrorTimeline(window domain.Window, err error) []domain.TimelineTask {
	detail := "unknown error"
	if err != nil {
		detail = err.Error()
	}
	return []domain.TimelineTask{{
		Title:       "Error",
		Description: "Failed to generate timeline: " + detail,
		DueDate:     domain.FormatDate(window.Deadline),
		Status:      domain.TaskPending,
	}}
}
