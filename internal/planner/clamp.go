package planner

import "github.com/alexanderramin/gradplan/internal/domain"

// ClampTimeline snaps due dates into the window: earlier than today becomes
// today, later than the deadline becomes the deadline. Tasks whose due date
// does not parse are returned unchanged. Order is preserved.
func ClampTimeline(tasks []domain.TimelineTask, window domain.Window) []domain.TimelineTask {
	if tasks == nil {
		return nil
	}
	today := domain.CivilDate(window.Today)
	deadline := domain.CivilDate(window.Deadline)

	out := make([]domain.TimelineTask, len(tasks))
	for i, t := range tasks {
		out[i] = t
		due, ok := t.Due()
		if !ok {
			continue
		}
		switch {
		case due.Before(today):
			out[i].DueDate = domain.FormatDate(today)
		case due.After(deadline):
			out[i].DueDate = domain.FormatDate(deadline)
		default:
			out[i].DueDate = domain.FormatDate(due)
		}
	}
	return out
}

// OrderViolations returns the indices of tasks whose due date is earlier
// than the latest preceding parsable due date.
func OrderViolations(tasks []domain.TimelineTask) []int {
	var out []int
	var latest domain.TimelineTask
	haveLatest := false
	for i, t := range tasks {
		due, ok := t.Due()
		if !ok {
			continue
		}
		if haveLatest {
			prev, _ := latest.Due()
			if due.Before(prev) {
				out = append(out, i)
				continue
			}
		}
		latest, haveLatest = t, true
	}
	return out
}

// UnparsableDates returns the indices of tasks whose due date is not an ISO date.
func UnparsableDates(tasks []domain.TimelineTask) []int {
	var out []int
	for i, t := range tasks {
		if _, ok := t.Due(); !ok {
			out = append(out, i)
		}
	}
	return out
}
