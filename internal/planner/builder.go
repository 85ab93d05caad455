package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
)

// MinBufferDays is the least number of days the final task keeps clear of
// the deadline.
const MinBufferDays = 2

// BuildTimeline places one task per category by walking backward from
// deadline-bufferDays, subtracting each category's minimum duration. Dates
// that would fall before today are pinned to today. The result is in forward
// dependency order with non-decreasing due dates.
func BuildTimeline(window domain.Window, categories []domain.TaskCategory, bufferDays int) []domain.TimelineTask {
	if bufferDays < MinBufferDays {
		bufferDays = MinBufferDays
	}
	ordered := orderCategories(categories)
	if len(ordered) == 0 {
		return nil
	}

	today := domain.CivilDate(window.Today)
	deadline := domain.CivilDate(window.Deadline)
	lorSpan := chooseLORSpan(ordered, window.LeadDays()-bufferDays)

	placed := make([]domain.TimelineTask, 0, len(ordered))
	cursor := domain.AddDays(deadline, -bufferDays)
	for i := len(ordered) - 1; i >= 0; i-- {
		c := ordered[i]
		due := cursor
		if due.Before(today) {
			due = today
		}
		placed = append(placed, newTask(c, due, lorSpan))
		cursor = domain.AddDays(cursor, -spanOf(c, lorSpan))
	}

	reverseTasks(placed)
	for i := 1; i < len(placed); i++ {
		placed[i].Dependency = string(placed[i-1].Category)
	}
	return placed
}

// RequiredDays is the runway the categories need at minimum spacing,
// excluding the buffer.
func RequiredDays(categories []domain.TaskCategory) int {
	total := 0
	for _, c := range orderCategories(categories) {
		total += spanOf(c, LORSpanMinDays)
	}
	return total
}

// chooseLORSpan uses the 6-week span when the whole plan fits at that
// spacing and falls back to 4 weeks otherwise.
func chooseLORSpan(ordered []domain.TaskCategory, available int) int {
	total := 0
	for _, c := range ordered {
		total += spanOf(c, LORSpanMaxDays)
	}
	if total <= available {
		return LORSpanMaxDays
	}
	return LORSpanMinDays
}

func spanOf(c domain.TaskCategory, lorSpan int) int {
	if c == domain.CategoryReceiveLOR {
		return lorSpan
	}
	return MinDuration(c)
}

func newTask(c domain.TaskCategory, due time.Time, lorSpan int) domain.TimelineTask {
	p := policies[c]
	desc := p.Description
	if c == domain.CategoryReceiveLOR {
		desc = fmt.Sprintf("%s Allow %d weeks from request to receipt.", desc, lorSpan/7)
	}
	return domain.TimelineTask{
		Title:       p.Title,
		Description: desc,
		DueDate:     domain.FormatDate(due),
		Category:    c,
		Status:      domain.TaskPending,
	}
}

// orderCategories drops unknown and duplicate categories and sorts the rest
// into forward dependency order.
func orderCategories(categories []domain.TaskCategory) []domain.TaskCategory {
	seen := make(map[domain.TaskCategory]bool, len(categories))
	out := make([]domain.TaskCategory, 0, len(categories))
	for _, c := range categories {
		if !c.Valid() || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank() < out[j].Rank()
	})
	return out
}

func reverseTasks(tasks []domain.TimelineTask) {
	for i, j := 0, len(tasks)-1; i < j; i, j = i+1, j-1 {
		tasks[i], tasks[j] = tasks[j], tasks[i]
	}
}
