package planner

import (
	"errors"
	"testing"

	"github.com/alexanderramin/gradplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInjectAdjustmentWarning_NoopWhenNotAdjusted(t *testing.T) {
	tasks := []domain.TimelineTask{{Title: "a", DueDate: "2025-03-01"}}
	window := domain.Window{Today: newYear2025, Deadline: date(2025, 9, 1)}

	out := InjectAdjustmentWarning(tasks, domain.AdjustmentRecord{}, window)
	assert.Equal(t, tasks, out)
}

func TestInjectAdjustmentWarning_PrependsAdvisory(t *testing.T) {
	tasks := []domain.TimelineTask{
		{Title: "a", DueDate: "2025-03-01"},
		{Title: "b", DueDate: "2025-11-01"},
	}
	window := domain.Window{Today: newYear2025, Deadline: date(2025, 12, 1)}
	record := domain.AdjustmentRecord{
		Adjusted:         true,
		OriginalDeadline: "2024-12-01",
		Reason:           "deadline already passed (2024-12-01)",
	}

	out := InjectAdjustmentWarning(tasks, record, window)

	require.Len(t, out, 3)
	first := out[0]
	assert.Equal(t, "2025-01-01", first.DueDate)
	assert.Empty(t, first.Dependency)
	assert.Equal(t, domain.TaskPending, first.Status)
	assert.Contains(t, first.Title, "2025-12-01")
	assert.Contains(t, first.Description, "already passed")
	assert.Contains(t, first.Description, "2025-12-01")
	assert.Equal(t, "a", out[1].Title)
	assert.Len(t, tasks, 2, "input must not grow")
}

func TestInjectAdjustmentWarning_FirstEvenWhenOthersEarlier(t *testing.T) {
	tasks := []domain.TimelineTask{{Title: "pinned", DueDate: "2025-01-01"}}
	window := domain.Window{Today: newYear2025, Deadline: date(2026, 1, 15)}
	record := domain.AdjustmentRecord{Adjusted: true, Reason: "insufficient lead time, 14 days available"}

	out := InjectAdjustmentWarning(tasks, record, window)
	assert.Contains(t, out[0].Title, "Intake adjusted")
}

func TestErrorTimeline_SingleTaskOnDeadline(t *testing.T) {
	window := domain.Window{Today: newYear2025, Deadline: date(2025, 9, 1)}
	out := ErrorTimeline(window, errors.New("model offline"))

	require.Len(t, out, 1)
	assert.Equal(t, "Error", out[0].Title)
	assert.Equal(t, "2025-09-01", out[0].DueDate)
	assert.Contains(t, out[0].Description, "model offline")
}
