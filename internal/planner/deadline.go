package planner

import (
	"fmt"
	"time"

	"github.com/alexanderramin/gradplan/internal/domain"
)

const (
	// DefaultMinLeadDays is the runway a complete application cycle needs.
	DefaultMinLeadDays = 120
	// DefaultFallbackDays replaces a deadline that cannot be parsed.
	DefaultFallbackDays = 180
)

// ResolveDeadline parses raw, checks the lead time against minLeadDays and
// rolls the deadline into the next yearly cycle when it is unreachable.
// An unparsable deadline returns an UnparsableDeadline error; use
// FallbackWindow for the degraded plan.
func ResolveDeadline(raw string, today time.Time, minLeadDays int) (domain.Window, domain.AdjustmentRecord, error) {
	today = domain.CivilDate(today)
	record := domain.AdjustmentRecord{OriginalDeadline: raw}
	if minLeadDays <= 0 {
		minLeadDays = DefaultMinLeadDays
	}

	deadline, err := domain.ParseDate(raw)
	if err != nil {
		return domain.Window{Today: today, Deadline: today}, record, unparsable(raw, err)
	}

	lead := domain.DaysBetween(today, deadline)
	switch {
	case lead < 0:
		record.Reason = fmt.Sprintf("deadline already passed (%s)", domain.FormatDate(deadline))
	case lead < minLeadDays:
		record.Reason = fmt.Sprintf("insufficient lead time, %d days available", lead)
	default:
		return domain.Window{Today: today, Deadline: deadline}, record, nil
	}

	record.Adjusted = true
	rolled, clampedLeapDay := rollUntilReachable(deadline, today)
	if clampedLeapDay {
		record.Reason += "; Feb 29 moved to Feb 28"
	}
	return domain.Window{Today: today, Deadline: rolled}, record, nil
}

// rollUntilReachable applies one yearly rollover, repeating only while the
// result is still before today.
func rollUntilReachable(deadline, today time.Time) (time.Time, bool) {
	clamped := false
	for {
		next, err := RollForward(deadline)
		if err != nil {
			clamped = true
		}
		deadline = next
		if !deadline.Before(today) {
			return deadline, clamped
		}
	}
}

// RollForward moves d forward one calendar year keeping month and day.
// When that day does not exist (Feb 29 into a non-leap year) it returns day 28
// of the same month together with an InvalidRolloverDate error.
func RollForward(d time.Time) (time.Time, error) {
	y, m, day := d.Date()
	next := time.Date(y+1, m, day, 0, 0, 0, 0, time.UTC)
	if next.Day() != day {
		fallback := time.Date(y+1, m, 28, 0, 0, 0, 0, time.UTC)
		return fallback, &PlanningError{
			Kind:   KindInvalidRolloverDate,
			Detail: fmt.Sprintf("%s has no counterpart in %d", domain.FormatDate(d), y+1),
		}
	}
	return next, nil
}

// FallbackWindow is the degraded window used when the deadline is unusable.
func FallbackWindow(today time.Time, fallbackDays int) domain.Window {
	today = domain.CivilDate(today)
	if fallbackDays <= 0 {
		fallbackDays = DefaultFallbackDays
	}
	return domain.Window{Today: today, Deadline: domain.AddDays(today, fallbackDays)}
}

// Adjustment kinds reported by ClassifyAdjustment.
const (
	AdjustmentNone      = "none"
	AdjustmentPassed    = "passed"
	AdjustmentShortLead = "short_lead"
	AdjustmentFallback  = "fallback"
)

// ClassifyAdjustment names what happened to the deadline of a resolved
// window: untouched, rolled because it had passed, rolled for lack of lead
// time, or replaced by the fallback window.
func ClassifyAdjustment(window domain.Window, record domain.AdjustmentRecord) string {
	original, err := domain.ParseDate(record.OriginalDeadline)
	switch {
	case err != nil:
		return AdjustmentFallback
	case !record.Adjusted:
		return AdjustmentNone
	case original.Before(window.Today):
		return AdjustmentPassed
	default:
		return AdjustmentShortLead
	}
}
