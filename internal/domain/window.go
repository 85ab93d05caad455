package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Window is the schedulable range [Today, Deadline] for one planning run.
type Window struct {
	Today    time.Time
	Deadline time.Time
}

// LeadDays returns the number of calendar days from Today to Deadline.
func (w Window) LeadDays() int {
	return DaysBetween(w.Today, w.Deadline)
}

// Contains reports whether d falls inside the window, bounds included.
func (w Window) Contains(d time.Time) bool {
	d = CivilDate(d)
	return !d.Before(w.Today) && !d.After(w.Deadline)
}

type windowJSON struct {
	Today    string `json:"today"`
	Deadline string `json:"deadline"`
}

// MarshalJSON writes both bounds as ISO dates.
func (w Window) MarshalJSON() ([]byte, error) {
	return json.Marshal(windowJSON{Today: FormatDate(w.Today), Deadline: FormatDate(w.Deadline)})
}

func (w *Window) UnmarshalJSON(data []byte) error {
	var raw windowJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	today, err := ParseDate(raw.Today)
	if err != nil {
		return fmt.Errorf("window today: %w", err)
	}
	deadline, err := ParseDate(raw.Deadline)
	if err != nil {
		return fmt.Errorf("window deadline: %w", err)
	}
	w.Today, w.Deadline = today, deadline
	return nil
}

func (w Window) String() string {
	return fmt.Sprintf("%s..%s", FormatDate(w.Today), FormatDate(w.Deadline))
}

// AdjustmentRecord explains whether and why the deadline was moved.
// OriginalDeadline holds the raw input as supplied.
type AdjustmentRecord struct {
	Adjusted         bool   `json:"adjusted"`
	OriginalDeadline string `json:"original_deadline"`
	Reason           string `json:"reason,omitempty"`
}

// CivilDate truncates t to midnight UTC of its calendar day.
func CivilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date after trimming whitespace.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DaysBetween returns whole calendar days from a to b (negative if b is earlier).
func DaysBetween(a, b time.Time) int {
	return int(CivilDate(b).Sub(CivilDate(a)).Hours() / 24)
}

// AddDays moves a civil date by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return CivilDate(t).AddDate(0, 0, n)
}
