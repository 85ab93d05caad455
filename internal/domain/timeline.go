package domain

import (
	"encoding/json"
	"time"
)

// TimelineTask is one dated step of an application plan. DueDate stays a
// string so generator output that does not parse can be carried through
// unchanged; Due reports whether it is a valid date.
type TimelineTask struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     string       `json:"due_date"`
	Category    TaskCategory `json:"category,omitempty"`
	Dependency  string       `json:"dependency"`
	Status      TaskStatus   `json:"status"`
}

// Due parses DueDate. The bool is false for empty or malformed dates.
func (t TimelineTask) Due() (time.Time, bool) {
	d, err := ParseDate(t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// MarshalJSON writes an empty dependency as null.
func (t TimelineTask) MarshalJSON() ([]byte, error) {
	type alias TimelineTask
	out := struct {
		alias
		Dependency *string `json:"dependency"`
	}{alias: alias(t)}
	if t.Dependency != "" {
		dep := t.Dependency
		out.Dependency = &dep
	}
	if out.Status == "" {
		out.Status = TaskPending
	}
	return json.Marshal(out)
}

// Timeline is the ordered task list produced by one planning run.
type Timeline []TimelineTask

// Last returns the final task and false when the timeline is empty.
func (tl Timeline) Last() (TimelineTask, bool) {
	if len(tl) == 0 {
		return TimelineTask{}, false
	}
	return tl[len(tl)-1], true
}

// Clone returns an independent copy.
func (tl Timeline) Clone() Timeline {
	if tl == nil {
		return nil
	}
	out := make(Timeline, len(tl))
	copy(out, tl)
	return out
}
