package domain

import (
	"fmt"
	"time"
)

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ParsePriority matches the label exactly; "high" is not "High".
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return p, nil
	default:
		return "", ErrInvalidPriority
	}
}

// TimeOfDay is a wall-clock time within the single timeline, in minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay accepts strictly "HH:MM" in 24-hour form.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, ErrInvalidTime
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, ErrInvalidTime
		}
	}

	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, ErrInvalidTime
	}

	return TimeOfDay(hour*60 + minute), nil
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Task is immutable once built by NewTask.
type Task struct {
	description string
	start       TimeOfDay
	end         TimeOfDay
	priority    Priority
}

func (t Task) Description() string { return t.description }
func (t Task) Start() TimeOfDay     { return t.start }
func (t Task) End() TimeOfDay       { return t.end }
func (t Task) Priority() Priority   { return t.priority }

func (t Task) Duration() time.Duration {
	return time.Duration(t.end-t.start) * time.Minute
}

// IsZero reports whether t was not produced by NewTask.
func (t Task) IsZero() bool {
	return t.description == ""
}

// Overlaps uses half-open [start, end) intervals, so back-to-back tasks do not overlap.
func (t Task) Overlaps(other Task) bool {
	return t.start < other.end && t.end > other.start
}

// String renders "07:00 - 08:00: Morning Exercise [High]".
func (t Task) String() string {
	return fmt.Sprintf("%s - %s: %s [%s]", t.start, t.end, t.description, t.priority)
}
