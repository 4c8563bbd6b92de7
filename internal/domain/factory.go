package domain

import "strings"

// NewTask validates raw input and builds a Task. Every failure is a *ValidationError.
func NewTask(description, start, end, priority string) (Task, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return Task{}, &ValidationError{Field: "description", Err: ErrEmptyDescription}
	}

	from, err := ParseTimeOfDay(start)
	if err != nil {
		return Task{}, &ValidationError{Field: "start", Value: start, Err: err}
	}
	to, err := ParseTimeOfDay(end)
	if err != nil {
		return Task{}, &ValidationError{Field: "end", Value: end, Err: err}
	}
	if from >= to {
		return Task{}, &ValidationError{Field: "end", Value: end, Err: ErrInvalidRange}
	}

	p, err := ParsePriority(priority)
	if err != nil {
		return Task{}, &ValidationError{Field: "priority", Value: priority, Err: err}
	}

	return Task{
		description: description,
		start:       from,
		end:         to,
		priority:    p,
	}, nil
}
