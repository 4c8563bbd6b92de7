package store

import (
	"astronaut-schedule/internal/domain"
)

// ScheduleStore holds the tasks of one timeline, ordered by start, with no two overlapping.
type ScheduleStore interface {
	Add(task domain.Task) error
	Remove(description string) error
	Get(description string) (domain.Task, error)
	List() []domain.Task
}

// ConflictObserver is called synchronously when Add rejects a task that collides with an existing one.
type ConflictObserver interface {
	Notify(attempted, existing domain.Task)
}

type ObserverFunc func(attempted, existing domain.Task)

func (f ObserverFunc) Notify(attempted, existing domain.Task) {
	f(attempted, existing)
}
