package memory

import (
	"astronaut-schedule/internal/domain"
	"astronaut-schedule/internal/store"
	"slices"
	"sort"
	"sync"
)

// ScheduleStore keeps tasks sorted by start time. A single lock guards every operation.
type ScheduleStore struct {
	mu        sync.RWMutex
	tasks     []domain.Task
	observers []store.ConflictObserver
}

var _ store.ScheduleStore = (*ScheduleStore)(nil)

func New(observers ...store.ConflictObserver) *ScheduleStore {
	s := &ScheduleStore{}
	for _, o := range observers {
		s.Register(o)
	}
	return s
}

// Register appends an observer; observers are notified in registration order.
func (s *ScheduleStore) Register(o store.ConflictObserver) {
	if o == nil {
		return
	}

	s.mu.Lock()
	s.observers = append(s.observers, o)
	s.mu.Unlock()
}

func (s *ScheduleStore) Add(task domain.Task) error {
	if task.IsZero() {
		return &domain.ValidationError{Field: "description", Err: domain.ErrEmptyDescription}
	}

	s.mu.Lock()

	if s.indexOf(task.Description()) >= 0 {
		s.mu.Unlock()
		return &domain.ValidationError{
			Field: "description",
			Value: task.Description(),
			Err:   domain.ErrDuplicateDescription,
		}
	}

	for _, existing := range s.tasks {
		if !task.Overlaps(existing) {
			continue
		}

		// observers run outside the lock so they may read the store
		observers := slices.Clone(s.observers)
		s.mu.Unlock()

		for _, o := range observers {
			o.Notify(task, existing)
		}
		return &domain.ConflictError{Attempted: task, Existing: existing}
	}

	i := sort.Search(len(s.tasks), func(i int) bool {
		return s.tasks[i].Start() >= task.Start()
	})
	s.tasks = slices.Insert(s.tasks, i, task)
	s.mu.Unlock()

	return nil
}

func (s *ScheduleStore) Remove(description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(description)
	if i < 0 {
		return &domain.NotFoundError{Description: description}
	}

	s.tasks = slices.Delete(s.tasks, i, i+1)
	return nil
}

func (s *ScheduleStore) Get(description string) (domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(description)
	if i < 0 {
		return domain.Task{}, &domain.NotFoundError{Description: description}
	}
	return s.tasks[i], nil
}

// List returns a copy; callers cannot reach the internal slice.
func (s *ScheduleStore) List() []domain.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]domain.Task, len(s.tasks))
	copy(tasks, s.tasks)
	return tasks
}

func (s *ScheduleStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.tasks)
}

// caller must hold mu
func (s *ScheduleStore) indexOf(description string) int {
	return slices.IndexFunc(s.tasks, func(t domain.Task) bool {
		return t.Description() == description
	})
}
