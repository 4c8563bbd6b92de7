package service

import (
	"astronaut-schedule/internal/domain"
	"astronaut-schedule/internal/logx"
	"errors"
)

type TaskStore interface {
	Add(task domain.Task) error
	Remove(description string) error
	Get(description string) (domain.Task, error)
	List() []domain.Task
}

// TaskService is the entry point for callers: it builds tasks from raw input and
// hands them to the store that owns the timeline.
type TaskService struct {
	store TaskStore
	log   logx.Logger
}

func New(store TaskStore, log logx.Logger) (*TaskService, error) {
	if store == nil {
		return nil, ErrStoreNil
	}

	return &TaskService{store: store, log: log.With(logx.String("component", "schedule"))}, nil
}

func (s *TaskService) CreateTask(description, start, end, priority string) (domain.Task, error) {
	task, err := domain.NewTask(description, start, end, priority)
	if err != nil {
		s.log.Debug("task rejected", logx.String("description", description), logx.Err(err))
		return domain.Task{}, err
	}

	if err := s.store.Add(task); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			s.log.Warn("task conflicts with schedule",
				logx.String("description", task.Description()),
				logx.String("existing", conflict.Existing.Description()),
			)
		} else {
			s.log.Debug("task rejected", logx.String("description", task.Description()), logx.Err(err))
		}
		return domain.Task{}, err
	}

	s.log.Info("task added",
		logx.String("description", task.Description()),
		logx.String("start", task.Start().String()),
		logx.String("end", task.End().String()),
		logx.String("priority", string(task.Priority())),
	)
	return task, nil
}

func (s *TaskService) RemoveTask(description string) error {
	if err := s.store.Remove(description); err != nil {
		s.log.Debug("task not removed", logx.String("description", description), logx.Err(err))
		return err
	}

	s.log.Info("task removed", logx.String("description", description))
	return nil
}

func (s *TaskService) GetTask(description string) (domain.Task, error) {
	return s.store.Get(description)
}

func (s *TaskService) ListTasks() []domain.Task {
	return s.store.List()
}
