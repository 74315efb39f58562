// Package service implements task operations on top of a Store.
//
// Each operation is a complete load-mutate-save cycle: it loads the whole
// collection, works on it in memory, and saves it back if it changed.
// Nothing is cached between calls.
//
// IDs are derived from the loaded collection (max id + 1), not from a
// counter. Two processes that load the same collection before either saves
// will assign the same id, and one update will be lost. This is accepted for
// a single-user CLI that runs one operation per process.
package service

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/todo"
)

// Store loads and saves the full task collection.
type Store interface {
	Load() ([]todo.Task, error)
	Save(tasks []todo.Task) error
}

// Service owns validation and ID assignment for task operations.
type Service struct {
	store  Store
	logger *log.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for mutation events.
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for created_at.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns a Service backed by store.
func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: log.New(io.Discard),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NextID returns 1 for an empty collection, otherwise the largest id plus one.
func NextID(tasks []todo.Task) int {
	next := 1
	for _, t := range tasks {
		if t.ID >= next {
			next = t.ID + 1
		}
	}
	return next
}

// Create validates in and returns the record it would add, without saving.
func (s *Service) Create(in todo.NewTask) (todo.Task, error) {
	if err := in.Validate(); err != nil {
		return todo.Task{}, err
	}
	tasks, err := s.store.Load()
	if err != nil {
		return todo.Task{}, err
	}
	return in.Build(NextID(tasks), s.now()), nil
}

// Add validates in, appends the new task to the stored collection and saves.
func (s *Service) Add(in todo.NewTask) (todo.Task, error) {
	if err := in.Validate(); err != nil {
		return todo.Task{}, err
	}
	tasks, err := s.store.Load()
	if err != nil {
		return todo.Task{}, err
	}

	task := in.Build(NextID(tasks), s.now())
	tasks = append(tasks, task)
	if err := s.store.Save(tasks); err != nil {
		return todo.Task{}, err
	}

	s.logger.Info("task added", "id", task.ID, "priority", task.Priority)
	return task, nil
}

// All returns every task in storage order.
func (s *Service) All() ([]todo.Task, error) {
	return s.store.Load()
}

// Get returns the task with id. The bool is false when no task matches.
func (s *Service) Get(id int) (todo.Task, bool, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return todo.Task{}, false, err
	}
	if i := indexOf(tasks, id); i >= 0 {
		return tasks[i], true, nil
	}
	return todo.Task{}, false, nil
}

// List returns the tasks matching f in storage order.
func (s *Service) List(f Filter) ([]todo.Task, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	tasks, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return FilterTasks(tasks, f), nil
}

// Complete marks the task completed and saves. Completing a completed task
// succeeds.
func (s *Service) Complete(id int) (todo.Task, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return todo.Task{}, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return todo.Task{}, &todo.NotFoundError{ID: id}
	}

	tasks[i].Status = todo.StatusCompleted
	if err := s.store.Save(tasks); err != nil {
		return todo.Task{}, err
	}

	s.logger.Info("task completed", "id", id)
	return tasks[i], nil
}

// Update applies ch to the task and saves. Every provided field is validated
// before any of them is applied, so a rejected update changes nothing.
func (s *Service) Update(id int, ch todo.Changes) (todo.Task, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return todo.Task{}, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return todo.Task{}, &todo.NotFoundError{ID: id}
	}
	if err := ch.Validate(); err != nil {
		return todo.Task{}, err
	}

	tasks[i] = ch.Apply(tasks[i])
	if err := s.store.Save(tasks); err != nil {
		return todo.Task{}, err
	}

	s.logger.Info("task updated", "id", id, "fields", ch.Fields())
	return tasks[i], nil
}

// Delete removes the first task with id, saves, and returns the removed task.
func (s *Service) Delete(id int) (todo.Task, error) {
	tasks, err := s.store.Load()
	if err != nil {
		return todo.Task{}, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return todo.Task{}, &todo.NotFoundError{ID: id}
	}

	removed := tasks[i]
	tasks = append(tasks[:i], tasks[i+1:]...)
	if err := s.store.Save(tasks); err != nil {
		return todo.Task{}, err
	}

	s.logger.Info("task deleted", "id", id)
	return removed, nil
}

func indexOf(tasks []todo.Task, id int) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}
