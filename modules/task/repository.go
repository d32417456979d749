package task

import (
	"slices"
	"sync"
	"time"

	domain "github.com/example/todo-list/domain/task"
)

// stampResolution is the smallest step between two stamps handed out by the
// repository. Clients commonly keep microseconds, so stamps must differ there.
const stampResolution = time.Microsecond

// TaskRepository provides in-memory task storage. It owns the tasks, their
// insertion order and the ID counter; one lock guards all of them.
type TaskRepository struct {
	mu     sync.RWMutex
	tasks  map[int]*domain.Task
	order  []int
	nextID int
	last   time.Time
	now    func() time.Time
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository() *TaskRepository {
	return newTaskRepository(time.Now)
}

func newTaskRepository(now func() time.Time) *TaskRepository {
	return &TaskRepository{
		tasks:  make(map[int]*domain.Task),
		nextID: 1,
		now:    now,
	}
}

// List returns the tasks matching filter in insertion order.
func (r *TaskRepository) List(filter domain.Filter) []domain.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Task, 0, len(r.order))
	for _, id := range r.order {
		task := r.tasks[id]
		if filter.Matches(*task) {
			result = append(result, task.Clone())
		}
	}
	return result
}

// FindByID finds a task by ID.
func (r *TaskRepository) FindByID(id int) (domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	task, found := r.tasks[id]
	if !found {
		return domain.Task{}, &domain.NotFoundError{ID: id}
	}
	return task.Clone(), nil
}

// Create validates in and stores a new task under the next ID.
func (r *TaskRepository) Create(in domain.CreateInput) (domain.Task, error) {
	if err := in.Validate(); err != nil {
		return domain.Task{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.stamp()
	task := &domain.Task{
		ID:        r.nextID,
		Title:     in.Title,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		d := *in.Description
		task.Description = &d
	}

	r.tasks[task.ID] = task
	r.order = append(r.order, task.ID)
	r.nextID++
	return task.Clone(), nil
}

// Update applies patch to the task with the given ID and refreshes its
// updated_at stamp. Nothing is changed if the patch is invalid.
func (r *TaskRepository) Update(id int, patch domain.Patch) (domain.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, found := r.tasks[id]
	if !found {
		return domain.Task{}, &domain.NotFoundError{ID: id}
	}
	if err := patch.Validate(); err != nil {
		return domain.Task{}, err
	}

	patch.ApplyTo(task)
	task.UpdatedAt = r.stamp()
	return task.Clone(), nil
}

// Delete deletes a task by ID. The ID is never handed out again.
func (r *TaskRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, found := r.tasks[id]; !found {
		return &domain.NotFoundError{ID: id}
	}
	delete(r.tasks, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	return nil
}

// Count returns the number of stored tasks.
func (r *TaskRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

// NextID returns the ID the next created task will receive.
func (r *TaskRepository) NextID() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextID
}

// stamp returns a UTC time strictly after every previous stamp. Callers must
// hold the write lock.
func (r *TaskRepository) stamp() time.Time {
	now := r.now().UTC().Truncate(stampResolution)
	if !now.After(r.last) {
		now = r.last.Add(stampResolution)
	}
	r.last = now
	return now
}
