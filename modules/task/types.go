package task

import (
	"context"

	domain "github.com/example/todo-list/domain/task"
)

// Service error kinds carried across the service container.
const (
	ErrorKindNotFound   = "not_found"
	ErrorKindValidation = "validation_error"
)

// ServiceError carries a domain failure inside a reply. Typed errors do not
// survive the NATS hop, so the adapter rebuilds them from this envelope.
type ServiceError struct {
	Kind    string              `json:"kind"`
	Message string              `json:"message"`
	TaskID  int                 `json:"task_id,omitempty"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// Err converts the envelope back into the matching domain error.
func (e *ServiceError) Err() error {
	switch e.Kind {
	case ErrorKindNotFound:
		return &domain.NotFoundError{ID: e.TaskID}
	case ErrorKindValidation:
		return &domain.ValidationError{Fields: e.Fields}
	default:
		return &remoteError{msg: e.Message}
	}
}

type remoteError struct{ msg string }

func (e *remoteError) Error() string { return e.msg }

// ListTasksRequest is the request for listing tasks. An unset Completed
// returns every task.
type ListTasksRequest struct {
	Completed domain.Optional[bool] `json:"completed,omitzero"`
}

// ListTasksResponse is the response for listing tasks.
type ListTasksResponse struct {
	Tasks []domain.Task `json:"tasks"`
	Total int           `json:"total"`
}

// GetTaskRequest is the request for getting a task.
type GetTaskRequest struct {
	TaskID int `json:"task_id"`
}

// CreateTaskRequest is the request for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateTaskRequest is the request for updating a task.
type UpdateTaskRequest struct {
	TaskID int          `json:"task_id"`
	Patch  domain.Patch `json:"patch"`
}

// DeleteTaskRequest is the request for deleting a task.
type DeleteTaskRequest struct {
	TaskID int `json:"task_id"`
}

// DeleteTaskResponse is the response for deleting a task.
type DeleteTaskResponse struct {
	Deleted bool          `json:"deleted"`
	Error   *ServiceError `json:"error,omitempty"`
}

// TaskReply is the response for operations returning a single task.
type TaskReply struct {
	Task  *domain.Task  `json:"task,omitempty"`
	Error *ServiceError `json:"error,omitempty"`
}

// TaskPort defines the interface for task operations (hexagonal port).
// Driving adapters such as the HTTP API use it to reach the core domain.
type TaskPort interface {
	ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error)
	GetTask(ctx context.Context, taskID int) (*domain.Task, error)
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error)
	UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*domain.Task, error)
	DeleteTask(ctx context.Context, taskID int) error
}
