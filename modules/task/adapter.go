package task

import (
	"context"
	"encoding/json"
	"fmt"

	domain "github.com/example/todo-list/domain/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
// This is the adapter that implements the TaskPort interface.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// ListTasks lists tasks, optionally filtered by completion, via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context, req *ListTasksRequest) (*ListTasksResponse, error) {
	var resp ListTasksResponse
	if err := call(ctx, a.container, ServiceListTasks, req, &resp); err != nil {
		return nil, err
	}
	if resp.Tasks == nil {
		resp.Tasks = []domain.Task{}
	}
	return &resp, nil
}

// GetTask retrieves a task by ID via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, taskID int) (*domain.Task, error) {
	return callTask(ctx, a.container, ServiceGetTask, &GetTaskRequest{TaskID: taskID})
}

// CreateTask creates a new task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*domain.Task, error) {
	return callTask(ctx, a.container, ServiceCreateTask, req)
}

// UpdateTask applies a partial update via the update-task service.
func (a *taskAdapter) UpdateTask(ctx context.Context, req *UpdateTaskRequest) (*domain.Task, error) {
	return callTask(ctx, a.container, ServiceUpdateTask, req)
}

// DeleteTask deletes a task via the delete-task service.
func (a *taskAdapter) DeleteTask(ctx context.Context, taskID int) error {
	var resp DeleteTaskResponse
	if err := call(ctx, a.container, ServiceDeleteTask, &DeleteTaskRequest{TaskID: taskID}, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return resp.Error.Err()
	}
	if !resp.Deleted {
		return fmt.Errorf("task not deleted: %d", taskID)
	}
	return nil
}

// callTask calls a service answering with a TaskReply and unwraps the
// envelope into either the task or the rebuilt domain error.
func callTask[Req any](ctx context.Context, container mono.ServiceContainer, service string, req *Req) (*domain.Task, error) {
	var resp TaskReply
	if err := call(ctx, container, service, req, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error.Err()
	}
	if resp.Task == nil {
		return nil, fmt.Errorf("%s service returned an empty reply", service)
	}
	return resp.Task, nil
}

func call[Req, Resp any](ctx context.Context, container mono.ServiceContainer, service string, req *Req, resp *Resp) error {
	if err := helper.CallRequestReplyService(
		ctx,
		container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		resp,
	); err != nil {
		return fmt.Errorf("%s service call failed: %w", service, err)
	}
	return nil
}
