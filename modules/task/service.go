package task

import (
	"context"
	"errors"
	"time"

	domain "github.com/example/todo-list/domain/task"
	"github.com/example/todo-list/events"
	"github.com/go-monolith/mono"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(_ context.Context, req ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks := m.repo.List(domain.Filter{Completed: req.Completed})
	return ListTasksResponse{
		Tasks: tasks,
		Total: len(tasks),
	}, nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(_ context.Context, req GetTaskRequest, _ *mono.Msg) (TaskReply, error) {
	task, err := m.repo.FindByID(req.TaskID)
	if err != nil {
		return replyError(err)
	}
	return TaskReply{Task: &task}, nil
}

// createTask handles the create-task service request.
func (m *TaskModule) createTask(_ context.Context, req CreateTaskRequest, _ *mono.Msg) (TaskReply, error) {
	task, err := m.repo.Create(domain.CreateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return replyError(err)
	}

	m.log.WithField("task_id", task.ID).Info("Task created")
	m.publish(func(bus mono.EventBus) error {
		return events.TaskCreatedV1.Publish(bus, events.TaskCreatedEvent{
			EventID:   uuid.NewString(),
			TaskID:    task.ID,
			Title:     task.Title,
			CreatedAt: task.CreatedAt,
		}, nil)
	}, "TaskCreated", task.ID)

	return TaskReply{Task: &task}, nil
}

// updateTask handles the update-task service request.
func (m *TaskModule) updateTask(_ context.Context, req UpdateTaskRequest, _ *mono.Msg) (TaskReply, error) {
	task, err := m.repo.Update(req.TaskID, req.Patch)
	if err != nil {
		return replyError(err)
	}

	fields := req.Patch.Fields()
	m.log.WithFields(logrus.Fields{"task_id": task.ID, "fields": fields}).Info("Task updated")
	m.publish(func(bus mono.EventBus) error {
		return events.TaskUpdatedV1.Publish(bus, events.TaskUpdatedEvent{
			EventID:   uuid.NewString(),
			TaskID:    task.ID,
			Fields:    fields,
			Completed: task.Completed,
			UpdatedAt: task.UpdatedAt,
		}, nil)
	}, "TaskUpdated", task.ID)

	return TaskReply{Task: &task}, nil
}

// deleteTask handles the delete-task service request.
func (m *TaskModule) deleteTask(_ context.Context, req DeleteTaskRequest, _ *mono.Msg) (DeleteTaskResponse, error) {
	if err := m.repo.Delete(req.TaskID); err != nil {
		reply, err := replyError(err)
		return DeleteTaskResponse{Deleted: false, Error: reply.Error}, err
	}

	m.log.WithField("task_id", req.TaskID).Info("Task deleted")
	m.publish(func(bus mono.EventBus) error {
		return events.TaskDeletedV1.Publish(bus, events.TaskDeletedEvent{
			EventID:   uuid.NewString(),
			TaskID:    req.TaskID,
			DeletedAt: time.Now().UTC(),
		}, nil)
	}, "TaskDeleted", req.TaskID)

	return DeleteTaskResponse{Deleted: true}, nil
}

// publish emits an event if the bus is wired. Publishing is best-effort; a
// failure is logged but never fails the operation.
func (m *TaskModule) publish(send func(mono.EventBus) error, name string, taskID int) {
	if m.eventBus == nil {
		return
	}
	if err := send(m.eventBus); err != nil {
		m.log.WithError(err).WithFields(logrus.Fields{
			"event":   name,
			"task_id": taskID,
		}).Warn("Failed to publish event")
	}
}

// replyError turns a domain error into a reply envelope. Errors outside the
// domain are returned as-is so the service call itself fails.
func replyError(err error) (TaskReply, error) {
	var notFound *domain.NotFoundError
	var invalid *domain.ValidationError
	switch {
	case errors.As(err, &notFound):
		return TaskReply{Error: &ServiceError{
			Kind:    ErrorKindNotFound,
			Message: notFound.Error(),
			TaskID:  notFound.ID,
		}}, nil
	case errors.As(err, &invalid):
		return TaskReply{Error: &ServiceError{
			Kind:    ErrorKindValidation,
			Message: invalid.Error(),
			Fields:  invalid.Fields,
		}}, nil
	default:
		return TaskReply{}, err
	}
}
