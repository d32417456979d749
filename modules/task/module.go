package task

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/example/todo-list/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/sirupsen/logrus"
)

// Service names registered by the task module.
const (
	ServiceListTasks  = "list-tasks"
	ServiceGetTask    = "get-task"
	ServiceCreateTask = "create-task"
	ServiceUpdateTask = "update-task"
	ServiceDeleteTask = "delete-task"
)

// TaskModule owns the task store and exposes it as request-reply services
// (core domain).
type TaskModule struct {
	repo     *TaskRepository
	eventBus mono.EventBus
	log      *logrus.Entry
}

var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.EventBusAwareModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

func NewModule(logger *logrus.Logger) *TaskModule {
	return &TaskModule{
		repo: NewTaskRepository(),
		log:  logger.WithField("module", "task"),
	}
}

func (m *TaskModule) Name() string {
	return "task"
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskCreatedV1.ToBase(),
		events.TaskUpdatedV1.ToBase(),
		events.TaskDeletedV1.ToBase(),
	}
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListTasks, json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListTasks, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceGetTask, json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceGetTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceCreateTask, json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceCreateTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceUpdateTask, json.Unmarshal, json.Marshal, m.updateTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceUpdateTask, err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceDeleteTask, json.Unmarshal, json.Marshal, m.deleteTask,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceDeleteTask, err)
	}

	m.log.Info("Registered services: list-tasks, get-task, create-task, update-task, delete-task")
	return nil
}

func (m *TaskModule) Start(_ context.Context) error {
	if m.eventBus == nil {
		m.log.Warn("eventBus not set, events will not be published")
	}
	m.log.Info("Module started")
	return nil
}

func (m *TaskModule) Stop(_ context.Context) error {
	m.log.Info("Module stopped")
	return nil
}

// Health reports the store size and the next ID to be assigned.
func (m *TaskModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"tasks":   m.repo.Count(),
			"next_id": m.repo.NextID(),
		},
	}
}
