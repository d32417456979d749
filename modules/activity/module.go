package activity

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/todo-list/events"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/sirupsen/logrus"
)

// ActivityModule is a driven adapter that records task lifecycle events in a
// bounded in-memory log and serves it back over the service container.
type ActivityModule struct {
	entries *Log
	log     *logrus.Entry
}

var _ mono.Module = (*ActivityModule)(nil)
var _ mono.EventConsumerModule = (*ActivityModule)(nil)
var _ mono.ServiceProviderModule = (*ActivityModule)(nil)
var _ mono.HealthCheckableModule = (*ActivityModule)(nil)

func NewModule(capacity int, logger *logrus.Logger) *ActivityModule {
	return &ActivityModule{
		entries: NewLog(capacity),
		log:     logger.WithField("module", "activity"),
	}
}

func (m *ActivityModule) Name() string {
	return "activity"
}

func (m *ActivityModule) RegisterEventConsumers(registry mono.EventRegistry) error {
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskCreatedV1, m.handleTaskCreated, m); err != nil {
		return fmt.Errorf("failed to register TaskCreated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskUpdatedV1, m.handleTaskUpdated, m); err != nil {
		return fmt.Errorf("failed to register TaskUpdated consumer: %w", err)
	}
	if err := helper.RegisterTypedEventConsumer(registry, events.TaskDeletedV1, m.handleTaskDeleted, m); err != nil {
		return fmt.Errorf("failed to register TaskDeleted consumer: %w", err)
	}

	m.log.Info("Registered event consumers: TaskCreated, TaskUpdated, TaskDeleted")
	return nil
}

func (m *ActivityModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, ServiceListActivity, json.Unmarshal, json.Marshal, m.listActivity,
	); err != nil {
		return fmt.Errorf("failed to register %s service: %w", ServiceListActivity, err)
	}
	m.log.Info("Registered services: list-activity")
	return nil
}

func (m *ActivityModule) handleTaskCreated(_ context.Context, event events.TaskCreatedEvent, _ *mono.Msg) error {
	m.log.WithField("task_id", event.TaskID).Debug("Task created event received")
	m.entries.Append(Entry{
		EventID:    event.EventID,
		Type:       TypeTaskCreated,
		TaskID:     event.TaskID,
		Message:    fmt.Sprintf("Task %d created: %s", event.TaskID, event.Title),
		OccurredAt: event.CreatedAt,
	})
	return nil
}

func (m *ActivityModule) handleTaskUpdated(_ context.Context, event events.TaskUpdatedEvent, _ *mono.Msg) error {
	m.log.WithField("task_id", event.TaskID).Debug("Task updated event received")
	m.entries.Append(Entry{
		EventID:    event.EventID,
		Type:       TypeTaskUpdated,
		TaskID:     event.TaskID,
		Message:    updateMessage(event),
		OccurredAt: event.UpdatedAt,
	})
	return nil
}

func (m *ActivityModule) handleTaskDeleted(_ context.Context, event events.TaskDeletedEvent, _ *mono.Msg) error {
	m.log.WithField("task_id", event.TaskID).Debug("Task deleted event received")
	m.entries.Append(Entry{
		EventID:    event.EventID,
		Type:       TypeTaskDeleted,
		TaskID:     event.TaskID,
		Message:    fmt.Sprintf("Task %d deleted", event.TaskID),
		OccurredAt: event.DeletedAt,
	})
	return nil
}

func updateMessage(event events.TaskUpdatedEvent) string {
	if len(event.Fields) == 0 {
		return fmt.Sprintf("Task %d touched", event.TaskID)
	}
	msg := fmt.Sprintf("Task %d updated: %s", event.TaskID, strings.Join(event.Fields, ", "))
	for _, f := range event.Fields {
		if f == "completed" && event.Completed {
			return msg + " (completed)"
		}
	}
	return msg
}

func (m *ActivityModule) listActivity(_ context.Context, req ListActivityRequest, _ *mono.Msg) (ListActivityResponse, error) {
	entries := m.entries.Recent(req.Limit)
	return ListActivityResponse{
		Entries: entries,
		Total:   len(entries),
	}, nil
}

// Recent returns the newest entries, oldest first.
func (m *ActivityModule) Recent(limit int) []Entry {
	return m.entries.Recent(limit)
}

func (m *ActivityModule) Start(_ context.Context) error {
	m.log.Info("Module started - listening for task events")
	return nil
}

func (m *ActivityModule) Stop(_ context.Context) error {
	m.log.Info("Module stopped")
	return nil
}

func (m *ActivityModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"entries": m.entries.Len(),
			"dropped": m.entries.Dropped(),
		},
	}
}
