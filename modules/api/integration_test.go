package api

import (
	"context"
	"io"
	"testing"
	"time"

	domain "github.com/example/todo-list/domain/task"
	"github.com/example/todo-list/modules/activity"
	"github.com/example/todo-list/modules/task"
	"github.com/go-monolith/mono"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// probeModule captures the service containers of its dependencies so the
// test can drive the adapters without an HTTP listener.
type probeModule struct {
	containers map[string]mono.ServiceContainer
}

func (p *probeModule) Name() string { return "probe" }
func (p *probeModule) Dependencies() []string { return []string{"task", "activity"} }
func (p *probeModule) Start(_ context.Context) error { return nil }
func (p *probeModule) Stop(_ context.Context) error { return nil }
func (p *probeModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	p.containers[dependency] = container
}

func startMonoApp(t *testing.T) (task.TaskPort, activity.ActivityPort) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mono integration test in short mode")
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app, err := mono.NewMonoApplication(
		mono.WithLogLevel(mono.LogLevelError), // Suppress logs in tests
	)
	require.NoError(t, err)

	probe := &probeModule{containers: map[string]mono.ServiceContainer{}}
	require.NoError(t, app.Register(activity.NewModule(10, logger)))
	require.NoError(t, app.Register(task.NewModule(logger)))
	require.NoError(t, app.Register(probe))

	require.NoError(t, app.Start(context.Background()))
	t.Cleanup(func() {
		_ = app.Stop(context.Background())
	})

	require.Contains(t, probe.containers, "task")
	require.Contains(t, probe.containers, "activity")
	return task.NewTaskAdapter(probe.containers["task"]), activity.NewActivityAdapter(probe.containers["activity"])
}

func TestTaskLifecycleOverServiceContainer(t *testing.T) {
	tasks, activities := startMonoApp(t)
	ctx := context.Background()

	desc := "D"
	created, err := tasks.CreateTask(ctx, &task.CreateTaskRequest{Title: "Integration", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, 1, created.ID)
	assert.Equal(t, "D", *created.Description)

	_, err = tasks.CreateTask(ctx, &task.CreateTaskRequest{Title: ""})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = tasks.GetTask(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	assert.EqualError(t, err, "Task with the id 999 not found")

	updated, err := tasks.UpdateTask(ctx, &task.UpdateTaskRequest{
		TaskID: created.ID,
		Patch: domain.Patch{
			Description: domain.Null[string](),
			Completed:   domain.Some(true),
		},
	})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Nil(t, updated.Description)
	assert.Equal(t, "Integration", updated.Title)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	done, err := tasks.ListTasks(ctx, &task.ListTasksRequest{Completed: domain.Some(true)})
	require.NoError(t, err)
	assert.Equal(t, 1, done.Total)

	open, err := tasks.ListTasks(ctx, &task.ListTasksRequest{Completed: domain.Some(false)})
	require.NoError(t, err)
	assert.Empty(t, open.Tasks)
	assert.NotNil(t, open.Tasks)

	require.NoError(t, tasks.DeleteTask(ctx, created.ID))
	assert.ErrorIs(t, tasks.DeleteTask(ctx, created.ID), domain.ErrTaskNotFound)

	assert.Eventually(t, func() bool {
		resp, err := activities.ListActivity(ctx, 0)
		return err == nil && resp.Total == 3
	}, 5*time.Second, 50*time.Millisecond)

	resp, err := activities.ListActivity(ctx, 0)
	require.NoError(t, err)
	require.Len(t, resp.Entries, 3)
	assert.Equal(t, activity.TypeTaskCreated, resp.Entries[0].Type)
	assert.Equal(t, activity.TypeTaskUpdated, resp.Entries[1].Type)
	assert.Equal(t, activity.TypeTaskDeleted, resp.Entries[2].Type)
}
