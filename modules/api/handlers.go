package api

import (
	"context"
	"errors"
	"strings"
	"time"

	domain "github.com/example/todo-list/domain/task"
	"github.com/example/todo-list/modules/task"
	"github.com/gofiber/fiber/v2"
)

const healthProbeTimeout = 2 * time.Second

var endpoints = map[string]string{
	"GET /tasks":         "Get all tasks",
	"GET /tasks/{id}":    "Get task by ID",
	"POST /tasks":        "Create new task",
	"PUT /tasks/{id}":    "Update task",
	"DELETE /tasks/{id}": "Delete task",
	"GET /activity":      "Recent task activity",
	"GET /health":        "Health check",
}

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes(app *fiber.App) {
	app.Get("/", m.index)
	app.Get("/health", m.healthHandler)
	app.Get("/activity", m.listActivity)

	tasks := app.Group("/tasks")
	tasks.Get("/", m.listTasks)
	tasks.Post("/", m.createTask)
	tasks.Get("/:id", m.getTask)
	tasks.Put("/:id", m.updateTask)
	tasks.Delete("/:id", m.deleteTask)
}

// index handles GET /.
func (m *APIModule) index(c *fiber.Ctx) error {
	return c.JSON(IndexResponse{
		Message:   "To-Do List",
		Endpoints: endpoints,
	})
}

// healthHandler handles GET /health. It reports unhealthy when the task
// service cannot be reached.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	status := m.Health(c.Context())
	details := map[string]any{}
	for k, v := range status.Details {
		details[k] = v
	}

	if status.Healthy {
		ctx, cancel := context.WithTimeout(c.Context(), healthProbeTimeout)
		defer cancel()
		resp, err := m.taskAdapter.ListTasks(ctx, &task.ListTasksRequest{})
		if err != nil {
			status.Healthy = false
			status.Message = "task service unavailable"
			details["error"] = err.Error()
		} else {
			details["tasks"] = resp.Total
		}
	}

	if !status.Healthy {
		return c.Status(fiber.StatusServiceUnavailable).JSON(HealthResponse{
			Status:  "unhealthy",
			Message: status.Message,
			Details: details,
		})
	}
	return c.JSON(HealthResponse{
		Status:  "healthy",
		Message: status.Message,
		Details: details,
	})
}

// listTasks handles GET /tasks.
func (m *APIModule) listTasks(c *fiber.Ctx) error {
	var req task.ListTasksRequest
	if c.Context().QueryArgs().Has("completed") {
		completed, ok := parseBool(c.Query("completed"))
		if !ok {
			return invalidRequest(c, "Query parameter 'completed' must be a boolean")
		}
		req.Completed = domain.Some(completed)
	}

	resp, err := m.taskAdapter.ListTasks(c.Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(resp.Tasks)
}

// getTask handles GET /tasks/:id.
func (m *APIModule) getTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidRequest(c, "Task ID must be an integer")
	}

	t, err := m.taskAdapter.GetTask(c.Context(), id)
	if err != nil {
		return m.respondError(c, err)
	}

	return c.JSON(t)
}

// createTask handles POST /tasks.
func (m *APIModule) createTask(c *fiber.Ctx) error {
	var req CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidRequest(c, "Invalid request body")
	}

	input := domain.CreateInput{Title: req.Title, Description: req.Description}
	if err := input.Validate(); err != nil {
		return m.respondError(c, err)
	}

	t, err := m.taskAdapter.CreateTask(c.Context(), &task.CreateTaskRequest{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return m.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(t)
}

// updateTask handles PUT /tasks/:id. The body is validated before the task
// is looked up, so an invalid body wins over a missing task.
func (m *APIModule) updateTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidRequest(c, "Task ID must be an integer")
	}

	var patch UpdateTaskRequest
	if err := c.BodyParser(&patch); err != nil {
		return invalidRequest(c, "Invalid request body")
	}
	if err := patch.Validate(); err != nil {
		return m.respondError(c, err)
	}

	t, err := m.taskAdapter.UpdateTask(c.Context(), &task.UpdateTaskRequest{
		TaskID: id,
		Patch:  patch,
	})
	if err != nil {
		return m.respondError(c, err)
	}

	return c.JSON(t)
}

// deleteTask handles DELETE /tasks/:id.
func (m *APIModule) deleteTask(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return invalidRequest(c, "Task ID must be an integer")
	}

	if err := m.taskAdapter.DeleteTask(c.Context(), id); err != nil {
		return m.respondError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// listActivity handles GET /activity.
func (m *APIModule) listActivity(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 0)

	resp, err := m.activityAdapter.ListActivity(c.Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// respondError maps domain errors onto HTTP responses. Anything else goes to
// the app error handler.
func (m *APIModule) respondError(c *fiber.Ctx, err error) error {
	var notFound *domain.NotFoundError
	var invalid *domain.ValidationError
	switch {
	case errors.As(err, &notFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error:   ErrorKindNotFound,
			Message: notFound.Error(),
		})
	case errors.As(err, &invalid):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
			Error:   ErrorKindValidation,
			Message: "Validation failed",
			Fields:  invalid.Fields,
		})
	default:
		return err
	}
}

func invalidRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(ErrorResponse{
		Error:   ErrorKindInvalidRequest,
		Message: message,
	})
}

// parseBool accepts the usual spellings of a boolean query value.
func parseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on", "y", "t":
		return true, true
	case "false", "0", "no", "off", "n", "f":
		return false, true
	default:
		return false, false
	}
}
