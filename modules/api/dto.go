package api

import domain "github.com/example/todo-list/domain/task"

// Error kinds returned in ErrorResponse.Error.
const (
	ErrorKindNotFound       = "not_found"
	ErrorKindValidation     = "validation_error"
	ErrorKindInvalidRequest = "invalid_request"
	ErrorKindServer         = "server_error"
)

// CreateTaskRequest is the HTTP request for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
}

// UpdateTaskRequest is the HTTP request for updating a task. Absent keys
// leave the field untouched.
type UpdateTaskRequest = domain.Patch

// IndexResponse is the HTTP response for the root endpoint.
type IndexResponse struct {
	Message   string            `json:"message"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthResponse is the HTTP response for health check.
type HealthResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// ErrorResponse is the HTTP response for errors.
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}
