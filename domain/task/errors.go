package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrTaskNotFound indicates the task was not found.
	ErrTaskNotFound = errors.New("task not found")
	// ErrValidation indicates one or more fields violate a constraint.
	ErrValidation = errors.New("validation failed")
)

// NotFoundError reports a missing task ID. It matches ErrTaskNotFound.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Task with the id %d not found", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrTaskNotFound }

// FieldError is a single per-field diagnostic.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError collects every field that failed validation. It matches
// ErrValidation.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }
