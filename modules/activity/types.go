package activity

import "context"

// ServiceListActivity is the request-reply service exposing the log.
const ServiceListActivity = "list-activity"

// Event types recorded in the log.
const (
	TypeTaskCreated = "task_created"
	TypeTaskUpdated = "task_updated"
	TypeTaskDeleted = "task_deleted"
)

// ListActivityRequest asks for the newest Limit entries; zero means all.
type ListActivityRequest struct {
	Limit int `json:"limit,omitempty"`
}

// ListActivityResponse is the response for listing activity.
type ListActivityResponse struct {
	Entries []Entry `json:"entries"`
	Total   int     `json:"total"`
}

// ActivityPort is the read side of the activity log used by driving adapters.
type ActivityPort interface {
	ListActivity(ctx context.Context, limit int) (*ListActivityResponse, error)
}
