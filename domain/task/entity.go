package task

import "time"

// Field limits, counted in Unicode code points.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Task is the core domain entity representing a todo item.
type Task struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Clone returns a deep copy so callers never share the description pointer
// with the store.
func (t Task) Clone() Task {
	if t.Description != nil {
		d := *t.Description
		t.Description = &d
	}
	return t
}

// CreateInput holds the fields accepted when a task is created.
type CreateInput struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
}

// Patch is a partial update. Only fields that are set are applied.
type Patch struct {
	Title       Optional[string] `json:"title,omitzero"`
	Description Optional[string] `json:"description,omitzero"`
	Completed   Optional[bool]   `json:"completed,omitzero"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p Patch) IsEmpty() bool {
	return !p.Title.IsSet() && !p.Description.IsSet() && !p.Completed.IsSet()
}

// Fields returns the JSON names of the fields present in the patch.
func (p Patch) Fields() []string {
	fields := make([]string, 0, 3)
	if p.Title.IsSet() {
		fields = append(fields, "title")
	}
	if p.Description.IsSet() {
		fields = append(fields, "description")
	}
	if p.Completed.IsSet() {
		fields = append(fields, "completed")
	}
	return fields
}

// ApplyTo overwrites the fields of t that the patch sets. The patch must have
// been validated.
func (p Patch) ApplyTo(t *Task) {
	if v, ok := p.Title.Get(); ok {
		t.Title = v
	}
	if p.Description.IsNull() {
		t.Description = nil
	} else if v, ok := p.Description.Get(); ok {
		t.Description = &v
	}
	if v, ok := p.Completed.Get(); ok {
		t.Completed = v
	}
}

// Filter selects tasks when listing. An unset Completed matches everything.
type Filter struct {
	Completed Optional[bool] `json:"completed,omitzero"`
}

// Matches reports whether t passes the filter.
func (f Filter) Matches(t Task) bool {
	want, ok := f.Completed.Get()
	return !ok || t.Completed == want
}
