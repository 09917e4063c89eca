package domain

import "time"

// Task represents a user task. A nil ID means the task exists only on the
// client and has not been saved yet; once the server assigns an ID it never
// changes.
type Task struct {
	ID           *int64     `json:"id"`
	Content      string     `json:"content"`
	Done         bool       `json:"done"`
	Deadline     *time.Time `json:"deadline"`
	HighPriority bool       `json:"high_priority"`
	Subtasks     []Subtask  `json:"subtasks"`
	CategoryID   *int64     `json:"category_id"`
}

// Subtask is a single step of a task.
type Subtask struct {
	ID      *int64 `json:"id"`
	Content string `json:"content"`
	Done    bool   `json:"done"`
}

// Category groups tasks. Nil ID means not yet saved.
type Category struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

// SortMode selects the server-side ordering of a task listing.
type SortMode string

const (
	SortByPriority SortMode = "priority"
	SortByDeadline SortMode = "deadline"
)

// CategoryFilter narrows a task listing to one category. The zero value
// disables filtering; Enabled with a nil Category selects uncategorized tasks.
type CategoryFilter struct {
	Enabled  bool
	Category *Category
}
