package domain

import "time"

// SuggestionQuery is one immutable suggestion request built from the current
// editor state. Deadline and Category are included only when the user set them
// manually; when omitted the server is free to suggest its own.
type SuggestionQuery struct {
	Prompt       string
	Deadline     *time.Time
	HighPriority bool
	Category     *Category
}

// AiSuggestions is the server's proposal for a task being composed: subtask
// texts plus optional deadline/priority/category. All fields may be empty.
type AiSuggestions struct {
	Subtasks     []string
	Deadline     *time.Time
	HighPriority *bool
	Category     *Category
}
