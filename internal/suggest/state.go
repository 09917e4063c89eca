package suggest

import (
	"context"
	"errors"
	"time"

	"github.com/taskbench/taskbench-go/internal/domain"
)

// Input returns the current title text.
func (e *Editor) Input() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.input
}

// Suggestions returns the currently displayed suggestion texts.
func (e *Editor) Suggestions() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, len(e.suggestions))
	copy(out, e.suggestions)
	return out
}

// Deadline returns the displayed deadline, nil when unset.
func (e *Editor) Deadline() *time.Time {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.deadline
}

// SetDeadline records a manual deadline choice; suggested deadlines will no
// longer overwrite it.
func (e *Editor) SetDeadline(t time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.deadline = &t
	e.deadlineManual = true
}

// HighPriority returns the displayed priority flag.
func (e *Editor) HighPriority() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.highPriority
}

// TogglePriority flips the priority flag as a manual choice.
func (e *Editor) TogglePriority() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.highPriority = !e.highPriority
	e.priorityManual = true
}

// Category returns the selected category, nil when none.
func (e *Editor) Category() *domain.Category {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.category
}

// SelectCategory records an explicit category selection; suggested categories
// never override it.
func (e *Editor) SelectCategory(c domain.Category) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.category = &c
}

// Subtasks returns the composed subtasks.
func (e *Editor) Subtasks() []domain.Subtask {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.Subtask, len(e.subtasks))
	copy(out, e.subtasks)
	return out
}

// AddSubtask appends a client-local subtask. Duplicate texts are rejected so
// the suggestion dedup invariant holds.
func (e *Editor) AddSubtask(text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.addSubtaskLocked(text)
}

// RemoveSubtask drops the first subtask with the given text.
func (e *Editor) RemoveSubtask(text string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, s := range e.subtasks {
		if s.Content == text {
			e.subtasks = append(e.subtasks[:i], e.subtasks[i+1:]...)
			return
		}
	}
}

// AcceptSuggestion promotes a displayed suggestion to a subtask.
func (e *Editor) AcceptSuggestion(text string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	found := false
	kept := e.suggestions[:0]
	for _, s := range e.suggestions {
		if !found && s == text {
			found = true
			continue
		}
		kept = append(kept, s)
	}
	if !found {
		return false
	}
	e.suggestions = kept
	return e.addSubtaskLocked(text)
}

func (e *Editor) addSubtaskLocked(text string) bool {
	for _, s := range e.subtasks {
		if s.Content == text {
			return false
		}
	}
	e.subtasks = append(e.subtasks, domain.Subtask{Content: text, Done: false})
	return true
}

// Submit saves the composed task and resets the editor on success.
func (e *Editor) Submit(ctx context.Context) (domain.Task, error) {
	if e.saver == nil {
		return domain.Task{}, errors.New("editor has no task saver")
	}

	e.mu.Lock()
	task := domain.Task{
		Content:      e.input,
		Deadline:     e.deadline,
		HighPriority: e.highPriority,
		Subtasks:     append([]domain.Subtask(nil), e.subtasks...),
	}
	if e.category != nil {
		task.CategoryID = e.category.ID
	}
	e.mu.Unlock()

	saved, err := e.saver.Save(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}

	e.Reset()
	return saved, nil
}

// Reset returns the editor to its blank state and cancels any pending cycle.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.input = ""
	e.deadline = nil
	e.deadlineManual = false
	e.highPriority = false
	e.priorityManual = false
	e.category = nil
	e.subtasks = nil
	e.suggestions = nil
}
