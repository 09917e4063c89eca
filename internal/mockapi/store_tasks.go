package mockapi

import (
	"sort"
	"strings"
	"time"
)

// CreateTask stores a new task with its subtasks.
func (s *Store) CreateTask(userID int64, content string, deadline *time.Time, priority int, categoryID *int64, subtaskTexts []string) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	task := &Task{
		ID:         s.allocateID(),
		UserID:     userID,
		Content:    content,
		Deadline:   deadline,
		Priority:   priority,
		CategoryID: categoryID,
	}
	for _, text := range subtaskTexts {
		sub := &Subtask{ID: s.allocateID(), TaskID: task.ID, Content: text}
		s.subtasks[sub.ID] = sub
		task.SubtaskIDs = append(task.SubtaskIDs, sub.ID)
	}
	s.tasks[task.ID] = task
	return task
}

// TaskByID returns a task owned by userID.
func (s *Store) TaskByID(userID, taskID int64) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	task, ok := s.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, false
	}
	return task, true
}

// TaskFilter narrows ListTasks.
type TaskFilter struct {
	Date       *time.Time
	CategoryID *int64
	SortBy     string
}

// ListTasks returns the user's tasks after filtering and sorting.
func (s *Store) ListTasks(userID int64, filter TaskFilter, offset, limit int) []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Task
	for _, task := range s.tasks {
		if task.UserID != userID {
			continue
		}
		if filter.CategoryID != nil {
			if task.CategoryID == nil || *task.CategoryID != *filter.CategoryID {
				continue
			}
		}
		if filter.Date != nil {
			if task.Deadline == nil {
				continue
			}
			y1, m1, d1 := task.Deadline.Date()
			y2, m2, d2 := filter.Date.Date()
			if y1 != y2 || m1 != m2 || d1 != d2 {
				continue
			}
		}
		out = append(out, task)
	}

	switch strings.ToLower(filter.SortBy) {
	case "priority":
		sort.Slice(out, func(i, j int) bool {
			if out[i].Priority != out[j].Priority {
				return out[i].Priority > out[j].Priority
			}
			return out[i].ID < out[j].ID
		})
	case "deadline":
		sort.Slice(out, func(i, j int) bool {
			di, dj := out[i].Deadline, out[j].Deadline
			switch {
			case di == nil && dj == nil:
				return out[i].ID < out[j].ID
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return di.Before(*dj)
			}
		})
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}

	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// TaskUpdate carries the mutable task fields; nil means unchanged.
type TaskUpdate struct {
	Content    *string
	Done       *bool
	Deadline   *time.Time
	HasDPC     bool
	Priority   *int
	CategoryID *int64
}

// UpdateTask applies an update to a task owned by userID.
func (s *Store) UpdateTask(userID, taskID int64, update TaskUpdate) (*Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, false
	}

	if update.Content != nil {
		task.Content = *update.Content
	}
	if update.Done != nil {
		task.Done = *update.Done
		if *update.Done {
			now := time.Now()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}
	if update.HasDPC {
		task.Deadline = update.Deadline
		task.CategoryID = update.CategoryID
		if update.Priority != nil {
			task.Priority = *update.Priority
		}
	}
	return task, true
}

// DeleteTask removes a task and its subtasks.
func (s *Store) DeleteTask(userID, taskID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.UserID != userID {
		return false
	}
	for _, subID := range task.SubtaskIDs {
		delete(s.subtasks, subID)
	}
	delete(s.tasks, taskID)
	return true
}

// Subtasks returns a task's subtasks in insertion order.
func (s *Store) Subtasks(task *Task) []*Subtask {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Subtask, 0, len(task.SubtaskIDs))
	for _, id := range task.SubtaskIDs {
		if sub, ok := s.subtasks[id]; ok {
			out = append(out, sub)
		}
	}
	return out
}

// CreateSubtask attaches a subtask to a task owned by userID.
func (s *Store) CreateSubtask(userID, taskID int64, content string, done bool) (*Subtask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	task, ok := s.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, false
	}
	sub := &Subtask{ID: s.allocateID(), TaskID: taskID, Content: content, Done: done}
	s.subtasks[sub.ID] = sub
	task.SubtaskIDs = append(task.SubtaskIDs, sub.ID)
	return sub, true
}

// UpdateSubtask edits a subtask owned (via its task) by userID.
func (s *Store) UpdateSubtask(userID, subtaskID int64, content *string, done *bool) (*Subtask, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subtasks[subtaskID]
	if !ok {
		return nil, false
	}
	task, ok := s.tasks[sub.TaskID]
	if !ok || task.UserID != userID {
		return nil, false
	}

	if content != nil {
		sub.Content = *content
	}
	if done != nil {
		sub.Done = *done
	}
	return sub, true
}

// DeleteSubtask removes a subtask owned (via its task) by userID.
func (s *Store) DeleteSubtask(userID, subtaskID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subtasks[subtaskID]
	if !ok {
		return false
	}
	task, ok := s.tasks[sub.TaskID]
	if !ok || task.UserID != userID {
		return false
	}

	kept := task.SubtaskIDs[:0]
	for _, id := range task.SubtaskIDs {
		if id != subtaskID {
			kept = append(kept, id)
		}
	}
	task.SubtaskIDs = kept
	delete(s.subtasks, subtaskID)
	return true
}

// CompletedCounts returns per-day completion counts for the week containing
// now, Monday first.
func (s *Store) CompletedCounts(userID int64, now time.Time) [7]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	weekday := int(now.Weekday()+6) % 7 // Monday = 0
	monday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -weekday)

	var counts [7]int
	for _, task := range s.tasks {
		if task.UserID != userID || !task.Done || task.CompletedAt == nil {
			continue
		}
		day := int(task.CompletedAt.Sub(monday).Hours() / 24)
		if day >= 0 && day < 7 {
			counts[day]++
		}
	}
	return counts
}
