package api

import (
	"time"

	"github.com/taskbench/taskbench-go/internal/domain"
)

// timeLayout is the ISO local date-time format the Taskbench API speaks
// (no zone designator).
const timeLayout = "2006-01-02T15:04:05"

func formatTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

// TaskDpc is the deadline/priority/category block attached to tasks and
// suggestion payloads.
type TaskDpc struct {
	Deadline     *string `json:"deadline"`
	Priority     *int    `json:"priority"`
	CategoryID   *int64  `json:"category_id"`
	CategoryName *string `json:"category_name,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	UserID  int64  `json:"user_id"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

type RefreshResponse struct {
	UserID  int64  `json:"user_id"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type SubtaskResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	IsDone  bool   `json:"is_done"`
}

type TaskResponse struct {
	ID       int64             `json:"id"`
	Content  string            `json:"content"`
	IsDone   bool              `json:"is_done"`
	Dpc      TaskDpc           `json:"dpc"`
	Subtasks []SubtaskResponse `json:"subtasks"`
}

type SubtaskInput struct {
	Content string `json:"content"`
}

type AddTaskRequest struct {
	Content  string         `json:"content"`
	Dpc      TaskDpc        `json:"dpc"`
	Subtasks []SubtaskInput `json:"subtasks"`
}

type EditTaskRequest struct {
	Content string  `json:"content"`
	IsDone  *bool   `json:"is_done,omitempty"`
	Dpc     TaskDpc `json:"dpc"`
}

type AddSubtaskRequest struct {
	TaskID  int64  `json:"task_id"`
	Content string `json:"content"`
	IsDone  bool   `json:"is_done"`
}

type EditSubtaskRequest struct {
	Content *string `json:"content,omitempty"`
	IsDone  *bool   `json:"is_done,omitempty"`
}

type CategoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CategoryCreateRequest struct {
	Name string `json:"name"`
}

type CategoryUpdateRequest struct {
	Name string `json:"name"`
}

type StatisticsResponse struct {
	DoneToday int       `json:"done_today"`
	MaxDone   int       `json:"max_done"`
	Weekly    []float64 `json:"weekly"`
}

type SuggestionsRequest struct {
	Title     string  `json:"title"`
	Timestamp string  `json:"timestamp"`
	Dpc       TaskDpc `json:"dpc"`
}

type SuggestionsResponse struct {
	SuggestedDpc TaskDpc  `json:"suggested_dpc"`
	Suggestions  []string `json:"suggestions"`
}

type SubscriptionStatusResponse struct {
	IsSubscribed   bool    `json:"is_subscribed"`
	UserID         int64   `json:"user_id"`
	NextPayment    *string `json:"next_payment"`
	IsActive       *bool   `json:"is_active"`
	SubscriptionID *int64  `json:"subscription_id"`
}

type SubscriptionActivateResponse struct {
	ConfirmationURL   *string `json:"confirmation_url"`
	YookassaPaymentID *int64  `json:"yookassa_payment_id"`
	SubscriptionID    int64   `json:"subscription_id"`
}

// dpcFromTask flattens a task's deadline/priority/category into the wire block.
func dpcFromTask(t domain.Task) TaskDpc {
	priority := 0
	if t.HighPriority {
		priority = 1
	}
	dpc := TaskDpc{Priority: &priority, CategoryID: t.CategoryID}
	if t.Deadline != nil {
		s := formatTime(*t.Deadline)
		dpc.Deadline = &s
	}
	return dpc
}

// NewSuggestionsRequest builds the AI-suggestion payload from the current
// editor state. Only user-set hints are carried in the dpc block.
func NewSuggestionsRequest(q domain.SuggestionQuery) SuggestionsRequest {
	priority := 0
	if q.HighPriority {
		priority = 1
	}
	dpc := TaskDpc{Priority: &priority}
	if q.Deadline != nil {
		s := formatTime(*q.Deadline)
		dpc.Deadline = &s
	}
	if q.Category != nil {
		dpc.CategoryID = q.Category.ID
		name := q.Category.Name
		dpc.CategoryName = &name
	}
	return SuggestionsRequest{
		Title:     q.Prompt,
		Timestamp: formatTime(time.Now()),
		Dpc:       dpc,
	}
}

// SuggestionsFromResponse maps the AI endpoint's reply onto the domain model.
func SuggestionsFromResponse(r SuggestionsResponse) (domain.AiSuggestions, error) {
	out := domain.AiSuggestions{Subtasks: r.Suggestions}
	if r.SuggestedDpc.Priority != nil {
		high := *r.SuggestedDpc.Priority == 1
		out.HighPriority = &high
	}
	if r.SuggestedDpc.Deadline != nil && *r.SuggestedDpc.Deadline != "" {
		t, err := parseTime(*r.SuggestedDpc.Deadline)
		if err != nil {
			return domain.AiSuggestions{}, err
		}
		out.Deadline = &t
	}
	if r.SuggestedDpc.CategoryID != nil && r.SuggestedDpc.CategoryName != nil {
		out.Category = &domain.Category{
			ID:   r.SuggestedDpc.CategoryID,
			Name: *r.SuggestedDpc.CategoryName,
		}
	}
	return out, nil
}

// NewAddTaskRequest builds the creation payload for an unsaved task.
func NewAddTaskRequest(t domain.Task) AddTaskRequest {
	subtasks := make([]SubtaskInput, 0, len(t.Subtasks))
	for _, s := range t.Subtasks {
		subtasks = append(subtasks, SubtaskInput{Content: s.Content})
	}
	return AddTaskRequest{Content: t.Content, Dpc: dpcFromTask(t), Subtasks: subtasks}
}

// NewEditTaskRequest builds the update payload for a saved task.
func NewEditTaskRequest(t domain.Task) EditTaskRequest {
	done := t.Done
	return EditTaskRequest{Content: t.Content, IsDone: &done, Dpc: dpcFromTask(t)}
}

// TaskFromResponse maps a wire task onto the domain model.
func TaskFromResponse(r TaskResponse) (domain.Task, error) {
	task := domain.Task{
		ID:         &r.ID,
		Content:    r.Content,
		Done:       r.IsDone,
		CategoryID: r.Dpc.CategoryID,
	}
	if r.Dpc.Priority != nil && *r.Dpc.Priority != 0 {
		task.HighPriority = true
	}
	if r.Dpc.Deadline != nil && *r.Dpc.Deadline != "" {
		t, err := parseTime(*r.Dpc.Deadline)
		if err != nil {
			return domain.Task{}, err
		}
		task.Deadline = &t
	}
	task.Subtasks = make([]domain.Subtask, 0, len(r.Subtasks))
	for _, s := range r.Subtasks {
		id := s.ID
		task.Subtasks = append(task.Subtasks, domain.Subtask{
			ID:      &id,
			Content: s.Content,
			Done:    s.IsDone,
		})
	}
	return task, nil
}
