package mockapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taskbench/taskbench-go/internal/api"
)

const (
	wireTimeLayout = "2006-01-02T15:04:05"
	wireDateLayout = "2006-01-02"
)

// taskResponse renders a stored task in the wire shape.
func (s *Server) taskResponse(task *Task) api.TaskResponse {
	priority := task.Priority
	resp := api.TaskResponse{
		ID:      task.ID,
		Content: task.Content,
		IsDone:  task.Done,
		Dpc: api.TaskDpc{
			Priority:   &priority,
			CategoryID: task.CategoryID,
		},
		Subtasks: []api.SubtaskResponse{},
	}
	if task.Deadline != nil {
		deadline := task.Deadline.Format(wireTimeLayout)
		resp.Dpc.Deadline = &deadline
	}
	if task.CategoryID != nil {
		if cat, ok := s.store.CategoryByID(task.UserID, *task.CategoryID); ok {
			resp.Dpc.CategoryName = &cat.Name
		}
	}
	for _, sub := range s.store.Subtasks(task) {
		resp.Subtasks = append(resp.Subtasks, api.SubtaskResponse{
			ID:      sub.ID,
			Content: sub.Content,
			IsDone:  sub.Done,
		})
	}
	return resp
}

// ListTasks handles GET tasks/.
func (s *Server) ListTasks(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}

	q := r.URL.Query()
	offset, _ := strconv.Atoi(q.Get("offset"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	filter := TaskFilter{SortBy: q.Get("sort_by")}
	if date := q.Get("date"); date != "" {
		t, err := time.Parse(wireDateLayout, date)
		if err != nil {
			badRequest(w, "invalid date")
			return
		}
		filter.Date = &t
	}
	if raw := q.Get("category_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			badRequest(w, "invalid category_id")
			return
		}
		filter.CategoryID = &id
	}

	tasks := s.store.ListTasks(userID, filter, offset, limit)
	out := make([]api.TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, s.taskResponse(task))
	}
	writeJSON(w, http.StatusOK, out)
}

// CreateTask handles POST tasks/.
func (s *Server) CreateTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}

	var req api.AddTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Content == "" {
		badRequest(w, "content is required")
		return
	}

	deadline, priority, categoryID, err := s.decodeDpc(userID, req.Dpc)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	subtasks := make([]string, 0, len(req.Subtasks))
	for _, sub := range req.Subtasks {
		subtasks = append(subtasks, sub.Content)
	}

	task := s.store.CreateTask(userID, req.Content, deadline, priority, categoryID, subtasks)
	writeJSON(w, http.StatusCreated, s.taskResponse(task))
}

// EditTask handles PATCH tasks/{taskID}/.
func (s *Server) EditTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}
	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		badRequest(w, "invalid task ID")
		return
	}

	var req api.EditTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	deadline, priority, categoryID, err := s.decodeDpc(userID, req.Dpc)
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	update := TaskUpdate{
		Done:       req.IsDone,
		Deadline:   deadline,
		HasDPC:     true,
		Priority:   &priority,
		CategoryID: categoryID,
	}
	if req.Content != "" {
		update.Content = &req.Content
	}

	task, ok := s.store.UpdateTask(userID, taskID, update)
	if !ok {
		notFound(w, "task not found")
		return
	}
	writeJSON(w, http.StatusOK, s.taskResponse(task))
}

// DeleteTask handles DELETE tasks/{taskID}/.
func (s *Server) DeleteTask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}
	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil {
		badRequest(w, "invalid task ID")
		return
	}
	if !s.store.DeleteTask(userID, taskID) {
		notFound(w, "task not found")
		return
	}
	noContent(w)
}

// AddSubtask handles POST subtasks/.
func (s *Server) AddSubtask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}

	var req api.AddSubtaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}
	if req.Content == "" {
		badRequest(w, "content is required")
		return
	}

	sub, ok := s.store.CreateSubtask(userID, req.TaskID, req.Content, req.IsDone)
	if !ok {
		notFound(w, "task not found")
		return
	}
	writeJSON(w, http.StatusCreated, api.SubtaskResponse{ID: sub.ID, Content: sub.Content, IsDone: sub.Done})
}

// EditSubtask handles PATCH subtasks/{subtaskID}/.
func (s *Server) EditSubtask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}
	subtaskID, err := strconv.ParseInt(chi.URLParam(r, "subtaskID"), 10, 64)
	if err != nil {
		badRequest(w, "invalid subtask ID")
		return
	}

	var req api.EditSubtaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	sub, ok := s.store.UpdateSubtask(userID, subtaskID, req.Content, req.IsDone)
	if !ok {
		notFound(w, "subtask not found")
		return
	}
	writeJSON(w, http.StatusOK, api.SubtaskResponse{ID: sub.ID, Content: sub.Content, IsDone: sub.Done})
}

// DeleteSubtask handles DELETE subtasks/{subtaskID}/.
func (s *Server) DeleteSubtask(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(r.Context())
	if !ok {
		unauthorized(w, "unauthorized")
		return
	}
	subtaskID, err := strconv.ParseInt(chi.URLParam(r, "subtaskID"), 10, 64)
	if err != nil {
		badRequest(w, "invalid subtask ID")
		return
	}
	if !s.store.DeleteSubtask(userID, subtaskID) {
		notFound(w, "subtask not found")
		return
	}
	noContent(w)
}

// decodeDpc validates and unpacks the wire deadline/priority/category block.
func (s *Server) decodeDpc(userID int64, dpc api.TaskDpc) (*time.Time, int, *int64, error) {
	var deadline *time.Time
	if dpc.Deadline != nil && *dpc.Deadline != "" {
		t, err := time.Parse(wireTimeLayout, *dpc.Deadline)
		if err != nil {
			return nil, 0, nil, errInvalidDeadline
		}
		deadline = &t
	}

	priority := 0
	if dpc.Priority != nil {
		priority = *dpc.Priority
	}

	if dpc.CategoryID != nil {
		if _, ok := s.store.CategoryByID(userID, *dpc.CategoryID); !ok {
			return nil, 0, nil, errUnknownCategory
		}
	}
	return deadline, priority, dpc.CategoryID, nil
}
