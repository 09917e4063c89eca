package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/taskbench/taskbench-go/internal/api"
	"github.com/taskbench/taskbench-go/internal/auth"
	"github.com/taskbench/taskbench-go/internal/domain"
)

// listLimit matches the page size the mobile client requested.
const listLimit = 1000

// TaskAPI is the slice of the API client the task repository uses.
type TaskAPI interface {
	GetTasks(ctx context.Context, access string, q api.TaskListQuery) ([]api.TaskResponse, error)
	CreateTask(ctx context.Context, access string, req api.AddTaskRequest) (*api.TaskResponse, error)
	EditTask(ctx context.Context, access string, taskID int64, req api.EditTaskRequest) (*api.TaskResponse, error)
	DeleteTask(ctx context.Context, access string, taskID int64) error
	AddSubtask(ctx context.Context, access string, req api.AddSubtaskRequest) (*api.SubtaskResponse, error)
	EditSubtask(ctx context.Context, access string, subtaskID int64, req api.EditSubtaskRequest) (*api.SubtaskResponse, error)
	DeleteSubtask(ctx context.Context, access string, subtaskID int64) error
}

// Tasks is the network-backed task repository. Every call goes through the
// gateway's retry protocol.
type Tasks struct {
	gateway *auth.Gateway
	client  TaskAPI
}

// NewTasks creates the task repository.
func NewTasks(gateway *auth.Gateway, client TaskAPI) *Tasks {
	return &Tasks{gateway: gateway, client: client}
}

// List returns the user's tasks, optionally filtered by category and deadline
// date, ordered by the given mode.
func (r *Tasks) List(ctx context.Context, filter domain.CategoryFilter, sort domain.SortMode, date *time.Time) ([]domain.Task, error) {
	q := api.TaskListQuery{Limit: listLimit, SortBy: sort}
	if date != nil {
		q.Date = date.Format("2006-01-02")
	}
	if filter.Enabled && filter.Category != nil {
		q.CategoryID = filter.Category.ID
	}

	return auth.Do(ctx, r.gateway, func(ctx context.Context, access string) ([]domain.Task, error) {
		resp, err := r.client.GetTasks(ctx, access, q)
		if err != nil {
			return nil, err
		}
		tasks := make([]domain.Task, 0, len(resp))
		for _, tr := range resp {
			task, err := api.TaskFromResponse(tr)
			if err != nil {
				return nil, err
			}
			tasks = append(tasks, task)
		}
		return tasks, nil
	})
}

// Save creates the task when it has no ID yet and updates it otherwise.
func (r *Tasks) Save(ctx context.Context, task domain.Task) (domain.Task, error) {
	if task.ID == nil {
		return r.create(ctx, task)
	}
	return r.update(ctx, task)
}

func (r *Tasks) create(ctx context.Context, task domain.Task) (domain.Task, error) {
	log.Debug().Str("content", task.Content).Msg("creating task")
	req := api.NewAddTaskRequest(task)
	return auth.Do(ctx, r.gateway, func(ctx context.Context, access string) (domain.Task, error) {
		resp, err := r.client.CreateTask(ctx, access, req)
		if err != nil {
			return domain.Task{}, err
		}
		return api.TaskFromResponse(*resp)
	})
}

func (r *Tasks) update(ctx context.Context, task domain.Task) (domain.Task, error) {
	log.Debug().Int64("id", *task.ID).Msg("updating task")
	req := api.NewEditTaskRequest(task)
	return auth.Do(ctx, r.gateway, func(ctx context.Context, access string) (domain.Task, error) {
		resp, err := r.client.EditTask(ctx, access, *task.ID, req)
		if err != nil {
			return domain.Task{}, err
		}
		return api.TaskFromResponse(*resp)
	})
}

// Delete removes a saved task.
func (r *Tasks) Delete(ctx context.Context, task domain.Task) error {
	if task.ID == nil {
		return errors.New("cannot delete an unsaved task")
	}
	return r.gateway.WithAuth(ctx, func(ctx context.Context, access string) error {
		return r.client.DeleteTask(ctx, access, *task.ID)
	})
}

// AddSubtask attaches a new subtask to a saved task.
func (r *Tasks) AddSubtask(ctx context.Context, task domain.Task, subtask domain.Subtask) (domain.Subtask, error) {
	if task.ID == nil {
		return domain.Subtask{}, errors.New("cannot add a subtask to an unsaved task")
	}
	req := api.AddSubtaskRequest{TaskID: *task.ID, Content: subtask.Content, IsDone: subtask.Done}
	return auth.Do(ctx, r.gateway, func(ctx context.Context, access string) (domain.Subtask, error) {
		resp, err := r.client.AddSubtask(ctx, access, req)
		if err != nil {
			return domain.Subtask{}, err
		}
		return domain.Subtask{ID: &resp.ID, Content: resp.Content, Done: resp.IsDone}, nil
	})
}

// UpdateSubtask pushes a subtask's text and done flag.
func (r *Tasks) UpdateSubtask(ctx context.Context, subtask domain.Subtask) (domain.Subtask, error) {
	if subtask.ID == nil {
		return domain.Subtask{}, errors.New("cannot update an unsaved subtask")
	}
	req := api.EditSubtaskRequest{Content: &subtask.Content, IsDone: &subtask.Done}
	return auth.Do(ctx, r.gateway, func(ctx context.Context, access string) (domain.Subtask, error) {
		resp, err := r.client.EditSubtask(ctx, access, *subtask.ID, req)
		if err != nil {
			return domain.Subtask{}, err
		}
		return domain.Subtask{ID: &resp.ID, Content: resp.Content, Done: resp.IsDone}, nil
	})
}

// DeleteSubtask removes a saved subtask.
func (r *Tasks) DeleteSubtask(ctx context.Context, subtask domain.Subtask) error {
	if subtask.ID == nil {
		return errors.New("cannot delete an unsaved subtask")
	}
	return r.gateway.WithAuth(ctx, func(ctx context.Context, access string) error {
		return r.client.DeleteSubtask(ctx, access, *subtask.ID)
	})
}
