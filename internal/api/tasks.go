package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/taskbench/taskbench-go/internal/domain"
)

// TaskListQuery narrows and orders a task listing.
type TaskListQuery struct {
	Offset     int
	Limit      int
	SortBy     domain.SortMode
	Date       string // ISO date, empty for all
	CategoryID *int64
}

// GetTasks lists the user's tasks.
func (c *Client) GetTasks(ctx context.Context, access string, q TaskListQuery) ([]TaskResponse, error) {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(q.Offset))
	query.Set("limit", strconv.Itoa(q.Limit))
	if q.SortBy != "" {
		query.Set("sort_by", string(q.SortBy))
	}
	if q.Date != "" {
		query.Set("date", q.Date)
	}
	if q.CategoryID != nil {
		query.Set("category_id", strconv.FormatInt(*q.CategoryID, 10))
	}

	var resp []TaskResponse
	if err := c.do(ctx, http.MethodGet, "tasks/", query, access, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateTask saves a new task together with its subtasks.
func (c *Client) CreateTask(ctx context.Context, access string, req AddTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	if err := c.do(ctx, http.MethodPost, "tasks/", nil, access, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EditTask updates an existing task.
func (c *Client) EditTask(ctx context.Context, access string, taskID int64, req EditTaskRequest) (*TaskResponse, error) {
	var resp TaskResponse
	path := fmt.Sprintf("tasks/%d/", taskID)
	if err := c.do(ctx, http.MethodPatch, path, nil, access, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, access string, taskID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("tasks/%d/", taskID), nil, access, nil, nil)
}

// AddSubtask attaches a subtask to a task.
func (c *Client) AddSubtask(ctx context.Context, access string, req AddSubtaskRequest) (*SubtaskResponse, error) {
	var resp SubtaskResponse
	if err := c.do(ctx, http.MethodPost, "subtasks/", nil, access, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// EditSubtask updates a subtask's text or done flag.
func (c *Client) EditSubtask(ctx context.Context, access string, subtaskID int64, req EditSubtaskRequest) (*SubtaskResponse, error) {
	var resp SubtaskResponse
	path := fmt.Sprintf("subtasks/%d/", subtaskID)
	if err := c.do(ctx, http.MethodPatch, path, nil, access, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteSubtask removes a subtask.
func (c *Client) DeleteSubtask(ctx context.Context, access string, subtaskID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("subtasks/%d/", subtaskID), nil, access, nil, nil)
}
