package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/taskbench/taskbench-go/internal/api"
)

// MockTaskAPI mocks the TaskAPI interface
type MockTaskAPI struct {
	mock.Mock
}

func (m *MockTaskAPI) GetTasks(ctx context.Context, access string, q api.TaskListQuery) ([]api.TaskResponse, error) {
	args := m.Called(ctx, access, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.TaskResponse), args.Error(1)
}

func (m *MockTaskAPI) CreateTask(ctx context.Context, access string, req api.AddTaskRequest) (*api.TaskResponse, error) {
	args := m.Called(ctx, access, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.TaskResponse), args.Error(1)
}

func (m *MockTaskAPI) EditTask(ctx context.Context, access string, taskID int64, req api.EditTaskRequest) (*api.TaskResponse, error) {
	args := m.Called(ctx, access, taskID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.TaskResponse), args.Error(1)
}

func (m *MockTaskAPI) DeleteTask(ctx context.Context, access string, taskID int64) error {
	args := m.Called(ctx, access, taskID)
	return args.Error(0)
}

func (m *MockTaskAPI) AddSubtask(ctx context.Context, access string, req api.AddSubtaskRequest) (*api.SubtaskResponse, error) {
	args := m.Called(ctx, access, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.SubtaskResponse), args.Error(1)
}

func (m *MockTaskAPI) EditSubtask(ctx context.Context, access string, subtaskID int64, req api.EditSubtaskRequest) (*api.SubtaskResponse, error) {
	args := m.Called(ctx, access, subtaskID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.SubtaskResponse), args.Error(1)
}

func (m *MockTaskAPI) DeleteSubtask(ctx context.Context, access string, subtaskID int64) error {
	args := m.Called(ctx, access, subtaskID)
	return args.Error(0)
}

// MockCategoryAPI mocks the CategoryAPI interface
type MockCategoryAPI struct {
	mock.Mock
}

func (m *MockCategoryAPI) GetCategories(ctx context.Context, access string) ([]api.CategoryResponse, error) {
	args := m.Called(ctx, access)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]api.CategoryResponse), args.Error(1)
}

func (m *MockCategoryAPI) CreateCategory(ctx context.Context, access string, req api.CategoryCreateRequest) (*api.CategoryResponse, error) {
	args := m.Called(ctx, access, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CategoryResponse), args.Error(1)
}

func (m *MockCategoryAPI) UpdateCategory(ctx context.Context, access string, categoryID int64, req api.CategoryUpdateRequest) (*api.CategoryResponse, error) {
	args := m.Called(ctx, access, categoryID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.CategoryResponse), args.Error(1)
}

func (m *MockCategoryAPI) DeleteCategory(ctx context.Context, access string, categoryID int64) error {
	args := m.Called(ctx, access, categoryID)
	return args.Error(0)
}
