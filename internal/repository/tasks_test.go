package repository

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench-go/internal/api"
	"github.com/taskbench/taskbench-go/internal/auth"
	"github.com/taskbench/taskbench-go/internal/domain"
	"github.com/taskbench/taskbench-go/internal/store"
)

// nullAuthenticator satisfies the gateway's API slice for tests that never
// touch the auth endpoints.
type nullAuthenticator struct{}

func (nullAuthenticator) Register(context.Context, api.RegisterRequest) (*api.RegisterResponse, error) {
	panic("unexpected Register call")
}

func (nullAuthenticator) Login(context.Context, api.LoginRequest) (*api.LoginResponse, error) {
	panic("unexpected Login call")
}

func (nullAuthenticator) RefreshTokens(context.Context, api.RefreshRequest) (*api.RefreshResponse, error) {
	panic("unexpected RefreshTokens call")
}

func (nullAuthenticator) ChangePassword(context.Context, string, api.ChangePasswordRequest) error {
	panic("unexpected ChangePassword call")
}

func testGateway(t *testing.T) *auth.Gateway {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory()
	require.NoError(t, mem.Set(ctx, auth.KeyAccessToken, "acc"))
	require.NoError(t, mem.Set(ctx, auth.KeyRefreshToken, "ref"))
	return auth.NewGateway(nullAuthenticator{}, mem)
}

func TestTasks_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("nil ID creates", func(t *testing.T) {
		client := new(MockTaskAPI)
		client.On("CreateTask", mock.Anything, "acc", mock.AnythingOfType("api.AddTaskRequest")).
			Return(&api.TaskResponse{ID: 5, Content: "new task"}, nil).Once()
		tasks := NewTasks(testGateway(t), client)

		saved, err := tasks.Save(ctx, domain.Task{Content: "new task"})
		require.NoError(t, err)
		require.NotNil(t, saved.ID)
		assert.Equal(t, int64(5), *saved.ID)
		client.AssertExpectations(t)
	})

	t.Run("existing ID updates", func(t *testing.T) {
		id := int64(5)
		client := new(MockTaskAPI)
		client.On("EditTask", mock.Anything, "acc", id, mock.AnythingOfType("api.EditTaskRequest")).
			Return(&api.TaskResponse{ID: 5, Content: "edited", IsDone: true}, nil).Once()
		tasks := NewTasks(testGateway(t), client)

		saved, err := tasks.Save(ctx, domain.Task{ID: &id, Content: "edited", Done: true})
		require.NoError(t, err)
		assert.True(t, saved.Done)
		client.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("API failures surface to the caller", func(t *testing.T) {
		client := new(MockTaskAPI)
		client.On("CreateTask", mock.Anything, "acc", mock.Anything).
			Return(nil, &api.StatusError{Code: http.StatusInternalServerError, Body: "oops"}).Once()
		tasks := NewTasks(testGateway(t), client)

		_, err := tasks.Save(ctx, domain.Task{Content: "doomed"})
		assert.True(t, api.IsStatus(err, http.StatusInternalServerError))
	})
}

func TestTasks_UnsavedGuards(t *testing.T) {
	ctx := context.Background()
	tasks := NewTasks(testGateway(t), new(MockTaskAPI))

	assert.Error(t, tasks.Delete(ctx, domain.Task{Content: "unsaved"}))
	_, err := tasks.AddSubtask(ctx, domain.Task{}, domain.Subtask{Content: "s"})
	assert.Error(t, err)
	_, err = tasks.UpdateSubtask(ctx, domain.Subtask{Content: "s"})
	assert.Error(t, err)
	assert.Error(t, tasks.DeleteSubtask(ctx, domain.Subtask{Content: "s"}))
}

func TestTasks_ListQuery(t *testing.T) {
	ctx := context.Background()
	catID := int64(7)

	client := new(MockTaskAPI)
	client.On("GetTasks", mock.Anything, "acc", mock.MatchedBy(func(q api.TaskListQuery) bool {
		return q.Limit == 1000 &&
			q.SortBy == domain.SortByDeadline &&
			q.CategoryID != nil && *q.CategoryID == catID
	})).Return([]api.TaskResponse{{ID: 1, Content: "task"}}, nil).Once()

	tasks := NewTasks(testGateway(t), client)
	filter := domain.CategoryFilter{Enabled: true, Category: &domain.Category{ID: &catID}}
	got, err := tasks.List(ctx, filter, domain.SortByDeadline, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	client.AssertExpectations(t)
}
