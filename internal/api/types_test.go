package api

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench-go/internal/domain"
)

func TestTaskFromResponse(t *testing.T) {
	deadline := "2026-09-01T18:00:00"
	one := 1
	catID := int64(4)

	t.Run("full task", func(t *testing.T) {
		task, err := TaskFromResponse(TaskResponse{
			ID:      10,
			Content: "plan the trip",
			IsDone:  true,
			Dpc:     TaskDpc{Deadline: &deadline, Priority: &one, CategoryID: &catID},
			Subtasks: []SubtaskResponse{
				{ID: 11, Content: "pack bags", IsDone: false},
			},
		})
		require.NoError(t, err)

		require.NotNil(t, task.ID)
		assert.Equal(t, int64(10), *task.ID)
		assert.True(t, task.Done)
		assert.True(t, task.HighPriority)
		require.NotNil(t, task.Deadline)
		assert.Equal(t, time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC), *task.Deadline)
		require.Len(t, task.Subtasks, 1)
		assert.Equal(t, "pack bags", task.Subtasks[0].Content)
	})

	t.Run("nil dpc fields stay unset", func(t *testing.T) {
		task, err := TaskFromResponse(TaskResponse{ID: 1, Content: "bare"})
		require.NoError(t, err)
		assert.Nil(t, task.Deadline)
		assert.False(t, task.HighPriority)
		assert.Nil(t, task.CategoryID)
	})

	t.Run("garbage deadline is an error", func(t *testing.T) {
		bad := "tomorrow-ish"
		_, err := TaskFromResponse(TaskResponse{ID: 1, Dpc: TaskDpc{Deadline: &bad}})
		assert.Error(t, err)
	})
}

func TestNewEditTaskRequest(t *testing.T) {
	id := int64(10)
	deadline := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	task := domain.Task{
		ID:           &id,
		Content:      "plan the trip",
		Done:         true,
		Deadline:     &deadline,
		HighPriority: true,
	}

	req := NewEditTaskRequest(task)
	require.NotNil(t, req.IsDone)
	assert.True(t, *req.IsDone)
	require.NotNil(t, req.Dpc.Deadline)
	assert.Equal(t, "2026-09-01T18:00:00", *req.Dpc.Deadline)
	require.NotNil(t, req.Dpc.Priority)
	assert.Equal(t, 1, *req.Dpc.Priority)
}

func TestNewSuggestionsRequest(t *testing.T) {
	t.Run("hints ride along only when set", func(t *testing.T) {
		req := NewSuggestionsRequest(domain.SuggestionQuery{Prompt: "plan the trip"})
		assert.Equal(t, "plan the trip", req.Title)
		assert.Nil(t, req.Dpc.Deadline)
		assert.Nil(t, req.Dpc.CategoryID)
		require.NotNil(t, req.Dpc.Priority)
		assert.Equal(t, 0, *req.Dpc.Priority)
	})

	t.Run("manual hints are carried", func(t *testing.T) {
		deadline := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
		catID := int64(4)
		req := NewSuggestionsRequest(domain.SuggestionQuery{
			Prompt:       "plan the trip",
			Deadline:     &deadline,
			HighPriority: true,
			Category:     &domain.Category{ID: &catID, Name: "Travel"},
		})
		require.NotNil(t, req.Dpc.Deadline)
		assert.Equal(t, "2026-09-01T18:00:00", *req.Dpc.Deadline)
		assert.Equal(t, 1, *req.Dpc.Priority)
		require.NotNil(t, req.Dpc.CategoryName)
		assert.Equal(t, "Travel", *req.Dpc.CategoryName)
	})
}

func TestSuggestionsFromResponse(t *testing.T) {
	deadline := "2026-09-01T18:00:00"
	one := 1
	catID := int64(4)
	catName := "Travel"

	t.Run("full payload", func(t *testing.T) {
		got, err := SuggestionsFromResponse(SuggestionsResponse{
			SuggestedDpc: TaskDpc{
				Deadline:     &deadline,
				Priority:     &one,
				CategoryID:   &catID,
				CategoryName: &catName,
			},
			Suggestions: []string{"pack bags"},
		})
		require.NoError(t, err)

		assert.Equal(t, []string{"pack bags"}, got.Subtasks)
		require.NotNil(t, got.Deadline)
		require.NotNil(t, got.HighPriority)
		assert.True(t, *got.HighPriority)
		require.NotNil(t, got.Category)
		assert.Equal(t, "Travel", got.Category.Name)
	})

	t.Run("category needs both id and name", func(t *testing.T) {
		got, err := SuggestionsFromResponse(SuggestionsResponse{
			SuggestedDpc: TaskDpc{CategoryID: &catID},
		})
		require.NoError(t, err)
		assert.Nil(t, got.Category)
	})
}
