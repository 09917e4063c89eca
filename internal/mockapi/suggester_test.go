package mockapi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggester(t *testing.T) {
	g := &Suggester{}
	now := time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC) // a Friday

	t.Run("enumerated titles split into one subtask per item", func(t *testing.T) {
		got := g.Suggest("pack bags, print tickets and call the hotel", now)
		assert.Equal(t, []string{"pack bags", "print tickets", "call the hotel"}, got.subtasks)
	})

	t.Run("keyword rule supplies stock steps and a category", func(t *testing.T) {
		got := g.Suggest("buy groceries for dinner", now)
		assert.Contains(t, got.subtasks, "Make a shopping list")
		assert.Equal(t, "Shopping", got.category)
		assert.Nil(t, got.priority)
	})

	t.Run("urgency words raise priority", func(t *testing.T) {
		got := g.Suggest("fix the leaking pipe asap", now)
		require.NotNil(t, got.priority)
		assert.True(t, *got.priority)
	})

	t.Run("date phrases pick the deadline day", func(t *testing.T) {
		got := g.Suggest("water the plants today", now)
		require.NotNil(t, got.deadline)
		assert.Equal(t, now.Day(), got.deadline.Day())
		assert.Equal(t, 18, got.deadline.Hour())

		got = g.Suggest("water the plants next week", now)
		require.NotNil(t, got.deadline)
		assert.Equal(t, now.AddDate(0, 0, 7).Day(), got.deadline.Day())
	})

	t.Run("plain titles get the generic fallback and tomorrow evening", func(t *testing.T) {
		got := g.Suggest("figure things out", now)
		assert.Equal(t, []string{"Break the task into smaller steps", "Set aside focused time"}, got.subtasks)
		require.NotNil(t, got.deadline)
		assert.Equal(t, now.AddDate(0, 0, 1).Day(), got.deadline.Day())
	})

	t.Run("output is deterministic", func(t *testing.T) {
		a := g.Suggest("plan the project kickoff meeting", now)
		b := g.Suggest("plan the project kickoff meeting", now)
		assert.Equal(t, a, b)
	})
}
