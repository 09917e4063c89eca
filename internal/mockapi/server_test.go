package mockapi

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbench/taskbench-go/internal/api"
	"github.com/taskbench/taskbench-go/internal/auth"
	"github.com/taskbench/taskbench-go/internal/domain"
	"github.com/taskbench/taskbench-go/internal/repository"
	"github.com/taskbench/taskbench-go/internal/security"
	"github.com/taskbench/taskbench-go/internal/store"
)

type fixture struct {
	srv     *Server
	jwt     *security.JWTManager
	client  *api.Client
	mem     *store.Memory
	gateway *auth.Gateway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	jwtManager := security.NewJWTManager("test-secret", 15*time.Minute, 24*time.Hour)
	srv := NewTestServer(jwtManager)
	require.NoError(t, srv.Store().Seed())

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)

	client := api.NewClient(ts.URL, 5*time.Second)
	mem := store.NewMemory()
	return &fixture{
		srv:     srv,
		jwt:     jwtManager,
		client:  client,
		mem:     mem,
		gateway: auth.NewGateway(client, mem),
	}
}

func (f *fixture) login(t *testing.T) {
	t.Helper()
	require.NoError(t, f.gateway.Login(context.Background(), "normal@example.com", "qwertyui"))
}

func TestEndToEnd_Auth(t *testing.T) {
	ctx := context.Background()

	t.Run("seeded account logs in", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)

		email, err := f.gateway.Email(ctx)
		require.NoError(t, err)
		assert.Equal(t, "normal@example.com", email)
	})

	t.Run("wrong password maps to invalid credentials", func(t *testing.T) {
		f := newFixture(t)
		err := f.gateway.Login(ctx, "normal@example.com", "wrongpass")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("duplicate sign-up maps to user exists", func(t *testing.T) {
		f := newFixture(t)
		err := f.gateway.SignUp(ctx, "normal@example.com", "qwertyui")
		assert.ErrorIs(t, err, domain.ErrUserExists)
	})

	t.Run("fresh sign-up yields a working session", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.gateway.SignUp(ctx, "new@example.com", "longpassword"))

		tasks := repository.NewTasks(f.gateway, f.client)
		got, err := tasks.List(ctx, domain.CategoryFilter{}, domain.SortByPriority, nil)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("password change takes effect", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)
		require.NoError(t, f.gateway.ChangePassword(ctx, "qwertyui", "newpassword"))

		f.gateway.Logout(ctx)
		assert.ErrorIs(t, f.gateway.Login(ctx, "normal@example.com", "qwertyui"), domain.ErrInvalidCredentials)
		assert.NoError(t, f.gateway.Login(ctx, "normal@example.com", "newpassword"))
	})
}

// TestEndToEnd_RefreshRetry drives the full expired-credential path: a stale
// access token meets a real 401, the gateway refreshes against the real
// endpoint, and the original call succeeds on the retry.
func TestEndToEnd_RefreshRetry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, ok := f.srv.Store().Authenticate("normal@example.com", "qwertyui")
	require.True(t, ok)

	expired, err := f.jwt.GenerateExpiredAccessToken(user.ID, user.Email)
	require.NoError(t, err)
	refresh, err := f.jwt.GenerateRefreshToken(user.ID)
	require.NoError(t, err)
	require.NoError(t, f.mem.Set(ctx, auth.KeyAccessToken, expired))
	require.NoError(t, f.mem.Set(ctx, auth.KeyRefreshToken, refresh))

	tasks := repository.NewTasks(f.gateway, f.client)
	saved, err := tasks.Save(ctx, domain.Task{Content: "survives the token expiry"})
	require.NoError(t, err)
	require.NotNil(t, saved.ID)

	// The gateway must now hold a fresh pair, not the expired one.
	pair, err := f.gateway.Tokens(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, expired, pair.Access)
	assert.NotEqual(t, refresh, pair.Refresh)
}

func TestEndToEnd_RefreshRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	user, ok := f.srv.Store().Authenticate("normal@example.com", "qwertyui")
	require.True(t, ok)

	expired, err := f.jwt.GenerateExpiredAccessToken(user.ID, user.Email)
	require.NoError(t, err)
	require.NoError(t, f.mem.Set(ctx, auth.KeyAccessToken, expired))
	require.NoError(t, f.mem.Set(ctx, auth.KeyRefreshToken, "garbage-refresh"))

	tasks := repository.NewTasks(f.gateway, f.client)
	_, err = tasks.List(ctx, domain.CategoryFilter{}, domain.SortByPriority, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestEndToEnd_Tasks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t)
	tasks := repository.NewTasks(f.gateway, f.client)

	deadline := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
	created, err := tasks.Save(ctx, domain.Task{
		Content:      "plan the trip",
		Deadline:     &deadline,
		HighPriority: true,
		Subtasks:     []domain.Subtask{{Content: "pack bags"}},
	})
	require.NoError(t, err)
	require.NotNil(t, created.ID)
	assert.True(t, created.HighPriority)
	require.NotNil(t, created.Deadline)
	assert.True(t, created.Deadline.Equal(deadline))
	require.Len(t, created.Subtasks, 1)

	t.Run("edit round-trips", func(t *testing.T) {
		created.Content = "plan the trip to Oslo"
		created.Done = true
		updated, err := tasks.Save(ctx, created)
		require.NoError(t, err)
		assert.Equal(t, "plan the trip to Oslo", updated.Content)
		assert.True(t, updated.Done)
	})

	t.Run("subtask lifecycle", func(t *testing.T) {
		sub, err := tasks.AddSubtask(ctx, created, domain.Subtask{Content: "book hotel"})
		require.NoError(t, err)
		require.NotNil(t, sub.ID)

		sub.Done = true
		sub, err = tasks.UpdateSubtask(ctx, sub)
		require.NoError(t, err)
		assert.True(t, sub.Done)

		require.NoError(t, tasks.DeleteSubtask(ctx, sub))
	})

	t.Run("listing respects sort and date filters", func(t *testing.T) {
		later := deadline.AddDate(0, 0, 3)
		_, err := tasks.Save(ctx, domain.Task{Content: "later errand", Deadline: &later})
		require.NoError(t, err)

		byDeadline, err := tasks.List(ctx, domain.CategoryFilter{}, domain.SortByDeadline, nil)
		require.NoError(t, err)
		require.Len(t, byDeadline, 2)
		assert.Equal(t, "plan the trip to Oslo", byDeadline[0].Content)

		onDay, err := tasks.List(ctx, domain.CategoryFilter{}, domain.SortByDeadline, &later)
		require.NoError(t, err)
		require.Len(t, onDay, 1)
		assert.Equal(t, "later errand", onDay[0].Content)
	})

	t.Run("delete removes the task", func(t *testing.T) {
		require.NoError(t, tasks.Delete(ctx, created))
		left, err := tasks.List(ctx, domain.CategoryFilter{}, domain.SortByPriority, nil)
		require.NoError(t, err)
		require.Len(t, left, 1)
	})
}

func TestEndToEnd_Categories(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t)
	categories := repository.NewCategories(f.gateway, f.client)
	tasks := repository.NewTasks(f.gateway, f.client)

	work, err := categories.Save(ctx, domain.Category{Name: "Work"})
	require.NoError(t, err)
	require.NotNil(t, work.ID)
	home, err := categories.Save(ctx, domain.Category{Name: "Home"})
	require.NoError(t, err)

	require.NoError(t, categories.Preload(ctx))
	assert.Len(t, categories.All(""), 2)
	assert.Len(t, categories.All("wo"), 1)

	t.Run("category filter narrows the listing", func(t *testing.T) {
		_, err := tasks.Save(ctx, domain.Task{Content: "write the report", CategoryID: work.ID})
		require.NoError(t, err)
		_, err = tasks.Save(ctx, domain.Task{Content: "mow the lawn", CategoryID: home.ID})
		require.NoError(t, err)

		got, err := tasks.List(ctx, domain.CategoryFilter{Enabled: true, Category: &work}, domain.SortByPriority, nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "write the report", got[0].Content)
	})

	t.Run("rename and delete", func(t *testing.T) {
		home.Name = "Household"
		renamed, err := categories.Save(ctx, home)
		require.NoError(t, err)
		assert.Equal(t, "Household", renamed.Name)

		require.NoError(t, categories.Delete(ctx, home))
		for _, cat := range categories.All("") {
			assert.NotEqual(t, "Household", cat.Name)
		}
	})
}

func TestEndToEnd_Statistics(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t)
	tasks := repository.NewTasks(f.gateway, f.client)
	statistics := repository.NewStatistics(f.gateway, f.client)

	task, err := tasks.Save(ctx, domain.Task{Content: "quick win"})
	require.NoError(t, err)
	task.Done = true
	_, err = tasks.Save(ctx, task)
	require.NoError(t, err)

	stats, err := statistics.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.DoneToday)
	assert.GreaterOrEqual(t, stats.DoneAllTimeHigh, 1)

	today := int(time.Now().Weekday()+6) % 7
	assert.Equal(t, 1.0, stats.Weekly[today])
}

func TestEndToEnd_Suggestions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.login(t)
	suggestions := repository.NewSuggestions(f.gateway, f.client)
	categories := repository.NewCategories(f.gateway, f.client)

	t.Run("keyword prompt gets themed subtasks", func(t *testing.T) {
		got, err := suggestions.Get(ctx, domain.SuggestionQuery{Prompt: "buy groceries for the week"})
		require.NoError(t, err)
		assert.Contains(t, got.Subtasks, "Make a shopping list")
		require.NotNil(t, got.Deadline)
	})

	t.Run("category only suggested when the user has it", func(t *testing.T) {
		before, err := suggestions.Get(ctx, domain.SuggestionQuery{Prompt: "prepare the quarterly report"})
		require.NoError(t, err)
		assert.Nil(t, before.Category)

		_, err = categories.Save(ctx, domain.Category{Name: "Work"})
		require.NoError(t, err)

		after, err := suggestions.Get(ctx, domain.SuggestionQuery{Prompt: "prepare the quarterly report"})
		require.NoError(t, err)
		require.NotNil(t, after.Category)
		assert.Equal(t, "Work", after.Category.Name)
		require.NotNil(t, after.HighPriority)
		assert.True(t, *after.HighPriority)
	})
}

func TestEndToEnd_Subscription(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	subscription := repository.NewSubscription(f.gateway, f.client)

	t.Run("seeded premium account reports premium", func(t *testing.T) {
		require.NoError(t, f.gateway.Login(ctx, "premium@example.com", "11111111"))
		status, err := subscription.Update(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPremium, status.Kind)
		assert.True(t, status.Active)
	})

	t.Run("free account can activate and cancel", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)
		subscription := repository.NewSubscription(f.gateway, f.client)

		status, err := subscription.Update(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnpaid, status.Kind)

		result, err := subscription.Activate(ctx)
		require.NoError(t, err)
		assert.Contains(t, result.PaymentURL, "https://payment.example.com/confirm/")

		status, err = subscription.Update(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPremium, status.Kind)

		require.NoError(t, subscription.Deactivate(ctx))
		status, err = subscription.Update(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusUnpaid, status.Kind)
	})
}
