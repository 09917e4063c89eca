package mockapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/taskbench/taskbench-go/internal/config"
	"github.com/taskbench/taskbench-go/internal/security"
)

// Server is the mock Taskbench API. It mirrors the production backend's
// routes and wire format on top of an in-memory store, so the client SDK and
// its tests can run against something real without a network.
type Server struct {
	store      *Store
	jwtManager *security.JWTManager
	suggester  *Suggester
	limiter    *RateLimiter
}

// NewServer assembles a mock server from config. Redis is optional: with no
// address configured the rate limiter is simply absent.
func NewServer(cfg config.MockConfig) *Server {
	srv := &Server{
		store:      NewStore(),
		jwtManager: security.NewJWTManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		suggester:  &Suggester{},
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, rate limiting disabled")
		} else {
			srv.limiter = NewRateLimiter(rdb, cfg.RateLimit, cfg.RateBurst)
		}
	}
	return srv
}

// NewTestServer assembles a mock server with fixed token TTLs for tests.
// No redis, no rate limiting.
func NewTestServer(jwtManager *security.JWTManager) *Server {
	return &Server{
		store:      NewStore(),
		jwtManager: jwtManager,
		suggester:  &Suggester{},
	}
}

// Store exposes the fixture store so tests and the dev server can seed it.
func (s *Server) Store() *Store {
	return s.store
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	auth := &authMiddleware{jwtManager: s.jwtManager}

	r.Post("/user/register/", s.Register)
	r.Post("/user/login/", s.Login)
	r.Post("/token/refresh/", s.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(auth.authenticate)
		if s.limiter != nil {
			r.Use(s.limiter.limit)
		}

		r.Patch("/user/password/", s.ChangePassword)

		r.Get("/tasks/", s.ListTasks)
		r.Post("/tasks/", s.CreateTask)
		r.Patch("/tasks/{taskID}/", s.EditTask)
		r.Delete("/tasks/{taskID}/", s.DeleteTask)

		r.Post("/subtasks/", s.AddSubtask)
		r.Patch("/subtasks/{subtaskID}/", s.EditSubtask)
		r.Delete("/subtasks/{subtaskID}/", s.DeleteSubtask)

		r.Get("/categories/", s.ListCategories)
		r.Post("/categories/", s.CreateCategory)
		r.Patch("/categories/{categoryID}/", s.UpdateCategory)
		r.Delete("/categories/{categoryID}/", s.DeleteCategory)

		r.Get("/statistics", s.GetStatistics)

		r.Post("/ai/suggestions/", s.GetSuggestions)

		r.Get("/subscription/status/", s.SubscriptionStatus)
		r.Post("/subscription/manage/", s.ActivateSubscription)
		r.Delete("/subscription/manage/", s.DeactivateSubscription)
	})

	return r
}
