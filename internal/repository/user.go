package repository

import (
	"context"
	"sync"

	"github.com/taskbench/taskbench-go/internal/auth"
	"github.com/taskbench/taskbench-go/internal/domain"
)

// User exposes the current account, assembled from the stored email and the
// subscription status.
type User struct {
	gateway      *auth.Gateway
	subscription *Subscription

	mu   sync.Mutex
	user *domain.User
}

// NewUser creates the user repository.
func NewUser(gateway *auth.Gateway, subscription *Subscription) *User {
	return &User{gateway: gateway, subscription: subscription}
}

// Preload assembles and caches the current user.
func (r *User) Preload(ctx context.Context) error {
	email, err := r.gateway.Email(ctx)
	if err != nil {
		return err
	}
	if email == "" {
		return domain.ErrUnauthenticated
	}

	status, err := r.subscription.Status(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.user = &domain.User{ID: status.UserID, Email: email, Status: status}
	r.mu.Unlock()
	return nil
}

// Current returns the preloaded user, loading it on a cold cache.
func (r *User) Current(ctx context.Context) (domain.User, error) {
	r.mu.Lock()
	user := r.user
	r.mu.Unlock()
	if user != nil {
		return *user, nil
	}

	if err := r.Preload(ctx); err != nil {
		return domain.User{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.user, nil
}
