package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/taskbench/taskbench-go/internal/api"
	"github.com/taskbench/taskbench-go/internal/auth"
	"github.com/taskbench/taskbench-go/internal/domain"
)

// SubscriptionAPI is the slice of the API client the subscription manager uses.
type SubscriptionAPI interface {
	SubscriptionStatus(ctx context.Context, access string) (*api.SubscriptionStatusResponse, error)
	ActivateSubscription(ctx context.Context, access string) (*api.SubscriptionActivateResponse, error)
	DeactivateSubscription(ctx context.Context, access string) error
}

// ActivateResult carries the payment confirmation URL for a new subscription.
type ActivateResult struct {
	PaymentURL string
}

// Subscription manages the paid tier: cached status plus activate/deactivate.
type Subscription struct {
	gateway *auth.Gateway
	client  SubscriptionAPI

	mu     sync.Mutex
	status *domain.UserStatus
}

// NewSubscription creates the subscription manager.
func NewSubscription(gateway *auth.Gateway, client SubscriptionAPI) *Subscription {
	return &Subscription{gateway: gateway, client: client}
}

// Status returns the cached subscription status, fetching it when cold.
func (r *Subscription) Status(ctx context.Context) (domain.UserStatus, error) {
	r.mu.Lock()
	status := r.status
	r.mu.Unlock()
	if status != nil {
		return *status, nil
	}
	return r.Update(ctx)
}

// Update refetches the subscription status and replaces the cache.
func (r *Subscription) Update(ctx context.Context) (domain.UserStatus, error) {
	status, err := auth.Do(ctx, r.gateway, func(ctx context.Context, access string) (domain.UserStatus, error) {
		resp, err := r.client.SubscriptionStatus(ctx, access)
		if err != nil {
			return domain.UserStatus{}, err
		}
		return statusFromResponse(resp)
	})
	if err != nil {
		return domain.UserStatus{}, err
	}

	r.mu.Lock()
	r.status = &status
	r.mu.Unlock()
	return status, nil
}

// Activate starts a subscription and returns where to complete payment.
func (r *Subscription) Activate(ctx context.Context) (ActivateResult, error) {
	return auth.Do(ctx, r.gateway, func(ctx context.Context, access string) (ActivateResult, error) {
		resp, err := r.client.ActivateSubscription(ctx, access)
		if err != nil {
			return ActivateResult{}, err
		}
		var result ActivateResult
		if resp.ConfirmationURL != nil {
			result.PaymentURL = *resp.ConfirmationURL
		}
		log.Debug().Str("payment_url", result.PaymentURL).Msg("subscription activated")
		return result, nil
	})
}

// Deactivate cancels the subscription and drops the cached status.
func (r *Subscription) Deactivate(ctx context.Context) error {
	err := r.gateway.WithAuth(ctx, func(ctx context.Context, access string) error {
		return r.client.DeactivateSubscription(ctx, access)
	})
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.status = nil
	r.mu.Unlock()
	return nil
}

// statusFromResponse decodes the wire status into the tagged union. A present
// subscription id means premium; everything else is unpaid.
func statusFromResponse(resp *api.SubscriptionStatusResponse) (domain.UserStatus, error) {
	if resp.SubscriptionID == nil {
		return domain.UserStatus{Kind: domain.StatusUnpaid, UserID: resp.UserID}, nil
	}

	status := domain.UserStatus{
		Kind:           domain.StatusPremium,
		UserID:         resp.UserID,
		SubscriptionID: *resp.SubscriptionID,
	}
	if resp.IsActive != nil {
		status.Active = *resp.IsActive
	}
	if resp.NextPayment != nil && *resp.NextPayment != "" {
		next, err := time.Parse("2006-01-02T15:04:05", *resp.NextPayment)
		if err != nil {
			return domain.UserStatus{}, err
		}
		status.NextPayment = next
	}
	return status, nil
}
