package api

import (
	"context"
	"net/http"
	"time"
)

// GetStatistics fetches the productivity dashboard numbers.
// The path has no trailing slash; the server routes it that way.
func (c *Client) GetStatistics(ctx context.Context, access string) (*StatisticsResponse, error) {
	var resp StatisticsResponse
	if err := c.do(ctx, http.MethodGet, "statistics", nil, access, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetSuggestions asks the AI endpoint for subtask/deadline/priority/category
// proposals for the task being composed.
func (c *Client) GetSuggestions(ctx context.Context, access string, req SuggestionsRequest) (*SuggestionsResponse, error) {
	if req.Timestamp == "" {
		req.Timestamp = formatTime(time.Now())
	}
	var resp SuggestionsResponse
	if err := c.do(ctx, http.MethodPost, "ai/suggestions/", nil, access, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SubscriptionStatus fetches the paid-tier status.
func (c *Client) SubscriptionStatus(ctx context.Context, access string) (*SubscriptionStatusResponse, error) {
	var resp SubscriptionStatusResponse
	if err := c.do(ctx, http.MethodGet, "subscription/status/", nil, access, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ActivateSubscription starts a subscription and returns payment details.
func (c *Client) ActivateSubscription(ctx context.Context, access string) (*SubscriptionActivateResponse, error) {
	var resp SubscriptionActivateResponse
	if err := c.do(ctx, http.MethodPost, "subscription/manage/", nil, access, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeactivateSubscription cancels the subscription.
func (c *Client) DeactivateSubscription(ctx context.Context, access string) error {
	return c.do(ctx, http.MethodDelete, "subscription/manage/", nil, access, nil, nil)
}
