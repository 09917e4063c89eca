package api

import (
	"context"
	"net/http"
)

// Register creates an account and returns the initial token pair.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	var resp RegisterResponse
	if err := c.do(ctx, http.MethodPost, "user/register/", nil, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	var resp LoginResponse
	if err := c.do(ctx, http.MethodPost, "user/login/", nil, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshTokens exchanges a refresh credential for a new token pair.
func (c *Client) RefreshTokens(ctx context.Context, req RefreshRequest) (*RefreshResponse, error) {
	var resp RefreshResponse
	if err := c.do(ctx, http.MethodPost, "token/refresh/", nil, "", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangePassword changes the account password.
func (c *Client) ChangePassword(ctx context.Context, access string, req ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPatch, "user/password/", nil, access, req, nil)
}
