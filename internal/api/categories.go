package api

import (
	"context"
	"fmt"
	"net/http"
)

// GetCategories lists the user's categories.
func (c *Client) GetCategories(ctx context.Context, access string) ([]CategoryResponse, error) {
	var resp []CategoryResponse
	if err := c.do(ctx, http.MethodGet, "categories/", nil, access, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// CreateCategory creates a category.
func (c *Client) CreateCategory(ctx context.Context, access string, req CategoryCreateRequest) (*CategoryResponse, error) {
	var resp CategoryResponse
	if err := c.do(ctx, http.MethodPost, "categories/", nil, access, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// UpdateCategory renames a category.
func (c *Client) UpdateCategory(ctx context.Context, access string, categoryID int64, req CategoryUpdateRequest) (*CategoryResponse, error) {
	var resp CategoryResponse
	path := fmt.Sprintf("categories/%d/", categoryID)
	if err := c.do(ctx, http.MethodPatch, path, nil, access, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteCategory removes a category.
func (c *Client) DeleteCategory(ctx context.Context, access string, categoryID int64) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("categories/%d/", categoryID), nil, access, nil, nil)
}
