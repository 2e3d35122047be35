package api

import (
	"context"
	"fmt"
	"net/url"

	"cmsadmin/constants"
)

// Categories is the category endpoint set. Unlike the content resources the
// collection is small and unpaginated.
type Categories struct {
	c *Client
}

// NewCategories binds the category endpoints.
func NewCategories(c *Client) *Categories {
	return &Categories{c: c}
}

// List returns all categories, optionally filtered by content type.
func (cs *Categories) List(ctx context.Context, contentType string) ([]Category, error) {
	var q url.Values
	if contentType != "" {
		q = url.Values{"type": []string{contentType}}
	}
	var cats []Category
	if err := cs.c.get(ctx, constants.CategoriesPath, q, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// Create adds a category.
func (cs *Categories) Create(ctx context.Context, payload CategoryPayload) (*Category, error) {
	var cat Category
	if err := cs.c.postJSON(ctx, constants.CategoriesPath, payload, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Update renames a category.
func (cs *Categories) Update(ctx context.Context, id int64, payload CategoryPayload) (*Category, error) {
	var cat Category
	if err := cs.c.putJSON(ctx, fmt.Sprintf("%s/%d", constants.CategoriesPath, id), payload, &cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Delete removes a category. Content referencing it keeps a dangling
// reference and renders as uncategorized; the backend owns that rule.
func (cs *Categories) Delete(ctx context.Context, id int64) error {
	return cs.c.delete(ctx, fmt.Sprintf("%s/%d", constants.CategoriesPath, id))
}
