package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ListParams carries the filter set of an admin list request. Zero values
// are omitted from the query string.
type ListParams struct {
	Page    int
	PerPage int
	Search  string
	Status  string
}

func (p ListParams) values() url.Values {
	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(p.PerPage))
	}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	return q
}

// Resource is one content type's endpoint set, parameterized by its base
// path. Articles, publications and boutique items are all instances of this
// one type; nothing else distinguishes their transport.
type Resource[T any] struct {
	c    *Client
	base string
}

// NewResource binds a content resource to its base path, e.g. /api/articles.
func NewResource[T any](c *Client, base string) *Resource[T] {
	return &Resource[T]{c: c, base: base}
}

// List fetches one admin page of the resource.
func (r *Resource[T]) List(ctx context.Context, p ListParams) (*Page[T], error) {
	var page Page[T]
	if err := r.c.get(ctx, r.base+"/admin/all", p.values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get fetches a single entity by id through the admin endpoint.
func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	var entity T
	if err := r.c.get(ctx, fmt.Sprintf("%s/admin/%d", r.base, id), nil, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// Create posts a normalized payload and returns the stored entity.
func (r *Resource[T]) Create(ctx context.Context, payload any) (*T, error) {
	var entity T
	if err := r.c.postJSON(ctx, r.base, payload, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// Update replaces an entity and returns the stored result.
func (r *Resource[T]) Update(ctx context.Context, id int64, payload any) (*T, error) {
	var entity T
	if err := r.c.putJSON(ctx, fmt.Sprintf("%s/%d", r.base, id), payload, &entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// Delete removes an entity.
func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.c.delete(ctx, fmt.Sprintf("%s/%d", r.base, id))
}
