// Package controller holds the client-side orchestration for the admin
// console: the generic paged-list controller with its generation fence, the
// form controller with draft normalization, the category partition and the
// dashboard aggregation. Nothing in here touches HTTP directly; everything
// goes through the api package.
package controller

import (
	"context"
	"errors"
	"sync"

	"cmsadmin/api"
	"cmsadmin/constants"
	"cmsadmin/logger"
)

// Lister fetches one admin page of a resource.
type Lister[T any] interface {
	List(ctx context.Context, p api.ListParams) (*api.Page[T], error)
}

// ListDeleter is the slice of api.Resource the list controller needs.
type ListDeleter[T any] interface {
	Lister[T]
	Delete(ctx context.Context, id int64) error
}

// ListQuery is the user's current list intent.
type ListQuery struct {
	Page    int
	PerPage int
	Search  string
	Status  string
}

// QueryPatch is a partial update to a ListQuery; nil fields are left alone.
type QueryPatch struct {
	Page    *int
	PerPage *int
	Search  *string
	Status  *string
}

// StagedDelete is a reversible, network-free intent to delete one entity.
type StagedDelete struct {
	ID    int64
	Label string
}

// ListView is a snapshot of the visible list state for rendering.
type ListView[T any] struct {
	Items      []T
	Total      int
	TotalPages int
	Query      ListQuery

	// Err is the retryable load or delete error, nil when the last
	// operation succeeded. A failed load never blanks Items.
	Err error

	Staged *StagedDelete
}

// HasPrev reports whether a previous page exists.
func (v ListView[T]) HasPrev() bool { return v.Query.Page > 1 }

// HasNext reports whether a next page exists.
func (v ListView[T]) HasNext() bool { return v.Query.Page < v.TotalPages }

// ShowPaginator reports whether the paginator is rendered at all.
func (v ListView[T]) ShowPaginator() bool { return v.TotalPages > 1 }

// ResourceController keeps one content type's visible list consistent with
// the latest user intent despite network latency. The generation counter is
// the sole ordering mechanism: a response is applied only when the query it
// was issued for is still the current one; superseded responses are
// discarded silently. Discarding is logical only; no request is cancelled.
type ResourceController[T any] struct {
	res ListDeleter[T]

	mu         sync.Mutex
	query      ListQuery
	generation uint64

	items      []T
	total      int
	totalPages int
	loadErr    error

	staged    *StagedDelete
	deleteErr error
}

// NewResourceController creates a controller with the default first-page
// query. No request is issued until Reload or SetQuery.
func NewResourceController[T any](res ListDeleter[T]) *ResourceController[T] {
	return &ResourceController[T]{
		res: res,
		query: ListQuery{
			Page:    1,
			PerPage: constants.DefaultPerPage,
		},
		totalPages: 1,
	}
}

// Query returns the current list intent.
func (c *ResourceController[T]) Query() ListQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// Snapshot returns the state a view should render.
func (c *ResourceController[T]) Snapshot() ListView[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	view := ListView[T]{
		Items:      c.items,
		Total:      c.total,
		TotalPages: c.totalPages,
		Query:      c.query,
		Err:        c.loadErr,
	}
	if view.Err == nil {
		view.Err = c.deleteErr
	}
	if c.staged != nil {
		staged := *c.staged
		view.Staged = &staged
	}
	return view
}

// SetQuery merges the patch into the current query and reloads. Changing
// the search term or the status filter resets the page to 1. Every change
// advances the generation, so an in-flight reload for the previous query
// can no longer apply its result.
func (c *ResourceController[T]) SetQuery(ctx context.Context, patch QueryPatch) {
	c.mu.Lock()
	if patch.Search != nil && *patch.Search != c.query.Search {
		c.query.Search = *patch.Search
		c.query.Page = 1
	}
	if patch.Status != nil && *patch.Status != c.query.Status {
		c.query.Status = *patch.Status
		c.query.Page = 1
	}
	if patch.PerPage != nil && *patch.PerPage > 0 {
		c.query.PerPage = *patch.PerPage
	}
	if patch.Page != nil && *patch.Page > 0 {
		c.query.Page = *patch.Page
	}
	c.generation++
	gen := c.generation
	query := c.query
	c.mu.Unlock()

	c.load(ctx, gen, query)
}

// Reload re-issues the current query. Safe to call repeatedly.
func (c *ResourceController[T]) Reload(ctx context.Context) {
	c.mu.Lock()
	gen := c.generation
	query := c.query
	c.mu.Unlock()

	c.load(ctx, gen, query)
}

// load fetches one page and applies it only when gen is still current.
func (c *ResourceController[T]) load(ctx context.Context, gen uint64, query ListQuery) {
	page, err := c.res.List(ctx, api.ListParams{
		Page:    query.Page,
		PerPage: query.PerPage,
		Search:  query.Search,
		Status:  query.Status,
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		// Superseded while in flight. Expected, not a failure.
		logger.Get().Debug().
			Uint64("issued", gen).
			Uint64("current", c.generation).
			Msg("Discarding stale list response")
		return
	}

	if err != nil {
		// Keep the previous page visible; the error is retryable.
		c.loadErr = err
		return
	}

	c.items = page.Items
	c.total = page.Total
	c.totalPages = page.TotalPages
	if c.totalPages < 1 {
		c.totalPages = 1
	}
	c.loadErr = nil
}

// StageDelete records a pending deletion candidate. No network call is made
// until ConfirmDelete.
func (c *ResourceController[T]) StageDelete(id int64, label string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staged = &StagedDelete{ID: id, Label: label}
	c.deleteErr = nil
}

// CancelDelete drops the staged candidate. Idempotent, never touches the
// network.
func (c *ResourceController[T]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.staged = nil
	c.deleteErr = nil
}

// ErrNothingStaged is returned by ConfirmDelete without a prior StageDelete.
var ErrNothingStaged = errors.New("no deletion staged")

// ConfirmDelete issues the delete call for the staged candidate. On success
// the candidate is cleared and the list reloaded under the usual generation
// semantics; on failure the candidate stays staged so the operator can retry
// without re-staging.
func (c *ResourceController[T]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.staged == nil {
		c.mu.Unlock()
		return ErrNothingStaged
	}
	id := c.staged.ID
	c.mu.Unlock()

	if err := c.res.Delete(ctx, id); err != nil {
		c.mu.Lock()
		c.deleteErr = err
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.staged = nil
	c.deleteErr = nil
	c.mu.Unlock()

	c.Reload(ctx)
	return nil
}
