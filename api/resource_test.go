package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResourceListHitsAdminEndpointWithParams(t *testing.T) {
	var path string
	var query url.Values
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Page[ContentItem]{
			Items:      []ContentItem{{ID: 1, Title: "One"}},
			Total:      31,
			TotalPages: 3,
		})
	}), staticTokens("tok"))

	res := NewResource[ContentItem](c, "/api/articles")
	page, err := res.List(context.Background(), ListParams{
		Page:    2,
		PerPage: 15,
		Search:  "boots",
		Status:  "draft",
	})

	assert.NoError(t, err)
	assert.Equal(t, "/api/articles/admin/all", path)
	assert.Equal(t, "2", query.Get("page"))
	assert.Equal(t, "15", query.Get("per_page"))
	assert.Equal(t, "boots", query.Get("search"))
	assert.Equal(t, "draft", query.Get("status"))
	assert.Equal(t, 31, page.Total)
	assert.Len(t, page.Items, 1)
}

func TestResourceListOmitsZeroParams(t *testing.T) {
	var query url.Values
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Page[ContentItem]{TotalPages: 1})
	}), nil)

	res := NewResource[ContentItem](c, "/api/articles")
	_, err := res.List(context.Background(), ListParams{Page: 1, PerPage: 15})

	assert.NoError(t, err)
	assert.False(t, query.Has("search"), "Empty search is omitted, not sent blank")
	assert.False(t, query.Has("status"))
}

func TestResourceCRUDPaths(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(ContentItem{ID: 9})
	}), staticTokens("tok"))

	res := NewResource[ContentItem](c, "/api/publications")
	ctx := context.Background()

	_, err := res.Get(ctx, 9)
	assert.NoError(t, err)
	_, err = res.Create(ctx, ContentPayload{Title: "New"})
	assert.NoError(t, err)
	_, err = res.Update(ctx, 9, ContentPayload{Title: "Edited"})
	assert.NoError(t, err)
	assert.NoError(t, res.Delete(ctx, 9))

	assert.Equal(t, []call{
		{http.MethodGet, "/api/publications/admin/9"},
		{http.MethodPost, "/api/publications"},
		{http.MethodPut, "/api/publications/9"},
		{http.MethodDelete, "/api/publications/9"},
	}, calls)
}

func TestCategoriesListTypeFilter(t *testing.T) {
	var query url.Values
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]Category{{ID: 1, Name: "Culture", ContentType: "article"}})
	}), nil)

	cats := NewCategories(c)

	listed, err := cats.List(context.Background(), "article")
	assert.NoError(t, err)
	assert.Equal(t, "article", query.Get("type"))
	assert.Len(t, listed, 1)

	_, err = cats.List(context.Background(), "")
	assert.NoError(t, err)
	assert.False(t, query.Has("type"), "No filter means no type parameter")
}

func TestCategoriesCRUDPaths(t *testing.T) {
	type call struct {
		method string
		path   string
	}
	var calls []call
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, call{r.Method, r.URL.Path})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Category{ID: 5})
	}), staticTokens("tok"))

	cats := NewCategories(c)
	ctx := context.Background()

	_, err := cats.Create(ctx, CategoryPayload{Name: "Culture", ContentType: "article"})
	assert.NoError(t, err)
	_, err = cats.Update(ctx, 5, CategoryPayload{Name: "Kultur"})
	assert.NoError(t, err)
	assert.NoError(t, cats.Delete(ctx, 5))

	assert.Equal(t, []call{
		{http.MethodPost, "/api/categories"},
		{http.MethodPut, "/api/categories/5"},
		{http.MethodDelete, "/api/categories/5"},
	}, calls)
}
