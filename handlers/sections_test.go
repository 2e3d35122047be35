package handlers

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"cmsadmin/api"
)

func TestBoutiqueBindParsesCheckboxes(t *testing.T) {
	section := BoutiqueSection(nil)

	values := url.Values{}
	values.Set("name", "Lamp")
	values.Set("price", "19.90")
	values.Set("in_stock", "on")
	// featured absent: an unchecked checkbox sends nothing

	req := httptest.NewRequest("POST", "/boutique/new", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.NoError(t, req.ParseForm())

	draft := section.Bind(req)
	assert.Equal(t, "Lamp", draft.Name)
	assert.Equal(t, "19.90", draft.Price)
	assert.True(t, draft.InStock)
	assert.False(t, draft.Featured, "An absent checkbox is strictly false")
}

func TestContentBindCarriesAllFields(t *testing.T) {
	section := ArticleSection(nil)

	values := url.Values{}
	values.Set("title", "Hello")
	values.Set("excerpt", "Short")
	values.Set("content", "Body")
	values.Set("status", "published")
	values.Set("category_id", "4")
	values.Set("image_url", "/uploads/a.png")

	req := httptest.NewRequest("POST", "/articles/new", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	assert.NoError(t, req.ParseForm())

	draft := section.Bind(req)
	assert.Equal(t, "Hello", draft.Title)
	assert.Equal(t, "Short", draft.Excerpt)
	assert.Equal(t, "Body", draft.Content)
	assert.Equal(t, "published", draft.Status)
	assert.Equal(t, "4", draft.CategoryID)
	assert.Equal(t, "/uploads/a.png", draft.ImageURL)
}

func TestContentRowProjection(t *testing.T) {
	section := ArticleSection(nil)
	published := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	row := section.Row(api.ContentItem{
		ID:          7,
		Title:       "Hello",
		Status:      "published",
		Category:    &api.Category{Name: "Culture"},
		PublishedAt: &published,
	})

	assert.Equal(t, int64(7), row.ID)
	assert.Equal(t, "Culture", row.CategoryName)
	assert.Equal(t, "14 Mar 2026", row.Date)
	assert.False(t, row.HasStock, "Content rows carry no stock column")
}

func TestContentRowWithoutDates(t *testing.T) {
	section := PublicationSection(nil)

	row := section.Row(api.ContentItem{ID: 1, Title: "Undated", Status: "draft"})
	assert.Equal(t, "—", row.Date)
	assert.Empty(t, row.CategoryName)
}

func TestBoutiqueRowProjection(t *testing.T) {
	section := BoutiqueSection(nil)

	row := section.Row(api.BoutiqueItem{
		ID:      3,
		Name:    "Lamp",
		Price:   decimal.RequireFromString("19.90"),
		Status:  "published",
		InStock: false,
	})

	assert.Equal(t, "Lamp", row.Title)
	assert.Equal(t, "19.9", row.Price)
	assert.True(t, row.HasStock)
	assert.False(t, row.InStock)
}

func TestCategoryFieldOptions(t *testing.T) {
	field := categoryField("2", []api.Category{
		{ID: 1, Name: "Culture"},
		{ID: 2, Name: "Sport"},
	})

	if assert.Len(t, field.Options, 3, "No-category plus one option per category") {
		assert.Equal(t, "", field.Options[0].Value)
		assert.False(t, field.Options[0].Selected)
		assert.True(t, field.Options[2].Selected, "The current selection is marked")
	}
}

func TestStatusFieldDefaultsToDraft(t *testing.T) {
	field := statusField("")
	assert.True(t, field.Options[0].Selected, "Anything but published selects draft")
	assert.False(t, field.Options[1].Selected)

	field = statusField("published")
	assert.True(t, field.Options[1].Selected)
}

func TestKnownContentType(t *testing.T) {
	assert.True(t, knownContentType("article"))
	assert.True(t, knownContentType("publication"))
	assert.True(t, knownContentType("boutique"))
	assert.False(t, knownContentType(""))
	assert.False(t, knownContentType("video"))
}
