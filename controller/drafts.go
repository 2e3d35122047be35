package controller

import (
	"strconv"
	"strings"

	"cmsadmin/api"
	"cmsadmin/constants"
)

// Drafts hold raw form input as strings; normalization happens once, on
// submit. Each content type contributes a draft shape and a FormSpec tying
// it to its endpoints.

// ContentDraft edits an article or a publication.
type ContentDraft struct {
	Title      string
	Excerpt    string
	Content    string
	ImageURL   string
	Status     string
	CategoryID string
}

// BoutiqueDraft edits a shop item.
type BoutiqueDraft struct {
	Name        string
	Description string
	Content     string
	ImageURL    string
	Price       string
	Status      string
	CategoryID  string
	InStock     bool
	Featured    bool
}

// normalizeStatus collapses anything that is not published to draft.
func normalizeStatus(raw string) string {
	if strings.TrimSpace(raw) == constants.StatusPublished {
		return constants.StatusPublished
	}
	return constants.StatusDraft
}

// ContentForm builds the form descriptor for articles and publications; the
// two types share everything but the resource they are bound to.
func ContentForm(res *api.Resource[api.ContentItem]) FormSpec[ContentDraft, api.ContentItem] {
	return FormSpec[ContentDraft, api.ContentItem]{
		Defaults: func() ContentDraft {
			return ContentDraft{Status: constants.StatusDraft}
		},
		Fetch: res.Get,
		ToDraft: func(item *api.ContentItem) ContentDraft {
			d := ContentDraft{
				Title:   item.Title,
				Excerpt: item.Excerpt,
				Content: item.Content,
				Status:  item.Status,
			}
			if item.ImageURL != nil {
				d.ImageURL = *item.ImageURL
			}
			if item.CategoryID != nil {
				d.CategoryID = strconv.FormatInt(*item.CategoryID, 10)
			}
			return d
		},
		Validate: func(d ContentDraft) map[string]string {
			errs := make(map[string]string)
			if strings.TrimSpace(d.Title) == "" {
				errs["title"] = "Title is required"
			}
			return errs
		},
		Payload: func(d ContentDraft) any {
			return api.ContentPayload{
				Title:      strings.TrimSpace(d.Title),
				Excerpt:    d.Excerpt,
				Content:    d.Content,
				ImageURL:   NormalizeImageURL(d.ImageURL),
				Status:     normalizeStatus(d.Status),
				CategoryID: NormalizeCategory(d.CategoryID),
			}
		},
		Create: res.Create,
		Update: res.Update,
	}
}

// BoutiqueForm builds the form descriptor for shop items.
func BoutiqueForm(res *api.Resource[api.BoutiqueItem]) FormSpec[BoutiqueDraft, api.BoutiqueItem] {
	return FormSpec[BoutiqueDraft, api.BoutiqueItem]{
		Defaults: func() BoutiqueDraft {
			return BoutiqueDraft{Status: constants.StatusDraft, InStock: true}
		},
		Fetch: res.Get,
		ToDraft: func(item *api.BoutiqueItem) BoutiqueDraft {
			d := BoutiqueDraft{
				Name:        item.Name,
				Description: item.Description,
				Content:     item.Content,
				Price:       item.Price.String(),
				Status:      item.Status,
				InStock:     item.InStock,
				Featured:    item.Featured,
			}
			if item.ImageURL != nil {
				d.ImageURL = *item.ImageURL
			}
			if item.CategoryID != nil {
				d.CategoryID = strconv.FormatInt(*item.CategoryID, 10)
			}
			return d
		},
		Validate: func(d BoutiqueDraft) map[string]string {
			errs := make(map[string]string)
			if strings.TrimSpace(d.Name) == "" {
				errs["name"] = "Name is required"
			}
			if strings.TrimSpace(d.Price) == "" {
				errs["price"] = "Price is required"
			}
			return errs
		},
		Payload: func(d BoutiqueDraft) any {
			return api.BoutiquePayload{
				Name:        strings.TrimSpace(d.Name),
				Description: d.Description,
				Content:     d.Content,
				ImageURL:    NormalizeImageURL(d.ImageURL),
				Price:       ParsePrice(d.Price),
				Status:      normalizeStatus(d.Status),
				CategoryID:  NormalizeCategory(d.CategoryID),
				InStock:     d.InStock,
				Featured:    d.Featured,
			}
		},
		Create: res.Create,
		Update: res.Update,
	}
}
