package handlers

import (
	"net/http"
	"strconv"
	"time"

	"cmsadmin/api"
	"cmsadmin/constants"
	"cmsadmin/controller"
)

// The three content sections. Articles and publications share the
// ContentItem shape and differ only in wording and endpoints; boutique adds
// the sale fields.

// ArticleSection describes the news section.
func ArticleSection(res *api.Resource[api.ContentItem]) ContentSection[controller.ContentDraft, api.ContentItem] {
	s := contentItemSection("articles", "News", "article", constants.ContentTypeArticle)
	s.Spec = controller.ContentForm(res)
	return s
}

// PublicationSection describes the publications section.
func PublicationSection(res *api.Resource[api.ContentItem]) ContentSection[controller.ContentDraft, api.ContentItem] {
	s := contentItemSection("publications", "Publications", "publication", constants.ContentTypePublication)
	s.Spec = controller.ContentForm(res)
	return s
}

// contentItemSection builds the shared descriptor for the two ContentItem
// sections.
func contentItemSection(slug, plural, singular, contentType string) ContentSection[controller.ContentDraft, api.ContentItem] {
	return ContentSection[controller.ContentDraft, api.ContentItem]{
		Slug:          slug,
		TitlePlural:   plural,
		TitleSingular: singular,
		ContentType:   contentType,
		Row: func(item api.ContentItem) ContentRow {
			return ContentRow{
				ID:           item.ID,
				Title:        item.Title,
				Subtitle:     item.Excerpt,
				CategoryName: categoryName(item.Category),
				Date:         rowDate(item.PublishedAt, item.CreatedAt),
				Status:       item.Status,
			}
		},
		Bind: func(r *http.Request) controller.ContentDraft {
			return controller.ContentDraft{
				Title:      r.FormValue("title"),
				Excerpt:    r.FormValue("excerpt"),
				Content:    r.FormValue("content"),
				ImageURL:   r.FormValue("image_url"),
				Status:     r.FormValue("status"),
				CategoryID: r.FormValue("category_id"),
			}
		},
		Fields: func(d controller.ContentDraft, errs map[string]string, cats []api.Category) []FormField {
			return []FormField{
				{Name: "title", Label: "Title", Kind: "text", Value: d.Title, Required: true, Error: errs["title"]},
				{Name: "excerpt", Label: "Summary", Kind: "textarea", Value: d.Excerpt},
				{Name: "content", Label: "Content", Kind: "editor", Value: d.Content},
				statusField(d.Status),
				categoryField(d.CategoryID, cats),
				{Name: "image_url", Label: "Featured image", Kind: "image", Value: d.ImageURL},
			}
		},
	}
}

// BoutiqueSection describes the shop section.
func BoutiqueSection(res *api.Resource[api.BoutiqueItem]) ContentSection[controller.BoutiqueDraft, api.BoutiqueItem] {
	return ContentSection[controller.BoutiqueDraft, api.BoutiqueItem]{
		Slug:          "boutique",
		TitlePlural:   "Boutique",
		TitleSingular: "product",
		ContentType:   constants.ContentTypeBoutique,
		Spec:          controller.BoutiqueForm(res),
		Row: func(item api.BoutiqueItem) ContentRow {
			return ContentRow{
				ID:           item.ID,
				Title:        item.Name,
				Subtitle:     item.Description,
				CategoryName: categoryName(item.Category),
				Date:         rowDate(nil, item.CreatedAt),
				Status:       item.Status,
				Price:        item.Price.String(),
				HasStock:     true,
				InStock:      item.InStock,
			}
		},
		Bind: func(r *http.Request) controller.BoutiqueDraft {
			return controller.BoutiqueDraft{
				Name:        r.FormValue("name"),
				Description: r.FormValue("description"),
				Content:     r.FormValue("content"),
				ImageURL:    r.FormValue("image_url"),
				Price:       r.FormValue("price"),
				Status:      r.FormValue("status"),
				CategoryID:  r.FormValue("category_id"),
				InStock:     controller.ParseCheckbox(r.FormValue("in_stock")),
				Featured:    controller.ParseCheckbox(r.FormValue("featured")),
			}
		},
		Fields: func(d controller.BoutiqueDraft, errs map[string]string, cats []api.Category) []FormField {
			return []FormField{
				{Name: "name", Label: "Product name", Kind: "text", Value: d.Name, Required: true, Error: errs["name"]},
				{Name: "description", Label: "Short description", Kind: "textarea", Value: d.Description},
				{Name: "content", Label: "Full description", Kind: "editor", Value: d.Content},
				{Name: "price", Label: "Price", Kind: "price", Value: d.Price, Required: true, Error: errs["price"]},
				statusField(d.Status),
				{Name: "in_stock", Label: "In stock", Kind: "checkbox", Checked: d.InStock},
				{Name: "featured", Label: "Featured", Kind: "checkbox", Checked: d.Featured},
				categoryField(d.CategoryID, cats),
				{Name: "image_url", Label: "Product photo", Kind: "image", Value: d.ImageURL},
			}
		},
	}
}

func statusField(current string) FormField {
	return FormField{
		Name:  "status",
		Label: "Status",
		Kind:  "select",
		Value: current,
		Options: []FieldOption{
			{Value: constants.StatusDraft, Label: "Draft", Selected: current != constants.StatusPublished},
			{Value: constants.StatusPublished, Label: "Published", Selected: current == constants.StatusPublished},
		},
	}
}

func categoryField(current string, cats []api.Category) FormField {
	options := []FieldOption{{Value: "", Label: "No category", Selected: current == ""}}
	for _, cat := range cats {
		value := strconv.FormatInt(cat.ID, 10)
		options = append(options, FieldOption{Value: value, Label: cat.Name, Selected: value == current})
	}
	return FormField{Name: "category_id", Label: "Category", Kind: "select", Value: current, Options: options}
}

func categoryName(cat *api.Category) string {
	if cat == nil {
		return ""
	}
	return cat.Name
}

func rowDate(published, created *time.Time) string {
	t := published
	if t == nil {
		t = created
	}
	if t == nil {
		return "—"
	}
	return t.Format("02 Jan 2006")
}
