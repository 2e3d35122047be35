package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	"cmsadmin/api"
	"cmsadmin/controller"
	"cmsadmin/state"
)

// ContentRow is the uniform row shape the list template renders; each
// content type projects its entities into it.
type ContentRow struct {
	ID           int64
	Title        string
	Subtitle     string
	CategoryName string
	Date         string
	Status       string

	// Boutique columns, ignored elsewhere.
	Price    string
	HasStock bool
	InStock  bool
}

// FieldOption is one entry of a select field.
type FieldOption struct {
	Value    string
	Label    string
	Selected bool
}

// FormField describes one input of a content form to the generic form
// template. Kind is one of text, textarea, editor, select, checkbox, image,
// price.
type FormField struct {
	Name     string
	Label    string
	Kind     string
	Value    string
	Checked  bool
	Required bool
	Options  []FieldOption
	Error    string
}

// ContentSection is the entity descriptor a ContentHandler is parameterized
// with: endpoint bindings through the form spec and list controller, plus
// the projections the shared templates need.
type ContentSection[D, T any] struct {
	Slug          string
	TitlePlural   string
	TitleSingular string

	// ContentType selects which categories populate the form's select.
	ContentType string

	Row    func(T) ContentRow
	Bind   func(*http.Request) D
	Fields func(draft D, errs map[string]string, cats []api.Category) []FormField

	Spec controller.FormSpec[D, T]
}

// ContentHandler serves the list and form pages of one content type. One
// instance per type; all four surfaces share this implementation.
type ContentHandler[D, T any] struct {
	stateManager state.StateManager
	section      ContentSection[D, T]
	list         *controller.ResourceController[T]
	categories   *api.Categories
}

// NewContentHandler creates the handler for one content section.
func NewContentHandler[D, T any](
	sm state.StateManager,
	section ContentSection[D, T],
	list *controller.ResourceController[T],
	categories *api.Categories,
) *ContentHandler[D, T] {
	return &ContentHandler[D, T]{
		stateManager: sm,
		section:      section,
		list:         list,
		categories:   categories,
	}
}

// Routes lists the section's routes under its slug; the caller wraps them
// with the auth gate and registers them.
func (h *ContentHandler[D, T]) Routes() []Route {
	base := "/" + h.section.Slug
	return []Route{
		{http.MethodGet, base, h.ListPage},
		{http.MethodGet, base + "/new", h.FormPage},
		{http.MethodPost, base + "/new", h.FormSubmit},
		{http.MethodGet, base + "/edit", h.FormPage},
		{http.MethodPost, base + "/edit", h.FormSubmit},
		{http.MethodPost, base + "/delete", h.DeleteAction},
	}
}

// Route pairs a method/path with a gated handler.
type Route struct {
	Method string
	Path   string
	Handle httprouter.Handle
}

// ListPage renders the paged, searchable list. The URL query is the user
// intent; it is merged into the controller on every request.
func (h *ContentHandler[D, T]) ListPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := CreateHandlerLogger("ListPage", r)

	patch := controller.QueryPatch{}
	q := r.URL.Query()
	search := q.Get("search")
	status := q.Get("status")
	patch.Search = &search
	patch.Status = &status
	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		patch.Page = &page
	}
	h.list.SetQuery(r.Context(), patch)

	view := h.list.Snapshot()
	rows := make([]ContentRow, 0, len(view.Items))
	for _, item := range view.Items {
		rows = append(rows, h.section.Row(item))
	}

	if view.Err != nil {
		log.Warn().Err(view.Err).Str("section", h.section.Slug).Msg("List request failed, keeping previous page")
	}

	data := PageData(h.section.TitlePlural, h.section.Slug)
	data["Section"] = h.sectionMeta()
	data["Rows"] = rows
	data["View"] = view
	data["Query"] = view.Query
	data["ListURL"] = h.listURL(view.Query)
	renderTemplateInternal(w, r, "content_list", data)
}

// DeleteAction drives the two-phase deletion from the confirm modal: stage
// records the candidate, cancel drops it, confirm issues the delete. Every
// outcome redirects back to the list so the modal state lives server-side.
func (h *ContentHandler[D, T]) DeleteAction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := CreateHandlerLogger("DeleteAction", r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	switch r.FormValue("action") {
	case "stage":
		id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}
		h.list.StageDelete(id, r.FormValue("label"))
	case "cancel":
		h.list.CancelDelete()
	case "confirm":
		if err := h.list.ConfirmDelete(r.Context()); err != nil {
			log.Warn().Err(err).Str("section", h.section.Slug).Msg("Delete failed, candidate stays staged")
		}
	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, h.listURL(h.list.Query()), http.StatusSeeOther)
}

// FormPage renders the create or edit form. An unfetchable id never shows a
// partial form: the operator is sent back to the list.
func (h *ContentHandler[D, T]) FormPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := CreateHandlerLogger("FormPage", r)

	form, editing, ok := h.buildForm(w, r, log)
	if !ok {
		return
	}
	h.renderForm(w, r, form, editing, "")
}

// FormSubmit binds the posted draft and dispatches it. Validation failures
// re-render with field messages; request failures re-render with the draft
// intact and a banner; success navigates to the list.
func (h *ContentHandler[D, T]) FormSubmit(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := CreateHandlerLogger("FormSubmit", r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	form, editing, ok := h.submitForm(w, r)
	if !ok {
		return
	}

	saved, err := form.Submit(r.Context())
	if saved {
		http.Redirect(w, r, "/"+h.section.Slug, http.StatusSeeOther)
		return
	}

	banner := ""
	if err != nil {
		log.Warn().Err(err).Str("section", h.section.Slug).Msg("Save failed, draft retained")
		banner = "The save failed, please try again"
		var reqErr *api.RequestError
		if errors.As(err, &reqErr) && reqErr.Detail != "" {
			banner = reqErr.Detail
		}
	}
	h.renderForm(w, r, form, editing, banner)
}

// submitForm creates the form controller for a posted draft. Edit mode needs
// only the id: the posted values replace the draft wholesale, so nothing is
// fetched and a backend hiccup cannot discard the operator's input. The third
// return is false when a response has already been written.
func (h *ContentHandler[D, T]) submitForm(w http.ResponseWriter, r *http.Request) (*controller.FormController[D, T], bool, bool) {
	draft := h.section.Bind(r)

	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		form := controller.NewCreateForm(h.section.Spec)
		form.SetDraft(draft)
		return form, false, true
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return nil, false, false
	}
	return controller.ResumeEditForm(h.section.Spec, id, draft), true, true
}

// buildForm creates the form controller for the form page, handling the edit
// fetch and its navigate-away failure mode. The third return is false when
// a response has already been written.
func (h *ContentHandler[D, T]) buildForm(w http.ResponseWriter, r *http.Request, log zerolog.Logger) (*controller.FormController[D, T], bool, bool) {
	rawID := r.URL.Query().Get("id")
	if rawID == "" {
		return controller.NewCreateForm(h.section.Spec), false, true
	}

	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return nil, false, false
	}

	form, err := controller.NewEditForm(r.Context(), h.section.Spec, id)
	if err != nil {
		// Never show a partial form for an unfetchable id.
		log.Warn().Err(err).Int64("id", id).Str("section", h.section.Slug).Msg("Entity fetch failed, navigating away")
		http.Redirect(w, r, "/"+h.section.Slug, http.StatusSeeOther)
		return nil, false, false
	}
	return form, true, true
}

// renderForm renders the generic form template for the current draft.
func (h *ContentHandler[D, T]) renderForm(w http.ResponseWriter, r *http.Request, form *controller.FormController[D, T], editing bool, banner string) {
	cats, err := h.categories.List(r.Context(), h.section.ContentType)
	if err != nil {
		log := CreateHandlerLogger("renderForm", r)
		log.Warn().Err(err).Msg("Failed to load categories for form")
		cats = nil
	}

	title := "New " + h.section.TitleSingular
	if editing {
		title = "Edit " + h.section.TitleSingular
	}

	data := PageData(title, h.section.Slug)
	data["Section"] = h.sectionMeta()
	data["Editing"] = editing
	data["Banner"] = banner
	data["Fields"] = h.section.Fields(form.Draft(), form.FieldErrors(), cats)
	action := "/" + h.section.Slug + "/new"
	if editing {
		action = "/" + h.section.Slug + "/edit?id=" + r.URL.Query().Get("id")
	}
	data["Action"] = action
	renderTemplateInternal(w, r, "content_form", data)
}

func (h *ContentHandler[D, T]) sectionMeta() map[string]any {
	return map[string]any{
		"Slug":          h.section.Slug,
		"TitlePlural":   h.section.TitlePlural,
		"TitleSingular": h.section.TitleSingular,
		"HasStatus":     true,
	}
}

// listURL rebuilds the canonical list URL for the current query.
func (h *ContentHandler[D, T]) listURL(q controller.ListQuery) string {
	values := url.Values{}
	if q.Page > 1 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Search != "" {
		values.Set("search", q.Search)
	}
	if q.Status != "" {
		values.Set("status", q.Status)
	}
	u := "/" + h.section.Slug
	if len(values) > 0 {
		u += "?" + values.Encode()
	}
	return u
}
