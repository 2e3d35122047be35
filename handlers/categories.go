package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/julienschmidt/httprouter"

	"cmsadmin/api"
	"cmsadmin/constants"
	"cmsadmin/controller"
	"cmsadmin/state"
)

// CategoriesHandler serves the category management page: the three-bucket
// grouped view, creation, inline rename and the staged deletion flow.
type CategoriesHandler struct {
	stateManager state.StateManager
	categories   *api.Categories

	mu        sync.Mutex
	staged    *controller.StagedDelete
	deleteErr error
	formErr   string
}

// NewCategoriesHandler creates a new instance of CategoriesHandler.
func NewCategoriesHandler(sm state.StateManager, categories *api.Categories) *CategoriesHandler {
	return &CategoriesHandler{stateManager: sm, categories: categories}
}

// Routes lists the category routes; the caller wraps them with the auth gate.
func (h *CategoriesHandler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/categories", h.Page},
		{http.MethodPost, "/categories/new", h.Create},
		{http.MethodPost, "/categories/rename", h.Rename},
		{http.MethodPost, "/categories/delete", h.DeleteAction},
	}
}

// Page renders the grouped category view.
func (h *CategoriesHandler) Page(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := CreateHandlerLogger("CategoriesPage", r)

	var groups controller.CategoryGroups
	cats, err := h.categories.List(r.Context(), "")
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load categories")
	} else {
		groups = controller.GroupCategories(cats)
	}

	h.mu.Lock()
	staged := h.staged
	deleteErr := h.deleteErr
	formErr := h.formErr
	h.formErr = ""
	h.mu.Unlock()

	data := PageData("Categories", "categories")
	data["Groups"] = groups
	data["Total"] = groups.Count()
	data["LoadFailed"] = err != nil
	data["Staged"] = staged
	data["DeleteFailed"] = deleteErr != nil
	data["FormError"] = formErr
	data["Types"] = []FieldOption{
		{Value: constants.ContentTypeArticle, Label: "News"},
		{Value: constants.ContentTypePublication, Label: "Publications"},
		{Value: constants.ContentTypeBoutique, Label: "Boutique"},
	}
	renderTemplateInternal(w, r, "categories", data)
}

// Create adds a category in one of the three known content types.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := CreateHandlerLogger("CategoryCreate", r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	contentType := r.FormValue("content_type")

	switch {
	case name == "" || len(name) > constants.MaxCategoryNameLength:
		h.setFormError("A category name is required")
	case !knownContentType(contentType):
		h.setFormError("Pick a section for the category")
	default:
		_, err := h.categories.Create(r.Context(), api.CategoryPayload{Name: name, ContentType: contentType})
		if err != nil {
			log.Warn().Err(err).Str("name", name).Msg("Category creation failed")
			h.setFormError("The category could not be created, please try again")
		}
	}

	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// Rename updates a category's name in place.
func (h *CategoriesHandler) Rename(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := CreateHandlerLogger("CategoryRename", r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "Invalid id", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" || len(name) > constants.MaxCategoryNameLength {
		h.setFormError("A category name is required")
		http.Redirect(w, r, "/categories", http.StatusSeeOther)
		return
	}

	if _, err := h.categories.Update(r.Context(), id, api.CategoryPayload{Name: name}); err != nil {
		log.Warn().Err(err).Int64("id", id).Msg("Category rename failed")
		h.setFormError("The rename failed, please try again")
	}
	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

// DeleteAction drives the two-phase category deletion. Stage and cancel are
// local; confirm issues the delete and keeps the candidate staged on failure.
func (h *CategoriesHandler) DeleteAction(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	log := CreateHandlerLogger("CategoryDelete", r)

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
		h.mu.Lock()
		h.staged = &controller.StagedDelete{ID: id, Label: r.FormValue("label")}
		h.deleteErr = nil
		h.mu.Unlock()
	case "cancel":
		h.mu.Lock()
		h.staged = nil
		h.deleteErr = nil
		h.mu.Unlock()
	case "confirm":
		h.mu.Lock()
		staged := h.staged
		h.mu.Unlock()
		if staged == nil {
			break
		}
		err := h.categories.Delete(r.Context(), staged.ID)
		h.mu.Lock()
		if err != nil {
			log.Warn().Err(err).Int64("id", staged.ID).Msg("Category delete failed, candidate stays staged")
			h.deleteErr = err
		} else {
			h.staged = nil
			h.deleteErr = nil
		}
		h.mu.Unlock()
	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	http.Redirect(w, r, "/categories", http.StatusSeeOther)
}

func (h *CategoriesHandler) setFormError(msg string) {
	h.mu.Lock()
	h.formErr = msg
	h.mu.Unlock()
}

func knownContentType(t string) bool {
	switch t {
	case constants.ContentTypeArticle, constants.ContentTypePublication, constants.ContentTypeBoutique:
		return true
	}
	return false
}
