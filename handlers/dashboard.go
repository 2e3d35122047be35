package handlers

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cmsadmin/controller"
	"cmsadmin/state"
)

// DashboardHandler serves the landing page with the content overview.
type DashboardHandler struct {
	stateManager state.StateManager
	sources      controller.StatsSources
}

// NewDashboardHandler creates a new instance of DashboardHandler.
func NewDashboardHandler(sm state.StateManager, sources controller.StatsSources) *DashboardHandler {
	return &DashboardHandler{stateManager: sm, sources: sources}
}

// Routes lists the dashboard route; the caller wraps it with the auth gate.
func (h *DashboardHandler) Routes() []Route {
	return []Route{
		{http.MethodGet, "/", h.Page},
	}
}

// Page renders the overview. Each figure degrades independently; a failed
// fetch leaves its tile empty instead of failing the page.
func (h *DashboardHandler) Page(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	stats := controller.LoadStats(r.Context(), h.sources)

	data := PageData("Dashboard", "dashboard")
	data["Stats"] = stats
	renderTemplateInternal(w, r, "dashboard", data)
}
