package handlers

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"cmsadmin/api"
	"cmsadmin/constants"
	"cmsadmin/controller"
	"cmsadmin/metrics"
	"cmsadmin/middleware"
	"cmsadmin/state"
)

// InitHandlers initializes all handlers and configures the routes.
func InitHandlers(sm state.StateManager) http.Handler {
	router := httprouter.New()

	client := sm.GetAPIClient()
	articles := api.NewResource[api.ContentItem](client, constants.ArticlesPath)
	publications := api.NewResource[api.ContentItem](client, constants.PublicationsPath)
	boutique := api.NewResource[api.BoutiqueItem](client, constants.BoutiquePath)
	categories := api.NewCategories(client)

	authHandler := NewAuthHandler(sm, middleware.NewLoginLimiter(5, 10*time.Second))
	articlesHandler := NewContentHandler(sm, ArticleSection(articles), controller.NewResourceController[api.ContentItem](articles), categories)
	publicationsHandler := NewContentHandler(sm, PublicationSection(publications), controller.NewResourceController[api.ContentItem](publications), categories)
	boutiqueHandler := NewContentHandler(sm, BoutiqueSection(boutique), controller.NewResourceController[api.BoutiqueItem](boutique), categories)
	categoriesHandler := NewCategoriesHandler(sm, categories)
	dashboardHandler := NewDashboardHandler(sm, controller.StatsSources{
		Articles:     articles,
		Publications: publications,
		Boutique:     boutique,
		Categories:   categories,
	})
	uploadHandler := NewUploadHandler(sm)
	docsHandler := NewDocsHandler()
	healthHandler := NewHealthHandler(sm)

	// Public routes.
	authHandler.RegisterRoutes(router)
	healthHandler.RegisterRoutes(router)
	router.Handler(http.MethodGet, "/metrics", metrics.Handler())

	// Everything behind the session gate.
	registerGated(router, sm, dashboardHandler.Routes())
	registerGated(router, sm, articlesHandler.Routes())
	registerGated(router, sm, publicationsHandler.Routes())
	registerGated(router, sm, boutiqueHandler.Routes())
	registerGated(router, sm, categoriesHandler.Routes())
	registerGated(router, sm, uploadHandler.Routes())
	registerGated(router, sm, docsHandler.Routes())

	setupStaticFiles(router)

	// Browser session context first, then request metrics.
	handler := sm.GetBrowserSessions().LoadAndSave(router)
	return metrics.HTTPMetricsMiddleware(handler)
}

// registerGated registers a handler's routes behind the auth gate.
func registerGated(router *httprouter.Router, sm state.StateManager, routes []Route) {
	for _, rt := range routes {
		router.Handle(rt.Method, rt.Path, middleware.RequireAuth(sm, rt.Handle))
	}
}

// setupStaticFiles serves the frontend assets.
func setupStaticFiles(router *httprouter.Router) {
	router.ServeFiles("/css/*filepath", http.Dir("frontend/css"))
	router.ServeFiles("/js/*filepath", http.Dir("frontend/js"))
}
