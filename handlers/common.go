// Package handlers contains the HTTP surface of the admin console. Every
// handler is a thin shell: it translates requests into controller and
// session operations and renders the outcome; no content logic lives here.
package handlers

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/rs/zerolog"

	"cmsadmin/logger"
	"cmsadmin/state"
)

// CreateHandlerLogger returns a sub-logger annotated with the handler name
// and request coordinates.
func CreateHandlerLogger(handler string, r *http.Request) zerolog.Logger {
	return logger.Get().With().
		Str("handler", handler).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Logger()
}

// PageData builds the base template data for a page.
func PageData(title, active string) map[string]any {
	return map[string]any{
		"Title":      title,
		"ActivePage": active,
	}
}

// renderTemplateInternal executes the named template into the layout.
func renderTemplateInternal(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	sm := state.GetGlobalState()
	tmpl := sm.GetTemplates()
	if tmpl == nil {
		logger.Get().Error().Msg("Templates not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = make(map[string]any)
	}

	// Identity for the shell header.
	if sess := sm.GetSession(); sess != nil {
		if user, ok := sess.User(); ok {
			data["IsAuthenticated"] = true
			data["Username"] = user.Username
		}
	}
	connected, _ := sm.GetBackendStatus()
	data["BackendConnected"] = connected
	data["CurrentPath"] = r.URL.Path

	buf := new(bytes.Buffer)
	if err := tmpl.ExecuteTemplate(buf, name, data); err != nil {
		logger.Get().Error().
			Err(err).
			Str("template", name).
			Str("path", r.URL.Path).
			Msg("Template execution failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	data["Content"] = template.HTML(buf.String())

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		logger.Get().Error().
			Err(err).
			Str("template", "layout").
			Str("path", r.URL.Path).
			Msg("Layout template execution failed")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// RenderTemplate renders a page template inside the layout. Exported for
// use by other packages.
func RenderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	renderTemplateInternal(w, r, name, data)
}
