// Package middleware provides the request gating applied in front of the
// console's protected pages: authentication checks and login rate limiting.
package middleware

import (
	"net/http"
	"net/url"

	"github.com/julienschmidt/httprouter"

	"cmsadmin/logger"
	"cmsadmin/session"
	"cmsadmin/state"
)

// RequireAuth gates a protected page on the operator session state:
// Authenticated passes through, Unauthenticated redirects to the login
// entry point with a return target, and Unknown renders a neutral loading
// page so a slow restore never flashes a spurious redirect.
func RequireAuth(sm state.StateManager, next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		sess := sm.GetSession()
		if sess == nil {
			logger.Get().Error().Msg("Operator session manager not initialized")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		switch sess.Status() {
		case session.StatusAuthenticated:
			next(w, r, ps)
		case session.StatusUnknown:
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusOK)
			if tmpl := sm.GetTemplates(); tmpl != nil {
				if err := tmpl.ExecuteTemplate(w, "loading", nil); err == nil {
					return
				}
			}
			_, _ = w.Write([]byte("<!DOCTYPE html><title>Loading</title><p>Loading…</p>"))
		default:
			target := "/login"
			if r.URL.Path != "/" {
				target += "?return=" + url.QueryEscape(r.URL.RequestURI())
			}
			http.Redirect(w, r, target, http.StatusSeeOther)
		}
	}
}
