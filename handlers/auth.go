package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/julienschmidt/httprouter"

	"cmsadmin/api"
	"cmsadmin/constants"
	"cmsadmin/middleware"
	"cmsadmin/session"
	"cmsadmin/state"
)

// AuthHandler handles the login and logout routes.
type AuthHandler struct {
	stateManager state.StateManager
	limiter      *middleware.LoginLimiter
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(sm state.StateManager, limiter *middleware.LoginLimiter) *AuthHandler {
	return &AuthHandler{stateManager: sm, limiter: limiter}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.HandlerFunc(http.MethodGet, "/login", h.LoginPage)
	router.HandlerFunc(http.MethodPost, "/login", middleware.LimitLogin(h.limiter, h.LoginSubmit))
	router.HandlerFunc(http.MethodGet, "/logout", h.Logout)
}

// LoginPage renders the sign-in form, or redirects straight to the target
// when the operator is already signed in.
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	sess := h.stateManager.GetSession()
	if sess != nil && sess.Status() == session.StatusAuthenticated {
		http.Redirect(w, r, returnTarget(r), http.StatusSeeOther)
		return
	}

	data := PageData("Sign in", "login")
	data["Return"] = r.URL.Query().Get("return")
	renderTemplateInternal(w, r, "login", data)
}

// LoginSubmit processes the credentials.
func (h *AuthHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	log := CreateHandlerLogger("LoginSubmit", r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	identifier := strings.TrimSpace(r.FormValue("username"))
	secret := r.FormValue("password")

	if identifier == "" || secret == "" ||
		len(identifier) > constants.MaxUsernameLength || len(secret) > constants.MaxPasswordLength {
		h.renderLoginError(w, r, "Username and password are required")
		return
	}

	sess := h.stateManager.GetSession()
	if sess == nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := sess.Login(r.Context(), identifier, secret); err != nil {
		log.Warn().Str("username", identifier).Str("ip", middleware.ClientIP(r)).Msg("Failed login attempt")

		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			h.renderLoginError(w, r, authErr.Error())
		} else {
			h.renderLoginError(w, r, "The backend could not be reached, please try again")
		}
		return
	}

	// Remember the signed-in browser for the shell header.
	if browser := h.stateManager.GetBrowserSessions(); browser != nil {
		if user, ok := sess.User(); ok {
			browser.Put(r.Context(), "username", user.Username)
		}
	}

	http.Redirect(w, r, returnTarget(r), http.StatusSeeOther)
}

// Logout clears the operator session and the browser session. Idempotent.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if sess := h.stateManager.GetSession(); sess != nil {
		sess.Logout()
	}
	if browser := h.stateManager.GetBrowserSessions(); browser != nil {
		if err := browser.Destroy(r.Context()); err != nil {
			log := CreateHandlerLogger("Logout", r)
			log.Warn().Err(err).Msg("Failed to destroy browser session")
		}
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, message string) {
	data := PageData("Sign in", "login")
	data["Error"] = message
	data["Return"] = r.FormValue("return")
	renderTemplateInternal(w, r, "login", data)
}

// returnTarget picks the post-login destination, refusing absolute URLs so
// the redirect can never leave the console.
func returnTarget(r *http.Request) string {
	target := r.FormValue("return")
	if target == "" {
		target = r.URL.Query().Get("return")
	}
	if target == "" {
		return "/"
	}
	// Reject absolute and protocol-relative URLs, only paths may pass.
	if u, err := url.Parse(target); err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return target
}
