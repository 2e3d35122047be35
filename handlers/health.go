package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"cmsadmin/constants"
	"cmsadmin/session"
	"cmsadmin/state"
)

// HealthHandler exposes the liveness endpoint used by probes and uptime
// checks. Always unauthenticated.
type HealthHandler struct {
	stateManager state.StateManager
}

// NewHealthHandler creates a new instance of HealthHandler.
func NewHealthHandler(sm state.StateManager) *HealthHandler {
	return &HealthHandler{stateManager: sm}
}

// RegisterRoutes registers the health routes.
func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.HealthCheck)
}

// HealthCheck reports the console's own status and the last observed backend
// reachability. It never calls the backend itself.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	backend := "unreachable"
	if connected, _ := h.stateManager.GetBackendStatus(); connected {
		backend = "ok"
	}

	sessionState := session.StatusUnknown.String()
	if sess := h.stateManager.GetSession(); sess != nil {
		sessionState = sess.Status().String()
	}

	response := map[string]any{
		"status":  "ok",
		"version": constants.AppVersion,
		"services": map[string]string{
			"backend": backend,
			"session": sessionState,
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log := CreateHandlerLogger("HealthCheck", r)
		log.Error().Err(err).Msg("Failed to encode health response")
	}
}
