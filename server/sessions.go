// Package server assembles the HTTP side of the console: the browser
// session manager and the configured http.Server.
package server

import (
	"net/http"
	"os"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"

	"cmsadmin/constants"
	"cmsadmin/logger"
)

// InitBrowserSessions configures the scs session manager backing the browser
// cookie. The store is in-memory; the console runs as a single instance and
// the cookie only carries display state, the operator credential lives in the
// session package.
func InitBrowserSessions() *scs.SessionManager {
	log := logger.Get()

	isProduction := os.Getenv("ENVIRONMENT") == "production"

	scsm := scs.New()
	scsm.Store = memstore.New()
	scsm.Lifetime = constants.SessionLifetime
	scsm.IdleTimeout = constants.SessionIdleTimeout
	scsm.Cookie = scs.SessionCookie{
		Name:     constants.SessionCookieName,
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		Persist:  true,
	}

	if isProduction {
		log.Info().Msg("Secure session cookies enabled for production environment")
	} else {
		log.Warn().Msg("Secure session cookies disabled (not in production environment)")
	}

	return scsm
}
