// Package constants defines application-wide constants for timeouts, limits, and configuration values.
package constants

import "time"

// HTTP and Form Configuration
const (
	// MaxFormSize is the maximum size for form submissions (10 MB)
	MaxFormSize = 10 * 1024 * 1024

	// MaxHeaderBytes is the maximum size for HTTP headers (1 MB)
	MaxHeaderBytes = 1 << 20
)

// Server Timeouts
const (
	// ServerReadTimeout is the maximum duration for reading the entire request
	ServerReadTimeout = 10 * time.Second

	// ServerWriteTimeout is the maximum duration before timing out writes of the response
	ServerWriteTimeout = 30 * time.Second

	// ServerIdleTimeout is the maximum amount of time to wait for the next request
	ServerIdleTimeout = 120 * time.Second

	// ServerReadHeaderTimeout is the amount of time allowed to read request headers
	ServerReadHeaderTimeout = 5 * time.Second

	// ShutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM
	ShutdownTimeout = 30 * time.Second
)

// Session
const (
	// SessionCookieName is the browser session cookie
	SessionCookieName = "cmsadmin_session"

	// SessionLifetime is the absolute browser session lifetime
	SessionLifetime = 24 * time.Hour

	// SessionIdleTimeout expires idle browser sessions
	SessionIdleTimeout = 30 * time.Minute
)
