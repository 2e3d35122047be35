// Package constants defines application-wide constants for timeouts, limits, and configuration values.
package constants

import "time"

// Default Values
const (
	// DefaultPort is the default HTTP server port
	DefaultPort = "50010"

	// DefaultLogLevel is the default logging level
	DefaultLogLevel = "info"

	// DefaultPerPage is the number of items requested per list page
	DefaultPerPage = 15

	// DashboardStockSample is the page size used to derive the out-of-stock
	// count on the dashboard
	DashboardStockSample = 100

	// AppVersion is the current application version
	AppVersion = "0.3.1"
)

// Backend API
const (
	// APITimeout is the fixed timeout applied to every backend API call
	APITimeout = 15 * time.Second

	// LoginPath is the form-encoded authentication endpoint
	LoginPath = "/api/auth/login"

	// MePath returns the currently authenticated user
	MePath = "/api/auth/me"

	// CategoriesPath is the category collection endpoint
	CategoriesPath = "/api/categories"

	// UploadPath is the multipart image upload endpoint
	UploadPath = "/api/upload"

	// ArticlesPath, PublicationsPath and BoutiquePath are the content
	// resource base paths; admin listing and fetching live under
	// {base}/admin.
	ArticlesPath     = "/api/articles"
	PublicationsPath = "/api/publications"
	BoutiquePath     = "/api/boutique"
)

// Content statuses as the backend stores them.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// Category content types. The partition over these three values is closed:
// a category carrying anything else is dropped, never bucketed by default.
const (
	ContentTypeArticle     = "article"
	ContentTypePublication = "publication"
	ContentTypeBoutique    = "boutique"
)

// Validation Limits
const (
	// MaxUsernameLength is the maximum allowed identifier length on login
	MaxUsernameLength = 100

	// MaxPasswordLength is the maximum allowed password length on login
	MaxPasswordLength = 200

	// MaxCategoryNameLength is the maximum allowed category name length
	MaxCategoryNameLength = 100

	// MaxUploadSize is the maximum accepted upload body (10 MB)
	MaxUploadSize = 10 * 1024 * 1024
)
