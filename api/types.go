package api

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the authenticated operator as the backend reports it.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// LoginResult is the payload of a successful login call.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	User        User   `json:"user"`
}

// Category groups content of a single content type. Slug is derived by the
// backend and read-only here.
type Category struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	ContentType string     `json:"content_type"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// ContentItem is an article or a publication; the two resources share one
// shape and differ only in their endpoint base path. Category may be nil:
// a dangling or absent category reference is valid and renders as
// uncategorized.
type ContentItem struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content,omitempty"`
	ImageURL    *string    `json:"image_url,omitempty"`
	Status      string     `json:"status"`
	CategoryID  *int64     `json:"category_id,omitempty"`
	Category    *Category  `json:"category,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// BoutiqueItem is a shop product.
type BoutiqueItem struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Content     string          `json:"content,omitempty"`
	ImageURL    *string         `json:"image_url,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	CategoryID  *int64          `json:"category_id,omitempty"`
	Category    *Category       `json:"category,omitempty"`
	InStock     bool            `json:"in_stock"`
	Featured    bool            `json:"featured"`
	CreatedAt   *time.Time      `json:"created_at,omitempty"`
	UpdatedAt   *time.Time      `json:"updated_at,omitempty"`
}

// Page is one page of a listed resource. Pagination math is entirely
// backend-owned; the console never recomputes it.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ContentPayload is the normalized create/update body for articles and
// publications. Pointer fields are omitted when absent rather than sent as
// empty strings or zero ids.
type ContentPayload struct {
	Title      string  `json:"title"`
	Excerpt    string  `json:"excerpt"`
	Content    string  `json:"content"`
	ImageURL   *string `json:"image_url"`
	Status     string  `json:"status"`
	CategoryID *int64  `json:"category_id"`
}

// BoutiquePayload is the normalized create/update body for shop items.
type BoutiquePayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Content     string          `json:"content"`
	ImageURL    *string         `json:"image_url"`
	Price       decimal.Decimal `json:"price"`
	Status      string          `json:"status"`
	CategoryID  *int64          `json:"category_id"`
	InStock     bool            `json:"in_stock"`
	Featured    bool            `json:"featured"`
}

// CategoryPayload creates or renames a category.
type CategoryPayload struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
}

// UploadResult is the backend's answer to a successful image upload.
type UploadResult struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}
