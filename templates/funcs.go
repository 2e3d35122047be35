// Package templates provides template functions and utilities for the admin
// console's HTML shell.
package templates

import (
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"cmsadmin/constants"
)

// GetFuncMap returns the functions available to every template.
func GetFuncMap() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },

		"upper":    strings.ToUpper,
		"lower":    strings.ToLower,
		"truncate": truncate,

		"formatDate":  formatDate,
		"formatPrice": formatPrice,
		"statusLabel": statusLabel,

		"safeHTML": func(s string) template.HTML { return template.HTML(s) },
	}
}

// truncate shortens s to max runes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

// formatDate renders an optional timestamp, falling back to an em dash.
func formatDate(t *time.Time) string {
	if t == nil {
		return "—"
	}
	return t.Format("02 Jan 2006")
}

// formatPrice renders a decimal price without trailing noise.
func formatPrice(d decimal.Decimal) string {
	return d.String()
}

// statusLabel maps a backend status to its display label.
func statusLabel(status string) string {
	switch status {
	case constants.StatusPublished:
		return "Published"
	case constants.StatusDraft:
		return "Draft"
	default:
		return status
	}
}
