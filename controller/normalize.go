package controller

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Submit-time normalization rules shared by the form descriptors. These
// mirror what the backend expects: absent references instead of empty
// strings, strict booleans, and a price that is always a non-negative
// decimal.

// ParsePrice turns the raw price field into a non-negative decimal,
// defaulting to zero when the input does not parse.
func ParsePrice(raw string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// NormalizeCategory maps the raw category selection to an optional id. An
// empty selection means "no category", never an invalid zero id.
func NormalizeCategory(raw string) *int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}

// NormalizeImageURL maps a blank image URL to "no image".
func NormalizeImageURL(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	return &raw
}

// ParseCheckbox coerces an HTML checkbox value to a strict boolean.
func ParseCheckbox(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
