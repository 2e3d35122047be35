package templates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "lon…", truncate("longer text", 3))
	assert.Equal(t, "héll…", truncate("héllo wörld", 4), "Truncation counts runes, not bytes")
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "—", formatDate(nil))

	d := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "30 Aug 2026", formatDate(&d))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "Published", statusLabel("published"))
	assert.Equal(t, "Draft", statusLabel("draft"))
	assert.Equal(t, "archived", statusLabel("archived"), "Unknown statuses pass through unchanged")
}
