package handlers

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReturnTarget(t *testing.T) {
	tests := []struct {
		name  string
		query string
		form  string
		want  string
	}{
		{"default", "", "", "/"},
		{"relative path", "return=%2Farticles%3Fpage%3D2", "", "/articles?page=2"},
		{"form value wins", "return=%2Fboutique", "return=/categories", "/categories"},
		{"absolute URL refused", "return=https%3A%2F%2Fevil.test%2F", "", "/"},
		{"protocol-relative refused", "return=%2F%2Fevil.test", "", "/"},
		{"garbage refused", "return=%3A%2F%2F", "", "/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := "/login"
			if tt.query != "" {
				target += "?" + tt.query
			}
			var req = httptest.NewRequest("POST", target, strings.NewReader(tt.form))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			assert.NoError(t, req.ParseForm())

			assert.Equal(t, tt.want, returnTarget(req))
		})
	}
}

func TestReturnTargetNeverLeavesTheConsole(t *testing.T) {
	for _, raw := range []string{"https://evil.test", "//evil.test/x", "javascript:alert(1)", "articles"} {
		req := httptest.NewRequest("GET", "/login?return="+url.QueryEscape(raw), nil)
		assert.Equal(t, "/", returnTarget(req), "return=%q must not redirect off-site", raw)
	}
}
