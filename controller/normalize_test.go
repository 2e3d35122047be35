package controller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"19.90", "19.9"},
		{" 5 ", "5"},
		{"0", "0"},
		{"", "0"},
		{"abc", "0"},
		{"-3.50", "0"},
	}

	for _, tt := range tests {
		got := ParsePrice(tt.raw)
		assert.Equal(t, tt.want, got.String(), "ParsePrice(%q)", tt.raw)
		assert.False(t, got.IsNegative(), "Prices are never negative")
	}
}

func TestNormalizeCategory(t *testing.T) {
	assert.Nil(t, NormalizeCategory(""))
	assert.Nil(t, NormalizeCategory("  "))
	assert.Nil(t, NormalizeCategory("abc"))
	assert.Nil(t, NormalizeCategory("0"))
	assert.Nil(t, NormalizeCategory("-4"))

	id := NormalizeCategory("17")
	if assert.NotNil(t, id) {
		assert.Equal(t, int64(17), *id)
	}
}

func TestNormalizeImageURL(t *testing.T) {
	assert.Nil(t, NormalizeImageURL(""))
	assert.Nil(t, NormalizeImageURL("   "))

	u := NormalizeImageURL(" /uploads/a.png ")
	if assert.NotNil(t, u) {
		assert.Equal(t, "/uploads/a.png", *u)
	}
}

func TestParseCheckbox(t *testing.T) {
	for _, raw := range []string{"on", "true", "1", "yes", "ON", " On "} {
		assert.True(t, ParseCheckbox(raw), "ParseCheckbox(%q)", raw)
	}
	for _, raw := range []string{"", "off", "false", "0", "no", "whatever"} {
		assert.False(t, ParseCheckbox(raw), "ParseCheckbox(%q)", raw)
	}
}
