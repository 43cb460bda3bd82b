package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeKeyAliases(t *testing.T) {
	tests := []struct {
		alias string
		want  string
	}{
		{"ctrl", "Control"},
		{"control", "Control"},
		{"alt", "Alt"},
		{"option", "Alt"},
		{"shift", "Shift"},
		{"cmd", "Meta"},
		{"command", "Meta"},
		{"meta", "Meta"},
		{"enter", "Enter"},
		{"return", "Enter"},
		{"esc", "Escape"},
		{"escape", "Escape"},
		{"space", "Space"},
		{"backspace", "Backspace"},
		{"del", "Delete"},
		{"up", "ArrowUp"},
		{"down", "ArrowDown"},
		{"left", "ArrowLeft"},
		{"right", "ArrowRight"},
		{"pageup", "PageUp"},
		{"pagedown", "PageDown"},
		{"home", "Home"},
		{"end", "End"},
	}

	for _, tt := range tests {
		t.Run(tt.alias, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeKey(tt.alias))
		})
	}
}

func TestNormalizeKeyCaseInsensitive(t *testing.T) {
	assert.Equal(t, "Control", NormalizeKey("CTRL"))
	assert.Equal(t, "Control", NormalizeKey("Ctrl"))
	assert.Equal(t, "ArrowUp", NormalizeKey("UP"))
	assert.Equal(t, "Meta", NormalizeKey("CoMmAnD"))
}

func TestNormalizeKeyTotal(t *testing.T) {
	// Every entry of the alias table round-trips case-insensitively.
	for alias, want := range keyAliases {
		assert.Equal(t, want, NormalizeKey(strings.ToUpper(alias)))
		assert.Equal(t, want, NormalizeKey(alias))
	}
}

func TestNormalizeKeyUnknownPassthrough(t *testing.T) {
	assert.Equal(t, "F5", NormalizeKey("F5"))
	assert.Equal(t, "a", NormalizeKey("a"))
	assert.Equal(t, "ArrowUp", NormalizeKey("ArrowUp"))
	assert.Equal(t, "", NormalizeKey(""))
	assert.Equal(t, "not-a-key", NormalizeKey("not-a-key"))
}
