package browser

import "strings"

// keyAliases maps human-friendly key names to the names Playwright's
// keyboard dispatch understands.
var keyAliases = map[string]string{
	"ctrl":      "Control",
	"control":   "Control",
	"alt":       "Alt",
	"option":    "Alt",
	"shift":     "Shift",
	"cmd":       "Meta",
	"command":   "Meta",
	"meta":      "Meta",
	"super":     "Meta",
	"win":       "Meta",
	"enter":     "Enter",
	"return":    "Enter",
	"esc":       "Escape",
	"escape":    "Escape",
	"tab":       "Tab",
	"space":     "Space",
	"backspace": "Backspace",
	"delete":    "Delete",
	"del":       "Delete",
	"insert":    "Insert",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"pageup":    "PageUp",
	"pagedown":  "PageDown",
	"home":      "Home",
	"end":       "End",
}

// NormalizeKey maps an alias to its Playwright key name. Lookup is
// case-insensitive; anything outside the alias table comes back
// unchanged, so already-canonical names pass through.
func NormalizeKey(key string) string {
	if mapped, ok := keyAliases[strings.ToLower(key)]; ok {
		return mapped
	}
	return key
}
