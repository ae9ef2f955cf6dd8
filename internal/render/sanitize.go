package render

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	buttonPolicyOnce sync.Once
	buttonPolicy     *bluemonday.Policy
)

// sanitizeButtonMarkup strips scripts and event handlers from custom submit markup
func sanitizeButtonMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(buttonSanitizer().Sanitize(trimmed))
}

func buttonSanitizer() *bluemonday.Policy {
	buttonPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("button", "input", "span", "div", "i", "em", "strong", "img")
		policy.AllowAttrs("class", "id", "title", "aria-label", "data-label").Globally()
		policy.AllowAttrs("type", "name", "value", "disabled").OnElements("button", "input")
		policy.AllowAttrs("src", "alt", "width", "height").OnElements("img")
		policy.AllowStandardURLs()
		buttonPolicy = policy
	})
	return buttonPolicy
}
