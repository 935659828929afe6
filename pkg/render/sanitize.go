package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// PlainText strips every tag from raw and returns the remaining text with
// entities decoded and whitespace runs collapsed to single spaces. It is
// meant for summarising markup such as upstream HTML error pages; strings
// shown to the user are escaped by the template engine instead.
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	cleaned := html.UnescapeString(textSanitizer().Sanitize(trimmed))
	return strings.Join(strings.Fields(cleaned), " ")
}

// Summary is PlainText cut to at most max runes, with an ellipsis when
// anything was dropped.
func Summary(raw string, max int) string {
	text := PlainText(raw)
	if max <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
