package service

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"

	"github.com/emilythestrangee/investor-hub/backend/internal/models"
)

const (
	maxTitleLen   = 300
	maxCommentLen = 10000
)

// Sanitizer strips markup from user content. Titles keep no elements, bodies
// keep a small set of formatting tags.
type Sanitizer struct {
	plain *bluemonday.Policy
	rich  *bluemonday.Policy
}

func NewSanitizer() *Sanitizer {
	rich := bluemonday.StrictPolicy()
	rich.AllowElements("p", "br", "strong", "em", "code", "pre", "blockquote")
	rich.AllowElements("ul", "ol", "li")
	rich.AllowAttrs("href").OnElements("a")
	rich.RequireParseableURLs(true)
	rich.AddTargetBlankToFullyQualifiedLinks(true)
	rich.RequireNoFollowOnLinks(true)

	return &Sanitizer{plain: bluemonday.StrictPolicy(), rich: rich}
}

// Plain returns s with every element removed and surrounding space trimmed.
// The result is plain text, not HTML: entities the policy escapes are decoded
// again, so "M&A" is stored and matched as "M&A".
func (s *Sanitizer) Plain(in string) string {
	return strings.TrimSpace(html.UnescapeString(s.plain.Sanitize(in)))
}

// Rich returns s with disallowed elements and attributes removed.
func (s *Sanitizer) Rich(in string) string {
	return strings.TrimSpace(s.rich.Sanitize(in))
}

// requireText validates sanitized text against a rune limit.
func requireText(field, value string, limit int) error {
	if value == "" {
		return models.NewValidationError(field + " is required")
	}
	if utf8.RuneCountInString(value) > limit {
		return models.NewValidationError(field + " is too long")
	}
	return nil
}
