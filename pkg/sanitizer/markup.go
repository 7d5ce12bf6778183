package sanitizer

import (
	"regexp"
	"strings"
)

var (
	// Tags whose body is not visible text. The body is discarded together
	// with the tags themselves.
	nonTextTagRe = regexp.MustCompile(`(?is)<(script|style)\b[^>]*>.*?</(?:script|style)\s*>`)

	// Comments may contain ">" in their body, so they get their own pass
	// before the generic tag match.
	commentRe = regexp.MustCompile(`(?s)<!--.*?-->`)

	// Any remaining tag, including attributes. A "<" only opens a tag
	// when followed by a tag name, "/" or "!"; anything else ("price < 100",
	// "<3") is plain text and survives.
	tagRe = regexp.MustCompile(`(?s)<[a-zA-Z/!][^>]*>`)

	// An opener that never closes swallows the rest of the string, the way
	// browsers treat truncated markup.
	danglingTagRe = regexp.MustCompile(`(?s)<[a-zA-Z/!][^>]*$`)
)

// StripMarkup removes all markup tags and their attributes from a string and
// trims surrounding whitespace. The visible text content of removed tags is
// preserved; script and style bodies are dropped. Event-handler attributes,
// style attributes and javascript: URIs disappear with the tags that carry
// them.
func StripMarkup(s string) string {
	if !strings.ContainsRune(s, '<') {
		return strings.TrimSpace(s)
	}

	s = nonTextTagRe.ReplaceAllString(s, "")
	s = commentRe.ReplaceAllString(s, "")
	s = tagRe.ReplaceAllString(s, "")
	s = danglingTagRe.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}
