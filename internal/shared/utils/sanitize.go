package utils

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops every tag. bluemonday policies are safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// Sanitize trims s and strips any markup, returning plain text. The policy escapes the text it
// keeps, so entities are decoded again; a URL keeps its `&` separators. Decoding can surface
// markup that was entity-encoded in the input, so the pass repeats until nothing changes.
// The result is a fixed point: Sanitize(Sanitize(s)) == Sanitize(s).
func Sanitize(s string) string {
	s = strings.TrimSpace(s)

	// a pass that changes s removes tags or decodes entities, so the loop terminates
	for s != "" {
		out := strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
		if out == s {
			break
		}
		s = out
	}

	return s
}
