package ai

import (
	"regexp"
	"strings"
)

var (
	openFenceRe  = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\r?\n?")
	closeFenceRe = regexp.MustCompile("\\s*```$")
)

// Sanitize strips a leading markdown code fence (with or without a language
// tag), a trailing fence and surrounding whitespace from a model response.
// Backticks inside the payload are left alone. It does not check that the
// rest is valid JSON.
func Sanitize(raw string) string {
	s := strings.TrimSpace(raw)
	s = openFenceRe.ReplaceAllString(s, "")
	s = closeFenceRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
