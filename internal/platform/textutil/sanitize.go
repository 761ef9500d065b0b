package textutil

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strictPolicy strips every HTML element and attribute. Built once; the
// policy is safe for concurrent use.
var strictPolicy = bluemonday.StrictPolicy()

// StripTags removes HTML markup from operator-supplied free text and trims
// the result. Intake fields end up inside the rendered form document, so
// markup is never allowed through.
func StripTags(value string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(value))
}
