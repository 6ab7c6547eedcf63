// Package sanitize cleans untrusted HTML before it is parsed into a
// document. It keeps user generated content markup plus the attributes and
// inline styles the paragraph and list kinds read.
package sanitize

import (
	"bytes"
	"io"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	alignRegexp     = regexp.MustCompile(`(?i)^\s*(left|right|center|justify)\s*$`)
	indentRegexp    = regexp.MustCompile(`(?i)^\s*\d+(\.\d+)?(px|em)\s*$`)
	integerRegexp   = regexp.MustCompile(`^\s*\d+\s*$`)
	listStyleRegexp = regexp.MustCompile(`(?i)^\s*[a-z-]+\s*$`)
)

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	p.AllowAttrs("align").Matching(alignRegexp).OnElements("p")
	p.AllowAttrs("data-indent").Matching(integerRegexp).OnElements("p")
	p.AllowStyles("text-align").Matching(alignRegexp).OnElements("p")
	p.AllowStyles("text-indent").Matching(indentRegexp).OnElements("p")

	p.AllowAttrs("start").Matching(integerRegexp).OnElements("ol")
	p.AllowStyles("list-style-type").Matching(listStyleRegexp).OnElements("ol", "ul")

	return p
}

// Policy returns the shared policy. It must not be modified.
func Policy() *bluemonday.Policy {
	return policy
}

// HTML returns markup with everything outside the policy removed.
func HTML(markup string) string {
	return policy.Sanitize(markup)
}

// Reader sanitizes everything read from r.
func Reader(r io.Reader) *bytes.Buffer {
	return policy.SanitizeReader(r)
}
