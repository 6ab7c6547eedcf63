// Package model provides the document model that node definitions plug into:
// node specs, attribute defaults, content grammars, an immutable schema and
// the HTML parser and serializer driven by it.
package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Attrs holds the attribute values of a single node.
type Attrs map[string]interface{}

// String returns the attribute as a string, or "" if it is absent or not a string.
func (a Attrs) String(key string) string {
	if a == nil {
		return ""
	}
	s, _ := a[key].(string)
	return s
}

// Int returns the attribute as an int. Values decoded from JSON arrive as
// float64 and are truncated, saturating at the int range; numeric strings
// are accepted. Anything else is 0.
func (a Attrs) Int(key string) int {
	if a == nil {
		return 0
	}
	switch v := a[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return floatToInt(v)
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return int(i)
		}
		if f, err := v.Float64(); err == nil {
			return floatToInt(f)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return i
		}
	}
	return 0
}

// floatToInt truncates f, saturating at the int range. NaN and infinities
// are 0.
func floatToInt(f float64) int {
	switch {
	case math.IsNaN(f), math.IsInf(f, 0):
		return 0
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	}
	return int(f)
}

// Has reports whether key is set.
func (a Attrs) Has(key string) bool {
	_, ok := a[key]
	return ok
}

// AttributeSpec describes one attribute of a node kind.
type AttributeSpec struct {
	Default  interface{}
	Required bool // no default; must be supplied when the node is created
}

// ParseRule maps an HTML element to a node kind. Rules are tried in schema
// order and the first one whose Tag and Match agree wins.
type ParseRule struct {
	Tag   string                // element name, lower case
	Match func(*html.Node) bool // optional extra condition

	// Ignore drops the element itself: no node is produced and no later
	// rule is consulted. Its children, if any, are still parsed.
	Ignore bool
	// Skip drops the element together with its whole subtree.
	Skip bool

	PreserveWhitespace bool
	GetAttrs           func(*html.Node) Attrs
}

// DOMOutputSpec describes how a node renders to HTML. Hole marks the element
// that receives the node's content; Child nests one more element, e.g.
// <pre><code>...</code></pre>.
type DOMOutputSpec struct {
	Tag   string
	Attrs []html.Attribute
	Child *DOMOutputSpec
	Hole  bool
}

// NodeSpec defines a node kind.
type NodeSpec struct {
	Key      string
	Content  string // content grammar, e.g. "paragraph block*"
	Group    string // space separated group names
	Inline   bool
	Defining bool
	Code     bool
	Attrs    map[string]*AttributeSpec
	ParseDOM []ParseRule
	ToDOM    func(*Node) DOMOutputSpec
}

// Clone returns a shallow copy whose slices and maps can be changed without
// affecting s.
func (s *NodeSpec) Clone() *NodeSpec {
	out := *s
	if s.Attrs != nil {
		out.Attrs = make(map[string]*AttributeSpec, len(s.Attrs))
		for k, v := range s.Attrs {
			out.Attrs[k] = v
		}
	}
	out.ParseDOM = append([]ParseRule(nil), s.ParseDOM...)
	return &out
}

// Groups returns the group names of the node spec.
func (s *NodeSpec) Groups() []string {
	return strings.Fields(s.Group)
}

// Node is one element of a document tree.
type Node struct {
	Type    string  `json:"type"`
	Attrs   Attrs   `json:"attrs,omitempty"`
	Content []*Node `json:"content,omitempty"`
	Text    string  `json:"text,omitempty"`
}

// IsText reports whether n is a text node.
func (n *Node) IsText() bool {
	return n.Type == TextKind
}

// TextContent concatenates the text of n and all its descendants.
func (n *Node) TextContent() string {
	if n.IsText() {
		return n.Text
	}
	var sb strings.Builder
	for _, c := range n.Content {
		sb.WriteString(c.TextContent())
	}
	return sb.String()
}

// Well-known kinds every schema must define.
const (
	DocKind  = "doc"
	TextKind = "text"
)
