package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownKind is returned for nodes whose type is not in the schema.
	ErrUnknownKind = errors.New("unknown node kind")
	// ErrMissingAttr is returned when a required attribute has no value.
	ErrMissingAttr = errors.New("missing required attribute")
	// ErrInvalidContent is returned when children violate a content grammar.
	ErrInvalidContent = errors.New("invalid content")
)

// maxFillDepth bounds createAndFill for grammars that require themselves.
const maxFillDepth = 8

type nodeType struct {
	spec    *NodeSpec
	groups  []string
	content *ContentExpr
}

type ruleEntry struct {
	kind string
	rule ParseRule
}

// Schema is an immutable, ordered table of node kinds. It is safe for
// concurrent use.
type Schema struct {
	kinds  []string
	types  map[string]*nodeType
	groups map[string][]string
	rules  []ruleEntry
}

// NewSchema builds a schema from specs. The order of specs is significant:
// parse rules are tried in that order, and group members are listed in it.
func NewSchema(specs []*NodeSpec) (*Schema, error) {
	s := &Schema{
		types:  make(map[string]*nodeType, len(specs)),
		groups: make(map[string][]string),
	}

	for i, spec := range specs {
		if spec == nil || spec.Key == "" {
			return nil, fmt.Errorf("node spec %d has no key", i)
		}
		if _, dup := s.types[spec.Key]; dup {
			return nil, fmt.Errorf("duplicate node kind %q", spec.Key)
		}
		nt := &nodeType{spec: spec.Clone(), groups: spec.Groups()}
		s.types[spec.Key] = nt
		s.kinds = append(s.kinds, spec.Key)
		for _, g := range nt.groups {
			s.groups[g] = append(s.groups[g], spec.Key)
		}
	}

	for _, required := range []string{DocKind, TextKind} {
		if _, ok := s.types[required]; !ok {
			return nil, fmt.Errorf("schema is missing the %q node kind", required)
		}
	}

	resolve := func(name string) ([]string, bool) {
		if _, ok := s.types[name]; ok {
			return []string{name}, true
		}
		members, ok := s.groups[name]
		return members, ok
	}

	for _, kind := range s.kinds {
		nt := s.types[kind]
		expr, err := compileContent(nt.spec.Content, resolve)
		if err != nil {
			return nil, fmt.Errorf("node kind %q: %w", kind, err)
		}
		nt.content = expr
		for _, rule := range nt.spec.ParseDOM {
			s.rules = append(s.rules, ruleEntry{kind: kind, rule: rule})
		}
	}

	return s, nil
}

// Kinds returns the node kind names in schema order.
func (s *Schema) Kinds() []string {
	return append([]string(nil), s.kinds...)
}

// Spec returns a copy of the node spec for kind.
func (s *Schema) Spec(kind string) (*NodeSpec, bool) {
	nt, ok := s.types[kind]
	if !ok {
		return nil, false
	}
	return nt.spec.Clone(), true
}

// GroupMembers returns the kinds that belong to group, in schema order.
func (s *Schema) GroupMembers(group string) []string {
	return append([]string(nil), s.groups[group]...)
}

// ContentExpr returns the compiled content grammar of kind.
func (s *Schema) ContentExpr(kind string) (*ContentExpr, bool) {
	nt, ok := s.types[kind]
	if !ok {
		return nil, false
	}
	return nt.content, true
}

// IsInline reports whether kind is an inline kind.
func (s *Schema) IsInline(kind string) bool {
	nt, ok := s.types[kind]
	if !ok {
		return false
	}
	if nt.spec.Inline || kind == TextKind {
		return true
	}
	for _, g := range nt.groups {
		if g == "inline" {
			return true
		}
	}
	return false
}

// IsLeaf reports whether kind has no content.
func (s *Schema) IsLeaf(kind string) bool {
	nt, ok := s.types[kind]
	return ok && nt.content.IsLeaf()
}

func (s *Schema) hasRequiredAttrs(kind string) bool {
	for _, a := range s.types[kind].spec.Attrs {
		if a.Required {
			return true
		}
	}
	return false
}

// Text creates a text node.
func (s *Schema) Text(text string) *Node {
	return &Node{Type: TextKind, Text: text}
}

// Node creates a node of kind, filling in attribute defaults and checking
// that content fits the kind's grammar.
func (s *Schema) Node(kind string, attrs Attrs, content ...*Node) (*Node, error) {
	computed, err := s.computeAttrs(kind, attrs)
	if err != nil {
		return nil, err
	}
	n := &Node{Type: kind, Attrs: computed, Content: content}
	if err := s.checkContent(n, kind); err != nil {
		return nil, err
	}
	return n, nil
}

// Validate checks n and all its descendants against the schema.
func (s *Schema) Validate(n *Node) error {
	return s.validate(n, n.Type)
}

func (s *Schema) validate(n *Node, path string) error {
	nt, ok := s.types[n.Type]
	if !ok {
		return fmt.Errorf("%s: %w %q", path, ErrUnknownKind, n.Type)
	}
	for name, a := range nt.spec.Attrs {
		if a.Required && !n.Attrs.Has(name) {
			return fmt.Errorf("%s: %w %q", path, ErrMissingAttr, name)
		}
	}
	if err := s.checkContent(n, path); err != nil {
		return err
	}
	for i, child := range n.Content {
		if err := s.validate(child, fmt.Sprintf("%s > %s[%d]", path, child.Type, i)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) checkContent(n *Node, path string) error {
	if n.IsText() {
		if n.Text == "" {
			return fmt.Errorf("%s: %w: empty text node", path, ErrInvalidContent)
		}
		if len(n.Content) > 0 {
			return fmt.Errorf("%s: %w: text node with children", path, ErrInvalidContent)
		}
		return nil
	}
	nt, ok := s.types[n.Type]
	if !ok {
		return fmt.Errorf("%s: %w %q", path, ErrUnknownKind, n.Type)
	}
	kinds := make([]string, len(n.Content))
	for i, c := range n.Content {
		kinds[i] = c.Type
	}
	if !nt.content.Matches(kinds) {
		return fmt.Errorf("%s: %w: [%s] does not match %q",
			path, ErrInvalidContent, strings.Join(kinds, " "), nt.content.String())
	}
	return nil
}

// NodeFromJSON decodes a tree, fills attribute defaults and validates it.
func (s *Schema) NodeFromJSON(data []byte) (*Node, error) {
	var n Node
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("failed to decode document: %w", err)
	}
	if err := s.fillAttrs(&n, n.Type); err != nil {
		return nil, err
	}
	if err := s.Validate(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Schema) fillAttrs(n *Node, path string) error {
	if n.IsText() {
		n.Attrs = nil
		return nil
	}
	attrs, err := s.computeAttrs(n.Type, n.Attrs)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	n.Attrs = attrs
	for i, c := range n.Content {
		if c == nil {
			return fmt.Errorf("%s: %w: null child at %d", path, ErrInvalidContent, i)
		}
		if err := s.fillAttrs(c, fmt.Sprintf("%s > %s[%d]", path, c.Type, i)); err != nil {
			return err
		}
	}
	return nil
}

func (s *Schema) computeAttrs(kind string, given Attrs) (Attrs, error) {
	nt, ok := s.types[kind]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, kind)
	}
	if len(nt.spec.Attrs) == 0 {
		return nil, nil
	}
	out := make(Attrs, len(nt.spec.Attrs))
	for name, a := range nt.spec.Attrs {
		if v, ok := given[name]; ok {
			out[name] = v
			continue
		}
		if a.Required {
			return nil, fmt.Errorf("%w %q on %s", ErrMissingAttr, name, kind)
		}
		out[name] = a.Default
	}
	return out, nil
}

// createAndFill builds the smallest valid node of kind, or nil when that is
// not possible without extra input.
func (s *Schema) createAndFill(kind string, depth int) *Node {
	if depth > maxFillDepth || kind == TextKind {
		return nil
	}
	attrs, err := s.computeAttrs(kind, nil)
	if err != nil {
		return nil
	}
	content, _ := s.types[kind].content.Fill(nil, func(k string) *Node {
		return s.createAndFill(k, depth+1)
	})
	return &Node{Type: kind, Attrs: attrs, Content: content}
}

// findWrapping returns the chain of kinds that must be opened inside parent
// before a node of kind fits, or nil when there is none. An empty non-nil
// slice means kind fits directly.
func (s *Schema) findWrapping(parent, kind string) []string {
	type step struct {
		kind string
		via  []string
	}
	seen := map[string]bool{parent: true}
	queue := []step{{kind: parent, via: []string{}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		expr := s.types[cur.kind].content
		if expr.Allows(kind) {
			return cur.via
		}
		for _, k := range expr.kinds() {
			if seen[k] || !s.canWrap(k) {
				continue
			}
			seen[k] = true
			via := append(append([]string(nil), cur.via...), k)
			queue = append(queue, step{kind: k, via: via})
		}
	}
	return nil
}

func (s *Schema) canWrap(kind string) bool {
	nt := s.types[kind]
	return !s.IsInline(kind) && !nt.content.IsLeaf() && !nt.spec.Code && !s.hasRequiredAttrs(kind)
}
