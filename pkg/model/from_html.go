package model

import (
	"io"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
)

// ignoredTags are dropped with their whole subtree when no rule claims them.
var ignoredTags = map[string]bool{
	"head":     true,
	"noscript": true,
	"object":   true,
	"script":   true,
	"style":    true,
	"title":    true,
}

// DOMParser turns HTML into document trees using a schema's parse rules.
// It holds no per-call state and is safe for concurrent use.
type DOMParser struct {
	schema *Schema
	logger *zap.Logger
}

// ParserOption configures a DOMParser.
type ParserOption func(*DOMParser)

// WithLogger makes the parser report dropped markup at debug level.
func WithLogger(logger *zap.Logger) ParserOption {
	return func(p *DOMParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewDOMParser creates a parser for s.
func NewDOMParser(s *Schema, opts ...ParserOption) *DOMParser {
	p := &DOMParser{schema: s, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse reads an HTML document or fragment and returns its doc node. The
// only errors are read errors from r.
func (p *DOMParser) Parse(r io.Reader) (*Node, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return p.ParseNode(findElement(root, "body")), nil
}

// ParseNode parses the children of el into a doc node.
func (p *DOMParser) ParseNode(el *html.Node) *Node {
	ctx := &parseContext{parser: p, schema: p.schema}
	attrs, _ := p.schema.computeAttrs(DocKind, nil)
	ctx.stack = []*frame{{kind: DocKind, attrs: attrs}}
	if el != nil {
		ctx.addChildren(el)
	}
	return ctx.finish()
}

func findElement(root *html.Node, tag string) *html.Node {
	if root.Type == html.ElementNode && root.Data == tag {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func (s *Schema) matchRule(el *html.Node) (ruleEntry, bool) {
	for _, e := range s.rules {
		if e.rule.Tag == el.Data && (e.rule.Match == nil || e.rule.Match(el)) {
			return e, true
		}
	}
	return ruleEntry{}, false
}

type frame struct {
	kind       string
	attrs      Attrs
	content    []*Node
	implicit   bool // opened to wrap content, not by an element
	preserveWS bool
}

type parseContext struct {
	parser *DOMParser
	schema *Schema
	stack  []*frame
}

func (c *parseContext) top() *frame {
	return c.stack[len(c.stack)-1]
}

func (c *parseContext) allows(f *frame, kind string) bool {
	return c.schema.types[f.kind].content.Allows(kind)
}

func (c *parseContext) addChildren(el *html.Node) {
	for child := el.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.TextNode:
			c.addText(child.Data)
		case html.ElementNode:
			c.addElement(child)
		}
	}
}

func (c *parseContext) addElement(el *html.Node) {
	entry, ok := c.schema.matchRule(el)
	if !ok {
		if ignoredTags[el.Data] {
			c.parser.logger.Debug("ignoring element", zap.String("tag", el.Data))
			return
		}
		c.addChildren(el)
		return
	}

	rule := entry.rule
	switch {
	case rule.Skip:
		c.parser.logger.Debug("skipping element", zap.String("tag", el.Data), zap.String("rule", entry.kind))
		return
	case rule.Ignore:
		c.addChildren(el)
		return
	}

	var given Attrs
	if rule.GetAttrs != nil {
		given = rule.GetAttrs(el)
	}
	attrs, err := c.schema.computeAttrs(entry.kind, given)
	if err != nil {
		c.parser.logger.Debug("dropping element", zap.String("tag", el.Data), zap.Error(err))
		return
	}

	if c.schema.IsLeaf(entry.kind) {
		c.insert(&Node{Type: entry.kind, Attrs: attrs})
		return
	}

	if !c.ensure(entry.kind) {
		c.parser.logger.Debug("no place for element, parsing its content in place",
			zap.String("tag", el.Data), zap.String("kind", entry.kind))
		c.addChildren(el)
		return
	}
	depth := len(c.stack)
	c.stack = append(c.stack, &frame{
		kind:       entry.kind,
		attrs:      attrs,
		preserveWS: rule.PreserveWhitespace || c.schema.types[entry.kind].spec.Code,
	})
	c.addChildren(el)
	for len(c.stack) > depth {
		c.pop()
	}
}

func (c *parseContext) addText(data string) {
	if !c.top().preserveWS {
		data = collapseWhitespace(data)
		if strings.TrimSpace(data) == "" {
			top := c.top()
			if !c.allows(top, TextKind) || endsWithSpace(top) {
				return
			}
		}
	}
	if data == "" {
		return
	}
	if !c.ensure(TextKind) {
		c.parser.logger.Debug("dropping text", zap.String("parent", c.top().kind))
		return
	}
	top := c.top()
	if !top.preserveWS && endsWithSpace(top) {
		data = strings.TrimLeft(data, " ")
		if data == "" {
			return
		}
	}
	if n := len(top.content); n > 0 && top.content[n-1].IsText() {
		top.content[n-1].Text += data
		return
	}
	top.content = append(top.content, c.schema.Text(data))
}

// endsWithSpace reports whether new text in f would follow a space or start
// the block, in which case leading whitespace is insignificant.
func endsWithSpace(f *frame) bool {
	n := len(f.content)
	if n == 0 {
		return true
	}
	last := f.content[n-1]
	if !last.IsText() {
		return false
	}
	return strings.HasSuffix(last.Text, " ")
}

func collapseWhitespace(s string) string {
	var sb strings.Builder
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r', '\f':
			if !space {
				sb.WriteByte(' ')
				space = true
			}
		default:
			sb.WriteRune(r)
			space = false
		}
	}
	return sb.String()
}

func (c *parseContext) insert(n *Node) {
	if !c.ensure(n.Type) {
		c.parser.logger.Debug("dropping node", zap.String("kind", n.Type), zap.String("parent", c.top().kind))
		return
	}
	top := c.top()
	top.content = append(top.content, n)
}

// ensure makes the top of the stack accept kind, closing implicit frames or
// opening wrapper frames as needed.
func (c *parseContext) ensure(kind string) bool {
	for {
		top := c.top()
		if top.implicit && len(c.stack) > 1 && c.allows(c.stack[len(c.stack)-2], kind) {
			c.pop()
			continue
		}
		if c.allows(top, kind) {
			return true
		}
		if top.implicit {
			c.pop()
			continue
		}
		wrap := c.schema.findWrapping(top.kind, kind)
		if wrap == nil {
			return false
		}
		for _, w := range wrap {
			attrs, _ := c.schema.computeAttrs(w, nil)
			c.stack = append(c.stack, &frame{kind: w, attrs: attrs, implicit: true})
		}
		return true
	}
}

func (c *parseContext) pop() {
	f := c.top()
	c.stack = c.stack[:len(c.stack)-1]
	node := c.close(f)
	parent := c.top()
	parent.content = append(parent.content, node)
}

func (c *parseContext) close(f *frame) *Node {
	if !f.preserveWS {
		if n := len(f.content); n > 0 && f.content[n-1].IsText() {
			last := f.content[n-1]
			last.Text = strings.TrimRight(last.Text, " ")
			if last.Text == "" {
				f.content = f.content[:n-1]
			}
		}
	}
	filled, dropped := c.schema.types[f.kind].content.Fill(f.content, func(kind string) *Node {
		return c.schema.createAndFill(kind, 0)
	})
	for _, d := range dropped {
		c.parser.logger.Debug("dropping node that does not fit",
			zap.String("kind", d.Type), zap.String("parent", f.kind))
	}
	return &Node{Type: f.kind, Attrs: f.attrs, Content: filled}
}

func (c *parseContext) finish() *Node {
	for len(c.stack) > 1 {
		c.pop()
	}
	return c.close(c.stack[0])
}
