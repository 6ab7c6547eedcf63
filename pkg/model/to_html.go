package model

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DOMSerializer renders document trees to HTML through each kind's ToDOM.
type DOMSerializer struct {
	schema *Schema
}

// NewDOMSerializer creates a serializer for s.
func NewDOMSerializer(s *Schema) *DOMSerializer {
	return &DOMSerializer{schema: s}
}

// Serialize writes n as HTML. A doc node renders as the sequence of its
// children, without a wrapping element.
func (z *DOMSerializer) Serialize(w io.Writer, n *Node) error {
	nodes, err := z.RenderNode(n)
	if err != nil {
		return err
	}
	for _, el := range nodes {
		if err := html.Render(w, el); err != nil {
			return err
		}
	}
	return nil
}

// SerializeString is Serialize into a string.
func (z *DOMSerializer) SerializeString(n *Node) (string, error) {
	var sb strings.Builder
	if err := z.Serialize(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// RenderNode converts n into detached HTML nodes.
func (z *DOMSerializer) RenderNode(n *Node) ([]*html.Node, error) {
	if n.IsText() {
		return []*html.Node{{Type: html.TextNode, Data: n.Text}}, nil
	}
	nt, ok := z.schema.types[n.Type]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownKind, n.Type)
	}

	if n.Type == DocKind || nt.spec.ToDOM == nil {
		return z.renderChildren(n)
	}

	el, hole := buildDOM(nt.spec.ToDOM(n))
	if hole == nil {
		if len(n.Content) > 0 {
			return nil, fmt.Errorf("%w: %s has content but no content slot", ErrInvalidContent, n.Type)
		}
		return []*html.Node{el}, nil
	}
	children, err := z.renderChildren(n)
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		hole.AppendChild(c)
	}
	return []*html.Node{el}, nil
}

func (z *DOMSerializer) renderChildren(n *Node) ([]*html.Node, error) {
	var out []*html.Node
	for _, c := range n.Content {
		nodes, err := z.RenderNode(c)
		if err != nil {
			return nil, err
		}
		out = append(out, nodes...)
	}
	return out, nil
}

func buildDOM(spec DOMOutputSpec) (el, hole *html.Node) {
	el = &html.Node{
		Type:     html.ElementNode,
		Data:     spec.Tag,
		DataAtom: atom.Lookup([]byte(spec.Tag)),
		Attr:     append([]html.Attribute(nil), spec.Attrs...),
	}
	if spec.Hole {
		hole = el
	}
	if spec.Child != nil {
		child, childHole := buildDOM(*spec.Child)
		el.AppendChild(child)
		if childHole != nil {
			hole = childHole
		}
	}
	return el, hole
}
