// Package basic defines a basic document schema whose node kinds can be
// reused in other schemas.
package basic

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/open-cli-collective/rtdoc/pkg/model"
)

// Nodes returns the specs of the basic schema in their canonical order.
// Every call returns fresh specs that the caller may modify.
func Nodes() []*model.NodeSpec {
	return []*model.NodeSpec{
		// The top level document node.
		{Key: "doc", Content: "block+"},

		// A plain paragraph textblock. Represented in the DOM as a <p> element.
		{
			Key:      "paragraph",
			Content:  "inline*",
			Group:    "block",
			ParseDOM: []model.ParseRule{{Tag: "p"}},
			ToDOM: func(*model.Node) model.DOMOutputSpec {
				return model.DOMOutputSpec{Tag: "p", Hole: true}
			},
		},

		// A blockquote (<blockquote>) wrapping one or more blocks.
		{
			Key:      "blockquote",
			Content:  "block+",
			Group:    "block",
			Defining: true,
			ParseDOM: []model.ParseRule{{Tag: "blockquote"}},
			ToDOM: func(*model.Node) model.DOMOutputSpec {
				return model.DOMOutputSpec{Tag: "blockquote", Hole: true}
			},
		},

		// A horizontal rule (<hr>).
		{
			Key:      "horizontal_rule",
			Group:    "block",
			ParseDOM: []model.ParseRule{{Tag: "hr"}},
			ToDOM: func(*model.Node) model.DOMOutputSpec {
				return model.DOMOutputSpec{Tag: "hr"}
			},
		},

		// A heading textblock, with a level attribute that should hold the
		// number 1 to 6. Parsed and serialized as <h1> to <h6> elements.
		{
			Key:      "heading",
			Content:  "inline*",
			Group:    "block",
			Defining: true,
			Attrs:    map[string]*model.AttributeSpec{"level": {Default: 1}},
			ParseDOM: headingRules(),
			ToDOM: func(n *model.Node) model.DOMOutputSpec {
				return model.DOMOutputSpec{Tag: "h" + strconv.Itoa(headingLevel(n.Attrs.Int("level"))), Hole: true}
			},
		},

		// A code listing, represented as a <pre> element with a <code>
		// element inside of it.
		{
			Key:      "code_block",
			Content:  "text*",
			Group:    "block",
			Code:     true,
			Defining: true,
			ParseDOM: []model.ParseRule{{Tag: "pre", PreserveWhitespace: true}},
			ToDOM: func(*model.Node) model.DOMOutputSpec {
				return model.DOMOutputSpec{Tag: "pre", Child: &model.DOMOutputSpec{Tag: "code", Hole: true}}
			},
		},

		// The text node.
		{Key: "text", Group: "inline"},

		// An inline image (<img>) node. src is required, alt and title
		// default to null.
		{
			Key:    "image",
			Group:  "inline",
			Inline: true,
			Attrs: map[string]*model.AttributeSpec{
				"src":   {Required: true},
				"alt":   {Default: nil},
				"title": {Default: nil},
			},
			ParseDOM: []model.ParseRule{{
				Tag:      "img",
				Match:    func(el *html.Node) bool { return model.HasAttr(el, "src") },
				GetAttrs: imageAttrs,
			}},
			ToDOM: renderImage,
		},

		// A hard line break, represented in the DOM as <br>.
		{
			Key:      "hard_break",
			Group:    "inline",
			Inline:   true,
			ParseDOM: []model.ParseRule{{Tag: "br"}},
			ToDOM: func(*model.Node) model.DOMOutputSpec {
				return model.DOMOutputSpec{Tag: "br"}
			},
		},
	}
}

func headingRules() []model.ParseRule {
	rules := make([]model.ParseRule, 0, 6)
	for level := 1; level <= 6; level++ {
		attrs := model.Attrs{"level": level}
		rules = append(rules, model.ParseRule{
			Tag:      "h" + strconv.Itoa(level),
			GetAttrs: func(*html.Node) model.Attrs { return attrs },
		})
	}
	return rules
}

func headingLevel(level int) int {
	switch {
	case level < 1:
		return 1
	case level > 6:
		return 6
	}
	return level
}

func imageAttrs(el *html.Node) model.Attrs {
	attrs := model.Attrs{"src": model.AttrValue(el, "src")}
	if model.HasAttr(el, "alt") {
		attrs["alt"] = model.AttrValue(el, "alt")
	}
	if model.HasAttr(el, "title") {
		attrs["title"] = model.AttrValue(el, "title")
	}
	return attrs
}

func renderImage(n *model.Node) model.DOMOutputSpec {
	attrs := []html.Attribute{{Key: "src", Val: n.Attrs.String("src")}}
	for _, key := range []string{"alt", "title"} {
		if v, ok := n.Attrs[key].(string); ok {
			attrs = append(attrs, html.Attribute{Key: key, Val: v})
		}
	}
	return model.DOMOutputSpec{Tag: "img", Attrs: attrs}
}
