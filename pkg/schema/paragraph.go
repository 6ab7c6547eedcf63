package schema

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/open-cli-collective/rtdoc/pkg/model"
)

// Attribute keys used on document nodes.
const (
	AttrAlign         = "align"
	AttrIndent        = "indent"
	AttrTextIndent    = "textIndent"
	AttrOrder         = "order"
	AttrListStyleType = "listStyleType"
)

// ParagraphAttrs are the attributes of a paragraph node.
type ParagraphAttrs struct {
	Align      Align
	Indent     int // block indent level
	TextIndent int // first-line indent level
}

// ParagraphDefaults holds the attribute values of a paragraph with no markup.
var ParagraphDefaults = ParagraphAttrs{Align: AlignNone}

// Attrs returns a as node attributes.
func (a ParagraphAttrs) Attrs() model.Attrs {
	return model.Attrs{
		AttrAlign:      string(a.Align),
		AttrIndent:     a.Indent,
		AttrTextIndent: a.TextIndent,
	}
}

// ParagraphAttrsOf decodes and normalizes paragraph attributes, including
// ones that came from JSON.
func ParagraphAttrsOf(attrs model.Attrs) ParagraphAttrs {
	return ParagraphAttrs{
		Align:      NormalizeAlign(attrs.String(AttrAlign)),
		Indent:     nonNegative(attrs.Int(AttrIndent)),
		TextIndent: indentLevel(attrs.Int(AttrTextIndent)),
	}
}

// ExtractParagraph reads paragraph attributes from a <p> element. The align
// attribute takes precedence over the CSS text-align property.
func ExtractParagraph(el *html.Node) ParagraphAttrs {
	align := strings.TrimSpace(model.AttrValue(el, "align"))
	if align == "" {
		align = model.StyleValue(el, "text-align")
	}
	return ParagraphAttrs{
		Align:      NormalizeAlign(align),
		Indent:     ParseIndent(model.AttrValue(el, "data-indent")),
		TextIndent: TextIndentLevel(model.StyleValue(el, "text-indent")),
	}
}

// RenderParagraph returns the <p> element for a. Left alignment is the
// rendering default and is not written out.
func RenderParagraph(a ParagraphAttrs) model.DOMOutputSpec {
	var style strings.Builder
	if a.Align != AlignNone && a.Align != AlignLeft {
		fmt.Fprintf(&style, "text-align: %s;", a.Align)
	}
	if level := indentLevel(a.TextIndent); level > 0 {
		fmt.Fprintf(&style, "text-indent: %dpx;", level*IndentUnitPx)
	}

	var attrs []html.Attribute
	if style.Len() > 0 {
		attrs = append(attrs, html.Attribute{Key: "style", Val: style.String()})
	}
	if a.Indent > 0 {
		attrs = append(attrs, html.Attribute{Key: "data-indent", Val: strconv.Itoa(a.Indent)})
	}
	return model.DOMOutputSpec{Tag: "p", Attrs: attrs, Hole: true}
}

// paragraphSpec replaces the basic paragraph. Its rules also claim <img> and
// <pre> ahead of the image and code_block kinds: images are ignored (no node,
// content still read) and preformatted blocks are skipped entirely.
func paragraphSpec() *model.NodeSpec {
	d := ParagraphDefaults
	return &model.NodeSpec{
		Key:     KindParagraph,
		Content: "inline*",
		Group:   "block",
		Attrs: map[string]*model.AttributeSpec{
			AttrAlign:      {Default: string(d.Align)},
			AttrIndent:     {Default: d.Indent},
			AttrTextIndent: {Default: d.TextIndent},
		},
		ParseDOM: []model.ParseRule{
			{Tag: "p", GetAttrs: func(el *html.Node) model.Attrs { return ExtractParagraph(el).Attrs() }},
			{Tag: "img", Ignore: true},
			{Tag: "pre", Skip: true},
		},
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			return RenderParagraph(ParagraphAttrsOf(n.Attrs))
		},
	}
}
