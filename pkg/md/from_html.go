package md

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	"github.com/open-cli-collective/rtdoc/pkg/model"
	"github.com/open-cli-collective/rtdoc/pkg/schema"
)

// FromHTML converts HTML to markdown.
func FromHTML(html string) (string, error) {
	if html == "" {
		return "", nil
	}

	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", err
	}

	// Clean up the output - trim whitespace
	return strings.TrimSpace(markdown), nil
}

// FromDocument renders doc to canonical HTML and converts that to markdown.
func FromDocument(doc *model.Node) (string, error) {
	html, err := schema.RenderHTML(doc)
	if err != nil {
		return "", err
	}
	return FromHTML(html)
}

// Lossy describes the attributes in doc that markdown cannot express, one
// entry per node, e.g. "paragraph[2]: align=center". List start numbers
// survive and are not reported.
func Lossy(doc *model.Node) []string {
	var out []string
	var walk func(n *model.Node, path string)
	walk = func(n *model.Node, path string) {
		if notes := lostAttrs(n); len(notes) > 0 {
			out = append(out, path+": "+strings.Join(notes, " "))
		}
		for i, c := range n.Content {
			walk(c, fmt.Sprintf("%s > %s[%d]", path, c.Type, i))
		}
	}
	if doc != nil {
		walk(doc, doc.Type)
	}
	return out
}

func lostAttrs(n *model.Node) []string {
	var notes []string
	switch n.Type {
	case schema.KindParagraph:
		a := schema.ParagraphAttrsOf(n.Attrs)
		if a.Align != schema.AlignNone && a.Align != schema.AlignLeft {
			notes = append(notes, "align="+string(a.Align))
		}
		if a.Indent > 0 {
			notes = append(notes, fmt.Sprintf("indent=%d", a.Indent))
		}
		if a.TextIndent > 0 {
			notes = append(notes, fmt.Sprintf("textIndent=%d", a.TextIndent))
		}
	case schema.KindOrderedList, schema.KindBulletList:
		if v := schema.NormalizeListStyleType(n.Attrs.String(schema.AttrListStyleType)); v != "" {
			notes = append(notes, "listStyleType="+v)
		}
	}
	return notes
}
