package schema

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/open-cli-collective/rtdoc/pkg/model"
)

// element parses markup and returns its first element inside <body>.
func element(t *testing.T, markup string) *html.Node {
	t.Helper()
	root, err := html.Parse(strings.NewReader(markup))
	require.NoError(t, err)

	var find func(*html.Node) *html.Node
	find = func(n *html.Node) *html.Node {
		if n.Type == html.ElementNode && n.Data == "body" {
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.ElementNode {
					return c
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if found := find(c); found != nil {
				return found
			}
		}
		return nil
	}
	el := find(root)
	require.NotNil(t, el)
	return el
}

func TestExtractParagraph(t *testing.T) {
	tests := []struct {
		name   string
		markup string
		want   ParagraphAttrs
	}{
		{
			name:   "no attributes",
			markup: `<p>x</p>`,
			want:   ParagraphAttrs{},
		},
		{
			name:   "css alignment and indents",
			markup: `<p style="text-align: center; text-indent: 40px" data-indent="2">x</p>`,
			want:   ParagraphAttrs{Align: AlignCenter, Indent: 2, TextIndent: 2},
		},
		{
			name:   "align attribute wins over css",
			markup: `<p align="right" style="text-align: center">x</p>`,
			want:   ParagraphAttrs{Align: AlignRight},
		},
		{
			name:   "empty align attribute falls back to css",
			markup: `<p align="" style="text-align:justify">x</p>`,
			want:   ParagraphAttrs{Align: AlignJustify},
		},
		{
			name:   "unknown alignment",
			markup: `<p style="text-align: middle">x</p>`,
			want:   ParagraphAttrs{},
		},
		{
			name:   "em indent",
			markup: `<p style="text-indent: 3em">x</p>`,
			want:   ParagraphAttrs{TextIndent: 3},
		},
		{
			name:   "small px indent is kept",
			markup: `<p style="text-indent: 5px">x</p>`,
			want:   ParagraphAttrs{TextIndent: 1},
		},
		{
			name:   "unsupported unit",
			markup: `<p style="text-indent: 2rem">x</p>`,
			want:   ParagraphAttrs{},
		},
		{
			name:   "garbage data-indent",
			markup: `<p data-indent="lots">x</p>`,
			want:   ParagraphAttrs{},
		},
		{
			name:   "negative data-indent",
			markup: `<p data-indent="-4">x</p>`,
			want:   ParagraphAttrs{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractParagraph(element(t, tt.markup)))
		})
	}
}

func TestRenderParagraph(t *testing.T) {
	tests := []struct {
		name  string
		attrs ParagraphAttrs
		want  []html.Attribute
	}{
		{
			name:  "defaults",
			attrs: ParagraphDefaults,
		},
		{
			name:  "left alignment is not written",
			attrs: ParagraphAttrs{Align: AlignLeft},
		},
		{
			name:  "alignment",
			attrs: ParagraphAttrs{Align: AlignCenter},
			want:  []html.Attribute{{Key: "style", Val: "text-align: center;"}},
		},
		{
			name:  "text indent in pixels",
			attrs: ParagraphAttrs{TextIndent: 3},
			want:  []html.Attribute{{Key: "style", Val: "text-indent: 60px;"}},
		},
		{
			name:  "everything",
			attrs: ParagraphAttrs{Align: AlignRight, Indent: 2, TextIndent: 1},
			want: []html.Attribute{
				{Key: "style", Val: "text-align: right;text-indent: 20px;"},
				{Key: "data-indent", Val: "2"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := RenderParagraph(tt.attrs)
			assert.Equal(t, "p", out.Tag)
			assert.True(t, out.Hole)
			assert.Equal(t, tt.want, out.Attrs)
		})
	}
}

func TestParagraphAttrsOf(t *testing.T) {
	// Numbers decoded from JSON are float64.
	got := ParagraphAttrsOf(model.Attrs{AttrAlign: " Center", AttrIndent: 2.0, AttrTextIndent: -1.0})
	assert.Equal(t, ParagraphAttrs{Align: AlignCenter, Indent: 2}, got)

	assert.Equal(t, ParagraphAttrs{}, ParagraphAttrsOf(nil))
	assert.Equal(t, ParagraphAttrs{}, ParagraphAttrsOf(model.Attrs{AttrAlign: "sideways"}))

	// Oversized levels from JSON are capped so their pixel width cannot overflow.
	for _, v := range []interface{}{1e18, 1e30, math.MaxInt} {
		got := ParagraphAttrsOf(model.Attrs{AttrTextIndent: v})
		assert.Equal(t, MaxIndentLevel, got.TextIndent, "%v", v)
	}
}

func TestTextIndentOverflow(t *testing.T) {
	maxWidth := fmt.Sprintf(`<p style="text-indent: %dpx;">x</p>`, MaxIndentLevel*IndentUnitPx)

	tests := []struct {
		name   string
		markup string
	}{
		{"huge em", `<p style="text-indent: 99999999999999999999em">x</p>`},
		{"huge em below int64", `<p style="text-indent: 1000000000000000000em">x</p>`},
		{"huge px", `<p style="text-indent: 99999999999999999999px">x</p>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseString(tt.markup)
			require.Len(t, doc.Content, 1)
			assert.Equal(t, MaxIndentLevel, doc.Content[0].Attrs.Int(AttrTextIndent))

			first, err := Normalize(tt.markup)
			require.NoError(t, err)
			assert.Equal(t, maxWidth, first)

			second, err := Normalize(first)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}

	t.Run("render clamps a direct level", func(t *testing.T) {
		spec := RenderParagraph(ParagraphAttrs{TextIndent: math.MaxInt})
		require.Len(t, spec.Attrs, 1)
		assert.Equal(t, fmt.Sprintf("text-indent: %dpx;", MaxIndentLevel*IndentUnitPx), spec.Attrs[0].Val)
	})

	t.Run("json input", func(t *testing.T) {
		doc, err := Schema.NodeFromJSON([]byte(`{"type":"doc","content":[{"type":"paragraph","attrs":{"textIndent":1e18},"content":[{"type":"text","text":"x"}]}]}`))
		require.NoError(t, err)
		got, err := RenderHTML(doc)
		require.NoError(t, err)
		assert.Equal(t, maxWidth, got)
	})
}

func TestParagraphAlignRoundTrip(t *testing.T) {
	for _, align := range []Align{AlignNone, AlignLeft, AlignRight, AlignCenter, AlignJustify} {
		t.Run(string(align), func(t *testing.T) {
			para, err := Schema.Node(KindParagraph, ParagraphAttrs{Align: align}.Attrs(), Schema.Text("x"))
			require.NoError(t, err)
			doc, err := Schema.Node(model.DocKind, nil, para)
			require.NoError(t, err)

			first, err := RenderHTML(doc)
			require.NoError(t, err)
			second, err := Normalize(first)
			require.NoError(t, err)
			assert.Equal(t, first, second)
		})
	}
}
