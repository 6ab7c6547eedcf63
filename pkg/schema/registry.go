// Package schema defines the paragraph and list node kinds of rich-text
// documents and the registry that merges them into the basic node set.
//
// Every kind maps markup to typed attributes when parsing and renders
// canonical markup back when serializing. Parsing never fails on malformed
// markup: unusable values fall back to defaults.
package schema

import (
	"fmt"
	"io"
	"strings"

	"github.com/open-cli-collective/rtdoc/pkg/model"
	"github.com/open-cli-collective/rtdoc/pkg/model/basic"
)

// Node kinds defined or removed by this package.
const (
	KindParagraph   = "paragraph"
	KindOrderedList = "ordered_list"
	KindBulletList  = "bullet_list"
	KindListItem    = "list_item"
	KindHardBreak   = "hard_break"
)

// ExcludedKinds are removed from the basic node set. Without hard_break a
// <br> yields no node: the element is empty and has no rule of its own.
var ExcludedKinds = []string{KindHardBreak}

var (
	// Schema is the composed schema. It is built once and never modified.
	Schema = mustBuild()

	parser     = model.NewDOMParser(Schema)
	serializer = model.NewDOMSerializer(Schema)
)

func mustBuild() *model.Schema {
	s, err := model.NewSchema(Nodes())
	if err != nil {
		panic(fmt.Sprintf("schema: %v", err))
	}
	return s
}

// Definitions returns the node kinds this package adds to the basic set, in
// overlay order.
func Definitions() []*model.NodeSpec {
	return []*model.NodeSpec{
		paragraphSpec(),
		orderedListSpec(),
		bulletListSpec(),
		listItemSpec(),
	}
}

// Nodes returns a fresh copy of the composed node table: the basic set
// without ExcludedKinds, overlaid with Definitions.
func Nodes() []*model.NodeSpec {
	return Compose(basic.Nodes(), ExcludedKinds, Definitions())
}

// Kinds returns the kind names of Schema in order.
func Kinds() []string {
	return Schema.Kinds()
}

// Compose merges node tables the way an ordered map would: kinds in exclude
// are dropped from base, an overlay entry whose key is already present
// replaces it in place and any other overlay entry is appended. Later
// overlay entries win over earlier ones with the same key.
func Compose(base []*model.NodeSpec, exclude []string, overlay []*model.NodeSpec) []*model.NodeSpec {
	skip := make(map[string]bool, len(exclude))
	for _, k := range exclude {
		skip[k] = true
	}

	out := make([]*model.NodeSpec, 0, len(base)+len(overlay))
	index := make(map[string]int, len(base)+len(overlay))
	put := func(spec *model.NodeSpec) {
		if i, ok := index[spec.Key]; ok {
			out[i] = spec
			return
		}
		index[spec.Key] = len(out)
		out = append(out, spec)
	}

	for _, spec := range base {
		if !skip[spec.Key] {
			put(spec)
		}
	}
	for _, spec := range overlay {
		put(spec)
	}
	return out
}

// NewParser returns a parser for Schema with extra options, such as a logger.
func NewParser(opts ...model.ParserOption) *model.DOMParser {
	return model.NewDOMParser(Schema, opts...)
}

// ParseHTML parses markup into a doc node. Errors only come from reading r.
func ParseHTML(r io.Reader) (*model.Node, error) {
	return parser.Parse(r)
}

// ParseString parses a markup string into a doc node.
func ParseString(markup string) *model.Node {
	doc, _ := parser.Parse(strings.NewReader(markup))
	return doc
}

// RenderHTML serializes doc to canonical markup. It fails for trees that
// name kinds the schema does not know or put content in leaf kinds.
func RenderHTML(doc *model.Node) (string, error) {
	return serializer.SerializeString(doc)
}

// Normalize parses markup and renders it back in canonical form.
func Normalize(markup string) (string, error) {
	return RenderHTML(ParseString(markup))
}
