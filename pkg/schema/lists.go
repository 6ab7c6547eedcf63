package schema

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html"

	"github.com/open-cli-collective/rtdoc/pkg/model"
	"github.com/open-cli-collective/rtdoc/pkg/model/list"
)

// OrderedListAttrs are the attributes of an ordered_list node.
type OrderedListAttrs struct {
	Order         int // number of the first item, at least 1
	ListStyleType string
}

// BulletListAttrs are the attributes of a bullet_list node.
type BulletListAttrs struct {
	ListStyleType string
}

var (
	OrderedListDefaults = OrderedListAttrs{Order: 1}
	BulletListDefaults  = BulletListAttrs{}
)

func (a OrderedListAttrs) Attrs() model.Attrs {
	return model.Attrs{AttrOrder: a.Order, AttrListStyleType: a.ListStyleType}
}

func (a BulletListAttrs) Attrs() model.Attrs {
	return model.Attrs{AttrListStyleType: a.ListStyleType}
}

// OrderedListAttrsOf decodes and normalizes ordered_list attributes.
func OrderedListAttrsOf(attrs model.Attrs) OrderedListAttrs {
	order := attrs.Int(AttrOrder)
	if order < 1 {
		order = 1
	}
	return OrderedListAttrs{
		Order:         order,
		ListStyleType: NormalizeListStyleType(attrs.String(AttrListStyleType)),
	}
}

// BulletListAttrsOf decodes and normalizes bullet_list attributes.
func BulletListAttrsOf(attrs model.Attrs) BulletListAttrs {
	return BulletListAttrs{ListStyleType: NormalizeListStyleType(attrs.String(AttrListStyleType))}
}

// ExtractOrderedList reads ordered_list attributes from an <ol> element.
func ExtractOrderedList(el *html.Node) OrderedListAttrs {
	return OrderedListAttrs{
		Order:         ParseOrder(model.AttrValue(el, "start")),
		ListStyleType: NormalizeListStyleType(model.StyleValue(el, "list-style-type")),
	}
}

// ExtractBulletList reads bullet_list attributes from a <ul> element.
func ExtractBulletList(el *html.Node) BulletListAttrs {
	return BulletListAttrs{ListStyleType: NormalizeListStyleType(model.StyleValue(el, "list-style-type"))}
}

// RenderOrderedList returns the <ol> element for a. start is omitted when
// the list begins at 1.
func RenderOrderedList(a OrderedListAttrs) model.DOMOutputSpec {
	var attrs []html.Attribute
	if a.Order != 1 {
		attrs = append(attrs, html.Attribute{Key: "start", Val: strconv.Itoa(a.Order)})
	}
	if a.ListStyleType != "" {
		attrs = append(attrs, listStyleAttr(a.ListStyleType))
	}
	return model.DOMOutputSpec{Tag: "ol", Attrs: attrs, Hole: true}
}

// RenderBulletList returns the <ul> element for a.
func RenderBulletList(a BulletListAttrs) model.DOMOutputSpec {
	var attrs []html.Attribute
	if a.ListStyleType != "" {
		attrs = append(attrs, listStyleAttr(a.ListStyleType))
	}
	return model.DOMOutputSpec{Tag: "ul", Attrs: attrs, Hole: true}
}

func listStyleAttr(v string) html.Attribute {
	return html.Attribute{Key: "style", Val: fmt.Sprintf("list-style-type: %s;", v)}
}

func orderedListSpec() *model.NodeSpec {
	d := OrderedListDefaults
	return &model.NodeSpec{
		Key:     KindOrderedList,
		Content: KindListItem + "+",
		Group:   "block",
		Attrs: map[string]*model.AttributeSpec{
			AttrOrder:         {Default: d.Order},
			AttrListStyleType: {Default: d.ListStyleType},
		},
		ParseDOM: []model.ParseRule{{
			Tag:      "ol",
			GetAttrs: func(el *html.Node) model.Attrs { return ExtractOrderedList(el).Attrs() },
		}},
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			return RenderOrderedList(OrderedListAttrsOf(n.Attrs))
		},
	}
}

func bulletListSpec() *model.NodeSpec {
	d := BulletListDefaults
	return &model.NodeSpec{
		Key:     KindBulletList,
		Content: KindListItem + "+",
		Group:   "block",
		Attrs: map[string]*model.AttributeSpec{
			AttrListStyleType: {Default: d.ListStyleType},
		},
		ParseDOM: []model.ParseRule{{
			Tag:      "ul",
			GetAttrs: func(el *html.Node) model.Attrs { return ExtractBulletList(el).Attrs() },
		}},
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			return RenderBulletList(BulletListAttrsOf(n.Attrs))
		},
	}
}

// listItemSpec starts from the plain list item and lets it hold a paragraph
// followed by any blocks, so lists nest.
func listItemSpec() *model.NodeSpec {
	s := list.ListItem()
	s.Content = KindParagraph + " block*"
	s.Group = "block"
	return s
}
