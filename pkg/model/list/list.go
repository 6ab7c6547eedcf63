// Package list defines the plain list node kinds: ordered_list, bullet_list
// and list_item. Schemas that nest lists give list items a shape like
// "paragraph block*".
package list

import (
	"strconv"

	"golang.org/x/net/html"

	"github.com/open-cli-collective/rtdoc/pkg/model"
)

// OrderedList returns the <ol> spec. Its single attribute, order, is the
// number the list starts counting at and defaults to 1.
func OrderedList() *model.NodeSpec {
	return &model.NodeSpec{
		Key:   "ordered_list",
		Attrs: map[string]*model.AttributeSpec{"order": {Default: 1}},
		ParseDOM: []model.ParseRule{{
			Tag: "ol",
			GetAttrs: func(el *html.Node) model.Attrs {
				order, err := strconv.Atoi(model.AttrValue(el, "start"))
				if err != nil {
					order = 1
				}
				return model.Attrs{"order": order}
			},
		}},
		ToDOM: func(n *model.Node) model.DOMOutputSpec {
			spec := model.DOMOutputSpec{Tag: "ol", Hole: true}
			if order := n.Attrs.Int("order"); order != 1 {
				spec.Attrs = []html.Attribute{{Key: "start", Val: strconv.Itoa(order)}}
			}
			return spec
		},
	}
}

// BulletList returns the <ul> spec.
func BulletList() *model.NodeSpec {
	return &model.NodeSpec{
		Key:      "bullet_list",
		ParseDOM: []model.ParseRule{{Tag: "ul"}},
		ToDOM: func(*model.Node) model.DOMOutputSpec {
			return model.DOMOutputSpec{Tag: "ul", Hole: true}
		},
	}
}

// ListItem returns the <li> spec. It has no attributes, no group and a
// single block as content until a schema says otherwise.
func ListItem() *model.NodeSpec {
	return &model.NodeSpec{
		Key:      "list_item",
		Content:  "block",
		Defining: true,
		ParseDOM: []model.ParseRule{{Tag: "li"}},
		ToDOM: func(*model.Node) model.DOMOutputSpec {
			return model.DOMOutputSpec{Tag: "li", Hole: true}
		},
	}
}

// AddListNodes appends the three list kinds to nodes. itemContent is the
// content expression of list items and listGroup, when set, the group of
// the two list kinds.
func AddListNodes(nodes []*model.NodeSpec, itemContent, listGroup string) []*model.NodeSpec {
	ordered, bullet, item := OrderedList(), BulletList(), ListItem()
	ordered.Content = "list_item+"
	bullet.Content = "list_item+"
	ordered.Group = listGroup
	bullet.Group = listGroup
	if itemContent != "" {
		item.Content = itemContent
	}
	return append(nodes, ordered, bullet, item)
}
