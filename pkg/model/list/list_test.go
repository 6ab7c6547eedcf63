package list

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/rtdoc/pkg/model"
	"github.com/open-cli-collective/rtdoc/pkg/model/basic"
)

func TestAddListNodes(t *testing.T) {
	nodes := AddListNodes(basic.Nodes(), "paragraph block*", "block")

	n := len(nodes)
	require.Greater(t, n, 3)
	tail := nodes[n-3:]
	assert.Equal(t, "ordered_list", tail[0].Key)
	assert.Equal(t, "bullet_list", tail[1].Key)
	assert.Equal(t, "list_item", tail[2].Key)

	assert.Equal(t, "list_item+", tail[0].Content)
	assert.Equal(t, "block", tail[1].Group)
	assert.Equal(t, "paragraph block*", tail[2].Content)
	assert.Empty(t, tail[2].Group)

	_, err := model.NewSchema(nodes)
	assert.NoError(t, err)
}

func TestListItemDefaults(t *testing.T) {
	item := ListItem()
	assert.Equal(t, "block", item.Content)
	assert.True(t, item.Defining)
	assert.Empty(t, item.Attrs)

	out := item.ToDOM(&model.Node{Type: "list_item"})
	assert.Equal(t, model.DOMOutputSpec{Tag: "li", Hole: true}, out)
}

func TestOrderedListToDOM(t *testing.T) {
	spec := OrderedList()

	assert.Empty(t, spec.ToDOM(&model.Node{Attrs: model.Attrs{"order": 1}}).Attrs)
	out := spec.ToDOM(&model.Node{Attrs: model.Attrs{"order": 7.0}})
	require.Len(t, out.Attrs, 1)
	assert.Equal(t, "7", out.Attrs[0].Val)
}
