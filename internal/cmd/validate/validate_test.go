package validate

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/rtdoc/internal/cmd/cmdutil"
	"github.com/open-cli-collective/rtdoc/pkg/model"
)

const validDoc = `{"type":"doc","content":[
	{"type":"paragraph","attrs":{"align":"center"},"content":[{"type":"text","text":"Hi"}]},
	{"type":"bullet_list","content":[{"type":"list_item","content":[{"type":"paragraph"}]}]}
]}`

func clearEnv(t *testing.T) {
	t.Helper()
	for _, v := range []string{"RTDOC_OUTPUT_FORMAT", "RTDOC_DEFAULT_FROM", "RTDOC_DEFAULT_TO",
		"RTDOC_SANITIZE", "RTDOC_LOG_LEVEL", "LOG_LEVEL"} {
		t.Setenv(v, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func run(t *testing.T, opts *validateOptions, stdin string) (string, error) {
	t.Helper()
	clearEnv(t)
	var out bytes.Buffer
	opts.global.NoColor = true
	opts.file = "-"
	opts.stdin = strings.NewReader(stdin)
	opts.stdout = &out
	opts.stderr = &bytes.Buffer{}
	err := runValidate(opts)
	return out.String(), err
}

func TestRunValidate_Valid(t *testing.T) {
	out, err := run(t, &validateOptions{}, validDoc)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ valid document (6 nodes)")
	assert.Contains(t, out, "KIND")
	assert.Contains(t, out, "list_item")
}

func TestRunValidate_JSON(t *testing.T) {
	opts := &validateOptions{global: cmdutil.GlobalOptions{Output: "json"}}
	out, err := run(t, opts, validDoc)
	require.NoError(t, err)

	var res Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.True(t, res.Valid)
	assert.Equal(t, 6, res.Nodes)
	assert.Equal(t, 2, res.Kinds["paragraph"])
	assert.Equal(t, 1, res.Kinds["text"])
}

func TestRunValidate_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "unknown kind",
			input:   `{"type":"doc","content":[{"type":"hard_break"}]}`,
			wantMsg: `unknown node kind "hard_break"`,
		},
		{
			name:    "list without items",
			input:   `{"type":"doc","content":[{"type":"ordered_list"}]}`,
			wantMsg: "doc > ordered_list[0]",
		},
		{
			name:    "list item must start with a paragraph",
			input:   `{"type":"doc","content":[{"type":"bullet_list","content":[{"type":"list_item","content":[{"type":"bullet_list","content":[]}]}]}]}`,
			wantMsg: "list_item",
		},
		{
			name:    "malformed json",
			input:   `{"type":`,
			wantMsg: "failed to decode document",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, &validateOptions{}, tt.input)
			require.ErrorIs(t, err, ErrInvalid)
			assert.Contains(t, out, "✗ ")
			assert.Contains(t, out, tt.wantMsg)
		})
	}
}

func TestRunValidate_InvalidJSONOutput(t *testing.T) {
	opts := &validateOptions{global: cmdutil.GlobalOptions{Output: "json"}}
	out, err := run(t, opts, `{"type":"doc","content":[{"type":"table"}]}`)
	require.ErrorIs(t, err, ErrInvalid)

	var res Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.False(t, res.Valid)
	assert.Contains(t, res.Error, "table")
}

func TestRunValidate_HTMLTree(t *testing.T) {
	opts := &validateOptions{from: "html", tree: true, global: cmdutil.GlobalOptions{Output: "plain"}}
	out, err := run(t, opts, `<ol start="2"><li>x</li></ol>`)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ valid document (5 nodes)")
	assert.Contains(t, out, "doc\n  ordered_list")
	assert.Contains(t, out, "order=2")
	assert.Contains(t, out, `      text "x"`)
}

func TestCountKinds(t *testing.T) {
	doc := &model.Node{Type: "doc", Content: []*model.Node{
		{Type: "paragraph", Content: []*model.Node{{Type: "text", Text: "a"}, {Type: "text", Text: "b"}}},
		{Type: "paragraph"},
	}}
	assert.Equal(t, map[string]int{"doc": 1, "paragraph": 2, "text": 2}, CountKinds(doc))
}
