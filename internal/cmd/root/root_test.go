package root

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	for _, v := range []string{"RTDOC_OUTPUT_FORMAT", "RTDOC_DEFAULT_FROM", "RTDOC_DEFAULT_TO",
		"RTDOC_SANITIZE", "RTDOC_LOG_LEVEL", "LOG_LEVEL"} {
		t.Setenv(v, "")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cmd := NewCmdRoot()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	if args[0] != "__complete" {
		args = append(args, "--no-color")
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNewCmdRoot(t *testing.T) {
	cmd := NewCmdRoot()
	assert.Equal(t, "rtdoc", cmd.Use)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"init", "convert", "validate", "schema", "config", "completion"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"config", "output", "no-color", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "rtdoc version dev")
}

func TestConvertEndToEnd(t *testing.T) {
	out, err := execute(t, `<p style="text-align: justify">J</p><ul><li>a</li></ul>`, "convert", "-")
	require.NoError(t, err)
	assert.Equal(t, `<p style="text-align: justify;">J</p><ul><li><p>a</p></li></ul>`, strings.TrimSpace(out))
}

func TestValidateEndToEnd(t *testing.T) {
	out, err := execute(t, `{"type":"doc","content":[{"type":"paragraph"}]}`, "validate", "-", "-o", "plain")
	require.NoError(t, err)
	assert.Contains(t, out, "valid document (2 nodes)")
}

func TestSchemaKindCompletion(t *testing.T) {
	out, err := execute(t, "", "__complete", "schema", "show", "")
	require.NoError(t, err)
	assert.Contains(t, out, "ordered_list")
	assert.Contains(t, out, "list_item")
	assert.NotContains(t, out, "hard_break")
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := execute(t, "", "schema", "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}
