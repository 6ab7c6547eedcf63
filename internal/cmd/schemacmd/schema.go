// Package schemacmd provides commands that describe the document schema.
package schemacmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/rtdoc/internal/cmd/cmdutil"
	"github.com/open-cli-collective/rtdoc/internal/cmd/completion"
	"github.com/open-cli-collective/rtdoc/internal/view"
	"github.com/open-cli-collective/rtdoc/pkg/model"
	"github.com/open-cli-collective/rtdoc/pkg/schema"
)

// KindInfo describes one node kind.
type KindInfo struct {
	Kind     string                 `json:"kind"`
	Groups   []string               `json:"groups,omitempty"`
	Content  string                 `json:"content,omitempty"`
	Inline   bool                   `json:"inline,omitempty"`
	Defining bool                   `json:"defining,omitempty"`
	Attrs    map[string]interface{} `json:"attrs,omitempty"`
	Required []string               `json:"required,omitempty"`
	Parses   []string               `json:"parses,omitempty"`
}

// NewCmdSchema creates the schema command.
func NewCmdSchema() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Describe the document schema",
		Long:  `Commands for listing the node kinds of the document schema and inspecting one kind.`,
	}

	cmd.AddCommand(newCmdList())
	cmd.AddCommand(newCmdShow())

	return cmd
}

type schemaOptions struct {
	global cmdutil.GlobalOptions
	kind   string
	stdout io.Writer
}

func newCmdList() *cobra.Command {
	opts := &schemaOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List node kinds",
		Long:    `List the node kinds of the schema in order, with their groups, content expressions and attribute defaults.`,
		Example: `  # List kinds
  rtdoc schema list

  # As JSON
  rtdoc schema list -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.stdout = cmd.OutOrStdout()
			return runList(opts)
		},
	}

	return cmd
}

func newCmdShow() *cobra.Command {
	opts := &schemaOptions{}

	cmd := &cobra.Command{
		Use:   "show <kind>",
		Short: "Show one node kind",
		Example: `  # Show the paragraph kind
  rtdoc schema show paragraph`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: completion.Fixed(schema.Kinds()...),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			opts.kind = args[0]
			opts.stdout = cmd.OutOrStdout()
			return runShow(opts)
		},
	}

	return cmd
}

func runList(opts *schemaOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}
	env, err := cmdutil.Setup(opts.global, opts.stdout, os.Stderr)
	if err != nil {
		return err
	}

	infos := Describe(schema.Schema)
	if env.Format() == view.FormatJSON {
		return env.Renderer.RenderJSON(infos)
	}

	headers := []string{"KIND", "GROUP", "CONTENT", "ATTRS"}
	var rows [][]string
	for _, info := range infos {
		rows = append(rows, []string{
			info.Kind,
			orDash(strings.Join(info.Groups, " ")),
			orDash(info.Content),
			orDash(strings.Join(formatAttrs(info), " ")),
		})
	}
	env.Renderer.RenderTable(headers, rows)

	if env.Format() == view.FormatTable {
		fmt.Fprintf(opts.stdout, "\nExcluded: %s\n", strings.Join(schema.ExcludedKinds, ", "))
	}
	return nil
}

func runShow(opts *schemaOptions) error {
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}
	env, err := cmdutil.Setup(opts.global, opts.stdout, os.Stderr)
	if err != nil {
		return err
	}

	spec, ok := schema.Schema.Spec(opts.kind)
	if !ok {
		return fmt.Errorf("%w %q (kinds: %s)", model.ErrUnknownKind, opts.kind, strings.Join(schema.Kinds(), ", "))
	}
	info := describeSpec(spec)

	if env.Format() == view.FormatJSON {
		return env.Renderer.RenderJSON(info)
	}

	env.Renderer.RenderKeyValue("Kind", info.Kind)
	env.Renderer.RenderKeyValue("Group", orDash(strings.Join(info.Groups, " ")))
	env.Renderer.RenderKeyValue("Content", orDash(info.Content))
	env.Renderer.RenderKeyValue("Inline", fmt.Sprint(info.Inline))
	env.Renderer.RenderKeyValue("Attrs", orDash(strings.Join(formatAttrs(info), " ")))
	env.Renderer.RenderKeyValue("Parses", orDash(strings.Join(info.Parses, ", ")))
	return nil
}

// Describe returns the kinds of s in schema order.
func Describe(s *model.Schema) []KindInfo {
	var out []KindInfo
	for _, kind := range s.Kinds() {
		spec, _ := s.Spec(kind)
		out = append(out, describeSpec(spec))
	}
	return out
}

func describeSpec(spec *model.NodeSpec) KindInfo {
	info := KindInfo{
		Kind:     spec.Key,
		Groups:   spec.Groups(),
		Content:  spec.Content,
		Inline:   spec.Inline,
		Defining: spec.Defining,
	}
	if len(spec.Attrs) > 0 {
		info.Attrs = make(map[string]interface{}, len(spec.Attrs))
		for name, a := range spec.Attrs {
			if a.Required {
				info.Required = append(info.Required, name)
				continue
			}
			info.Attrs[name] = a.Default
		}
		sort.Strings(info.Required)
	}
	for _, rule := range spec.ParseDOM {
		tag := rule.Tag
		switch {
		case rule.Skip:
			tag += " (skip)"
		case rule.Ignore:
			tag += " (ignore)"
		}
		info.Parses = append(info.Parses, tag)
	}
	return info
}

// formatAttrs renders required attributes as name! followed by the others as
// name=default, each part sorted by name.
func formatAttrs(info KindInfo) []string {
	out := make([]string, 0, len(info.Required)+len(info.Attrs))
	for _, name := range info.Required {
		out = append(out, name+"!")
	}

	names := make([]string, 0, len(info.Attrs))
	for name := range info.Attrs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if v := info.Attrs[name]; v != nil {
			out = append(out, fmt.Sprintf("%s=%v", name, v))
		} else {
			out = append(out, name)
		}
	}
	return out
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
