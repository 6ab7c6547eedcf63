// Package validate provides the validate command.
package validate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/rtdoc/internal/cmd/cmdutil"
	"github.com/open-cli-collective/rtdoc/internal/cmd/completion"
	"github.com/open-cli-collective/rtdoc/internal/cmd/convert"
	"github.com/open-cli-collective/rtdoc/internal/view"
	"github.com/open-cli-collective/rtdoc/pkg/model"
)

// ErrInvalid is returned when the document does not conform to the schema.
var ErrInvalid = errors.New("document is invalid")

type validateOptions struct {
	global cmdutil.GlobalOptions
	file   string
	from   string
	tree   bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// Result is the JSON output of validate.
type Result struct {
	Valid bool           `json:"valid"`
	Nodes int            `json:"nodes,omitempty"`
	Kinds map[string]int `json:"kinds,omitempty"`
	Error string         `json:"error,omitempty"`
}

// NewCmdValidate creates the validate command.
func NewCmdValidate() *cobra.Command {
	opts := &validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a document against the schema",
		Long: `Check that a document conforms to the schema: every node kind is known,
required attributes are present and every node's children match its
content expression.

JSON node trees are checked as they are. HTML and markdown are parsed
first, which always yields a valid tree, so --tree is the useful part
for them.`,
		Example: `  # Validate a JSON tree
  rtdoc validate doc.json

  # Show how HTML parses
  rtdoc validate page.html --tree`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			return runValidate(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.from, "from", "f", "", "input format: html, markdown, json (default: json)")
	cmd.Flags().BoolVar(&opts.tree, "tree", false, "print the node tree")

	_ = cmd.RegisterFlagCompletionFunc("from", completion.Fixed(convert.FormatHTML, convert.FormatMarkdown, convert.FormatJSON))

	return cmd
}

func runValidate(opts *validateOptions) error {
	if opts.stdin == nil {
		opts.stdin = os.Stdin
	}
	if opts.stdout == nil {
		opts.stdout = os.Stdout
	}
	if opts.stderr == nil {
		opts.stderr = os.Stderr
	}

	env, err := cmdutil.Setup(opts.global, opts.stdout, opts.stderr)
	if err != nil {
		return err
	}

	from := opts.from
	if from == "" {
		from = cmdutil.FormatFromPath(opts.file)
	}
	if from == "" {
		from = convert.FormatJSON
	}

	input, err := cmdutil.ReadInput(cmdutil.InputOptions{File: opts.file, Stdin: opts.stdin})
	if err != nil {
		return err
	}

	doc, err := convert.Decode(input, from, false, env.Logger.Desugar())
	if err != nil {
		env.Logger.Debugw("validation failed", "error", err)
		if env.Format() == view.FormatJSON {
			if rerr := env.Renderer.RenderJSON(Result{Error: err.Error()}); rerr != nil {
				return rerr
			}
		} else {
			env.Renderer.Error(err.Error())
		}
		return ErrInvalid
	}

	kinds := CountKinds(doc)
	total := 0
	for _, n := range kinds {
		total += n
	}

	if env.Format() == view.FormatJSON {
		if opts.tree {
			return env.Renderer.RenderTree(doc)
		}
		return env.Renderer.RenderJSON(Result{Valid: true, Nodes: total, Kinds: kinds})
	}

	env.Renderer.Success(fmt.Sprintf("valid document (%d nodes)", total))
	if opts.tree {
		return env.Renderer.RenderTree(doc)
	}
	if env.Format() == view.FormatTable {
		env.Renderer.RenderTable([]string{"KIND", "COUNT"}, kindRows(kinds))
	}
	return nil
}

// CountKinds counts the nodes of each kind in doc, doc itself included.
func CountKinds(doc *model.Node) map[string]int {
	counts := map[string]int{}
	var walk func(n *model.Node)
	walk = func(n *model.Node) {
		counts[n.Type]++
		for _, c := range n.Content {
			walk(c)
		}
	}
	walk(doc)
	return counts
}

func kindRows(kinds map[string]int) [][]string {
	names := make([]string, 0, len(kinds))
	for k := range kinds {
		names = append(names, k)
	}
	sort.Strings(names)

	rows := make([][]string, 0, len(names))
	for _, k := range names {
		rows = append(rows, []string{k, strconv.Itoa(kinds[k])})
	}
	return rows
}
