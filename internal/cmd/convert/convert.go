// Package convert provides the convert command.
package convert

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/rtdoc/internal/cmd/cmdutil"
	"github.com/open-cli-collective/rtdoc/internal/cmd/completion"
	"github.com/open-cli-collective/rtdoc/pkg/md"
	"github.com/open-cli-collective/rtdoc/pkg/model"
	"github.com/open-cli-collective/rtdoc/pkg/sanitize"
	"github.com/open-cli-collective/rtdoc/pkg/schema"
)

// Document formats accepted by --from and --to.
const (
	FormatHTML     = "html"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

var formats = []string{FormatHTML, FormatMarkdown, FormatJSON}

type convertOptions struct {
	global   cmdutil.GlobalOptions
	file     string
	from     string
	to       string
	sanitize bool
	editor   bool

	// sanitizeSet is true when --sanitize was given and beats the config.
	sanitizeSet bool

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCmdConvert creates the convert command.
func NewCmdConvert() *cobra.Command {
	opts := &convertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a document between HTML, markdown and JSON",
		Long: `Convert a rich-text document between formats.

Input is read from the file argument, from stdin when piped (or when the
file is "-"), and otherwise from your $EDITOR. HTML is normalized through
the document schema: paragraph alignment and indentation, ordered list
start numbers and list style types are kept, everything the schema has no
kind for is reduced to its text.

The input format defaults to the file extension (.html, .md, .json and
the like), then to the configured default_from, then to html.`,
		Example: `  # Normalize HTML
  rtdoc convert page.html

  # HTML to the JSON node tree
  rtdoc convert page.html --to json

  # Markdown from stdin to HTML, sanitizing first
  cat notes.md | rtdoc convert --from markdown --sanitize

  # Write a document in your editor
  rtdoc convert --editor --from markdown --to html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.global = cmdutil.Globals(cmd)
			if len(args) > 0 {
				opts.file = args[0]
			}
			opts.stdin = cmd.InOrStdin()
			opts.stdout = cmd.OutOrStdout()
			opts.stderr = cmd.ErrOrStderr()
			opts.sanitizeSet = cmd.Flags().Changed("sanitize")
			return runConvert(opts)
		},
	}

	cmd.Flags().StringVarP(&opts.from, "from", "f", "", "input format: html, markdown, json")
	cmd.Flags().StringVarP(&opts.to, "to", "t", "", "output format: html, markdown, json (default: html)")
	cmd.Flags().BoolVar(&opts.sanitize, "sanitize", false, "sanitize HTML input before parsing")
	cmd.Flags().BoolVarP(&opts.editor, "editor", "e", false, "write the input in $EDITOR")

	_ = cmd.RegisterFlagCompletionFunc("from", completion.Fixed(formats...))
	_ = cmd.RegisterFlagCompletionFunc("to", completion.Fixed(formats...))

	return cmd
}

func runConvert(opts *convertOptions) error {
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
	defer func() { _ = env.Logger.Sync() }()

	from := firstNonEmpty(opts.from, cmdutil.FormatFromPath(opts.file), env.Config.DefaultFrom, FormatHTML)
	to := firstNonEmpty(opts.to, env.Config.DefaultTo, FormatHTML)
	if err := checkFormat("--from", from); err != nil {
		return err
	}
	if err := checkFormat("--to", to); err != nil {
		return err
	}
	if !opts.sanitizeSet {
		opts.sanitize = env.Config.Sanitize
	}

	input, err := cmdutil.ReadInput(cmdutil.InputOptions{
		File:   opts.file,
		Stdin:  opts.stdin,
		Editor: opts.editor,
		Ext:    extension(from),
	})
	if err != nil {
		return err
	}

	env.Logger.Debugw("converting", "from", from, "to", to, "bytes", len(input), "sanitize", opts.sanitize)

	doc, err := Decode(input, from, opts.sanitize, env.Logger.Desugar())
	if err != nil {
		return err
	}

	if to == FormatMarkdown {
		for _, loss := range md.Lossy(doc) {
			env.Logger.Warnw("markdown cannot express attributes", "node", loss)
		}
	}

	out, err := Encode(doc, to)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(opts.stdout, out)
	return err
}

// Decode turns input in the given format into a document. HTML and
// markdown input go through the schema parser; JSON input is checked
// against the schema.
func Decode(input, from string, clean bool, logger *zap.Logger) (*model.Node, error) {
	switch from {
	case FormatJSON:
		return schema.Schema.NodeFromJSON([]byte(input))
	case FormatMarkdown:
		html, err := md.ToHTML([]byte(input))
		if err != nil {
			return nil, fmt.Errorf("failed to convert markdown: %w", err)
		}
		input = html
	case FormatHTML:
	default:
		return nil, fmt.Errorf("unknown input format %q", from)
	}

	var r io.Reader = strings.NewReader(input)
	if clean {
		r = sanitize.Reader(r)
	}
	return schema.NewParser(model.WithLogger(logger)).Parse(r)
}

// Encode renders doc in the given format.
func Encode(doc *model.Node, to string) (string, error) {
	switch to {
	case FormatHTML:
		return schema.RenderHTML(doc)
	case FormatMarkdown:
		return md.FromDocument(doc)
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
	return "", fmt.Errorf("unknown output format %q", to)
}

func checkFormat(flag, format string) error {
	for _, f := range formats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("invalid %s format %q (valid formats: %s)", flag, format, strings.Join(formats, ", "))
}

func extension(format string) string {
	switch format {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	}
	return ".html"
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
