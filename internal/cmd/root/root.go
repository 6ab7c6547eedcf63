// Package root provides the root command for the rtdoc CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/rtdoc/internal/cmd/completion"
	"github.com/open-cli-collective/rtdoc/internal/cmd/configcmd"
	"github.com/open-cli-collective/rtdoc/internal/cmd/convert"
	initcmd "github.com/open-cli-collective/rtdoc/internal/cmd/init"
	"github.com/open-cli-collective/rtdoc/internal/cmd/schemacmd"
	"github.com/open-cli-collective/rtdoc/internal/cmd/validate"
	"github.com/open-cli-collective/rtdoc/internal/version"
	"github.com/open-cli-collective/rtdoc/internal/view"
)

// NewCmdRoot creates the root command for rtdoc.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rtdoc",
		Short: "Convert and check rich-text documents",
		Long: `rtdoc maps HTML to a typed document tree and back.

It keeps paragraph alignment and indentation, ordered list start
numbers and list style types, and renders canonical HTML from the tree.
Documents can also be read from and written to markdown and JSON.

Get started by running: rtdoc init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/rtdoc/config.yml)")
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "log debug output to stderr")

	_ = cmd.RegisterFlagCompletionFunc("output", completion.Fixed(view.ValidFormats()...))

	// Set version template
	cmd.SetVersionTemplate(version.String() + "\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(convert.NewCmdConvert())
	cmd.AddCommand(validate.NewCmdValidate())
	cmd.AddCommand(schemacmd.NewCmdSchema())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}
