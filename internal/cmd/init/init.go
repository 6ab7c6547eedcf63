// Package init provides the init command for rtdoc.
package init

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/rtdoc/internal/config"
	"github.com/open-cli-collective/rtdoc/internal/logging"
)

type initOptions struct {
	configPath string
	prefill    config.Config
	noInput    bool
	force      bool
	out        io.Writer
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize rtdoc configuration",
		Long: `Initialize rtdoc with your preferred defaults.

This command will guide you through choosing an output format, the
default input and output document formats, HTML sanitizing and the log
level. The configuration will be saved to ~/.config/rtdoc/config.yml.`,
		Example: `  # Interactive setup
  rtdoc init

  # Non-interactive
  rtdoc init --no-input --default-from markdown --sanitize`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.configPath, _ = cmd.Flags().GetString("config")
			if opts.configPath == "" {
				opts.configPath = config.DefaultConfigPath()
			}
			opts.out = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.prefill.OutputFormat, "output-format", "", "output format: table, json, plain")
	cmd.Flags().StringVar(&opts.prefill.DefaultFrom, "default-from", "", "default input format: html, markdown, json")
	cmd.Flags().StringVar(&opts.prefill.DefaultTo, "default-to", "", "default output format: html, markdown, json")
	cmd.Flags().BoolVar(&opts.prefill.Sanitize, "sanitize", false, "sanitize HTML input by default")
	cmd.Flags().StringVar(&opts.prefill.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&opts.noInput, "no-input", false, "skip the prompts and save the flag values")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing configuration without asking")

	return cmd
}

func runInit(opts *initOptions) error {
	if opts.out == nil {
		opts.out = os.Stdout
	}

	// Check if config already exists
	if _, err := os.Stat(opts.configPath); err == nil && !opts.force {
		if opts.noInput {
			return fmt.Errorf("configuration already exists at %s (use --force to overwrite)", opts.configPath)
		}
		var overwrite bool
		err := huh.NewConfirm().
			Title("Configuration already exists").
			Description(fmt.Sprintf("Overwrite %s?", opts.configPath)).
			Value(&overwrite).
			Run()
		if err != nil {
			return err
		}
		if !overwrite {
			fmt.Fprintln(opts.out, "Initialization cancelled.")
			return nil
		}
	}

	cfg := withDefaults(opts.prefill)

	if !opts.noInput {
		if err := newForm(&cfg).Run(); err != nil {
			return err
		}
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Save configuration
	if err := cfg.Save(opts.configPath); err != nil {
		return err
	}

	fmt.Fprintf(opts.out, "\nConfiguration saved to %s\n", opts.configPath)
	fmt.Fprintln(opts.out, "\nYou're all set! Try running:")
	fmt.Fprintln(opts.out, "  rtdoc schema list")
	fmt.Fprintln(opts.out, "  rtdoc convert page.html --to json")

	return nil
}

// withDefaults fills the fields the user left empty.
func withDefaults(cfg config.Config) config.Config {
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = "table"
	}
	if cfg.DefaultFrom == "" {
		cfg.DefaultFrom = "html"
	}
	if cfg.DefaultTo == "" {
		cfg.DefaultTo = "html"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = logging.DefaultLevel
	}
	return cfg
}

func newForm(cfg *config.Config) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Output format").
				Description("How commands print tables and results").
				Options(huh.NewOptions("table", "json", "plain")...).
				Value(&cfg.OutputFormat),

			huh.NewSelect[string]().
				Title("Default input format").
				Description("Used when --from is not given and the file extension does not tell").
				Options(documentFormats()...).
				Value(&cfg.DefaultFrom),

			huh.NewSelect[string]().
				Title("Default output format").
				Description("Used when --to is not given").
				Options(documentFormats()...).
				Value(&cfg.DefaultTo),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Sanitize HTML input?").
				Description("Strip scripts, event handlers and unsafe attributes before parsing").
				Value(&cfg.Sanitize),

			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&cfg.LogLevel),
		),
	)
}

func documentFormats() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("HTML", "html"),
		huh.NewOption("Markdown", "markdown"),
		huh.NewOption("JSON node tree", "json"),
	}
}
