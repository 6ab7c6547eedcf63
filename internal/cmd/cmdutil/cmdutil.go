// Package cmdutil holds the setup shared by rtdoc commands: global flags,
// configuration, logging and reading input documents.
package cmdutil

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/open-cli-collective/rtdoc/internal/config"
	"github.com/open-cli-collective/rtdoc/internal/logging"
	"github.com/open-cli-collective/rtdoc/internal/view"
)

// GlobalOptions are the persistent flags of the root command.
type GlobalOptions struct {
	ConfigPath string
	Output     string
	NoColor    bool
	Verbose    bool

	outputSet bool
}

// Globals reads the persistent flags from cmd.
func Globals(cmd *cobra.Command) GlobalOptions {
	var g GlobalOptions
	g.ConfigPath, _ = cmd.Flags().GetString("config")
	g.Output, _ = cmd.Flags().GetString("output")
	g.NoColor, _ = cmd.Flags().GetBool("no-color")
	g.Verbose, _ = cmd.Flags().GetBool("verbose")
	if f := cmd.Flags().Lookup("output"); f != nil {
		g.outputSet = f.Changed
	}
	return g
}

// Env is what a command needs to run.
type Env struct {
	Config   *config.Config
	Logger   *zap.SugaredLogger
	Renderer *view.Renderer
	Out      io.Writer
	Err      io.Writer
}

// Setup loads and validates the configuration and builds the logger and
// renderer. An --output flag given on the command line beats the
// configured output format.
func Setup(g GlobalOptions, out, errOut io.Writer) (*Env, error) {
	path := g.ConfigPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadWithEnv(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w (run 'rtdoc init' to configure)", err)
	}

	format := g.Output
	if !g.outputSet && cfg.OutputFormat != "" {
		format = cfg.OutputFormat
	}
	if err := view.ValidateFormat(format); err != nil {
		return nil, err
	}
	if format == "" {
		format = string(view.FormatTable)
	}

	level := cfg.LogLevel
	if g.Verbose {
		level = "debug"
	}
	logger, err := logging.New(errOut, level)
	if err != nil {
		return nil, err
	}

	renderer := view.NewRenderer(view.Format(format), g.NoColor)
	renderer.SetWriter(out)

	return &Env{Config: cfg, Logger: logger, Renderer: renderer, Out: out, Err: errOut}, nil
}

// Format returns the output format the renderer was built with.
func (e *Env) Format() view.Format {
	return e.Renderer.Format()
}

// IsPiped reports whether r is something other than a terminal.
func IsPiped(r io.Reader) bool {
	if r == nil {
		return false
	}
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice == 0
}
