package configcmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/rtdoc/internal/config"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long:  `Display the current rtdoc configuration with value source indicators.`,
		Example: `  # Show current config
  rtdoc config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			return runShow(cmd.OutOrStdout(), configPath(cmd), noColor)
		},
	}

	return cmd
}

func runShow(w io.Writer, configPath string, noColor bool) error {
	if noColor {
		color.NoColor = true
	}

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	// Load full config with env overrides
	cfg, _ := config.LoadWithEnv(configPath)

	bold := color.New(color.Bold)
	dim := color.New(color.Faint)

	printField := func(label, value, fileValue string, envVars ...string) {
		_, _ = bold.Fprintf(w, "%-14s", label+":")
		if value == "" {
			_, _ = dim.Fprintln(w, "-")
			return
		}

		fmt.Fprint(w, value)

		// Determine source
		source := "config"
		if fileErr != nil {
			source = "-"
		}
		for _, envVar := range envVars {
			if v := os.Getenv(envVar); v != "" {
				source = envVar
				break
			}
		}
		if fileValue != value && source == "config" {
			source = "-"
		}

		_, _ = dim.Fprintf(w, "  (source: %s)\n", source)
	}

	printField("Output", cfg.OutputFormat, fileCfg.OutputFormat, "RTDOC_OUTPUT_FORMAT")
	printField("From", cfg.DefaultFrom, fileCfg.DefaultFrom, "RTDOC_DEFAULT_FROM")
	printField("To", cfg.DefaultTo, fileCfg.DefaultTo, "RTDOC_DEFAULT_TO")
	printField("Sanitize", boolField(cfg.Sanitize), boolField(fileCfg.Sanitize), "RTDOC_SANITIZE")
	printField("Log level", cfg.LogLevel, fileCfg.LogLevel, "RTDOC_LOG_LEVEL", "LOG_LEVEL")

	fmt.Fprintln(w)
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}

// boolField shows only true; false is the unset value.
func boolField(v bool) string {
	if !v {
		return ""
	}
	return strconv.FormatBool(v)
}
