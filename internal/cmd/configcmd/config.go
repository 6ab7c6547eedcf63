// Package configcmd provides config management commands.
package configcmd

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/rtdoc/internal/config"
)

// envVars lists the environment variables rtdoc reads its config from.
var envVars = []string{
	"RTDOC_OUTPUT_FORMAT", "RTDOC_DEFAULT_FROM", "RTDOC_DEFAULT_TO",
	"RTDOC_SANITIZE", "RTDOC_LOG_LEVEL", "LOG_LEVEL",
}

// NewCmdConfig creates the config command.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage rtdoc configuration",
		Long:  `Commands for viewing, testing, and clearing rtdoc configuration.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdTest())
	cmd.AddCommand(NewCmdClear())

	return cmd
}

// configPath returns the --config flag value or the default path.
func configPath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}
