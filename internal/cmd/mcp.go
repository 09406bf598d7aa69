package cmd

import (
	"github.com/spf13/cobra"

	"github.com/flake518/flake518/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start a MCP server exposing flake8 over stdio",
	Long: `Start a Model Context Protocol server on stdio.

The server exposes two tools to coding agents: show_config returns the
flake8 configuration resolved from pyproject.toml, and run_flake8 runs
flake8 with that configuration injected.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.NewServer(version).Start(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
