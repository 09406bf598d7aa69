package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flake518/flake518/internal/adapter"
	"github.com/flake518/flake518/internal/flake8"
	"github.com/flake518/flake518/internal/logging"
	"github.com/flake518/flake518/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "flake518 [flake8 arguments]",
	Short: "Run flake8 configured from pyproject.toml",
	Long: `flake518 is a small wrapper around flake8 that reads its configuration
from pyproject.toml instead of setup.cfg or tox.ini.

It searches upward from the current directory for a pyproject.toml, merges
the [tool.flake8] and [tool.flake518] tables, writes them to a temporary
config file and calls flake8 with that file injected via --config. All
arguments are passed to flake8 unchanged, and the exit code is flake8's
own.`,
	Args: cobra.ArbitraryArgs,
	// Every flag belongs to flake8, including --help.
	DisableFlagParsing: true,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(os.Getenv)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		a := adapter.New(flake8.NewRunner())

		code, err := a.Run(cmd.Context(), args)
		if err != nil {
			return err
		}
		if code != 0 {
			os.Exit(code)
		}
		return nil
	},
}

// Execute runs the root command and exits non-zero on adapter failure.
// flake8's own exit code is passed through by the root RunE.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
		os.Exit(1)
	}
}
