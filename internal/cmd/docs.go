package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/flake518/flake518/internal/ui"
)

const optionsDocsURL = "https://flake8.pycqa.org/en/latest/user/options.html"

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "Open the flake8 options documentation in a browser",
	Long: `Open the flake8 options documentation in the default browser.

Every option listed there can be set under [tool.flake8] or
[tool.flake518] in pyproject.toml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := browser.OpenURL(optionsDocsURL); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warn(fmt.Sprintf("Could not open browser: %v", err)))
			fmt.Fprintf(os.Stderr, "Please manually open: %s\n", optionsDocsURL)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)
}
