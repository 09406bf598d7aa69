package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/flake518/flake518/internal/flake8"
	"github.com/flake518/flake518/internal/pyproject"
	"github.com/flake518/flake518/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Add a [tool.flake518] table to pyproject.toml",
	Long: `Interactively scaffold a [tool.flake518] table into the pyproject.toml
in the current directory, creating the file if it does not exist.

This is the only flake518 command that writes to pyproject.toml; plain
flake518 runs never modify it. Existing [tool.flake8] or [tool.flake518]
tables are left alone.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := flake8.NewRunner().CheckAvailability(cmd.Context()); err != nil {
			fmt.Fprintln(os.Stderr, ui.Warn("flake8 is not available; writing the configuration anyway"))
		}

		options, err := promptOptions()
		if err != nil {
			return err
		}

		confirmPrompt := promptui.Prompt{
			Label:     fmt.Sprintf("Write [tool.flake518] to %s", pyproject.FileName),
			IsConfirm: true,
		}
		if result, err := confirmPrompt.Run(); err != nil || strings.ToLower(result) == "n" {
			fmt.Println("Aborted, nothing written")
			return nil
		}

		if err := pyproject.WriteScaffold(pyproject.FileName, options); err != nil {
			return err
		}

		fmt.Println(ui.OK(fmt.Sprintf("Wrote [tool.flake518] to %s", pyproject.FileName)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}

// promptOptions collects the initial flake8 options interactively.
func promptOptions() (pyproject.Section, error) {
	options := pyproject.Section{}

	lengthPrompt := promptui.Prompt{
		Label:   "Maximum line length",
		Default: "79",
		Validate: func(input string) error {
			if _, err := strconv.Atoi(input); err != nil {
				return fmt.Errorf("must be a number")
			}
			return nil
		},
	}
	length, err := lengthPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt aborted: %w", err)
	}
	maxLineLength, _ := strconv.Atoi(length)
	options["max-line-length"] = maxLineLength

	selectPrompt := promptui.Prompt{
		Label: "Select (comma-separated codes, empty for flake8's default)",
	}
	selected, err := selectPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt aborted: %w", err)
	}
	if codes := splitCodes(selected); len(codes) > 0 {
		options["select"] = codes
	}

	ignorePrompt := promptui.Prompt{
		Label: "Extend ignore (comma-separated codes, empty to skip)",
	}
	ignore, err := ignorePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt aborted: %w", err)
	}
	if codes := splitCodes(ignore); len(codes) > 0 {
		options["extend-ignore"] = codes
	}

	return options, nil
}

// splitCodes turns "E203, W503" into a TOML-friendly list.
func splitCodes(input string) []any {
	var codes []any
	for _, code := range strings.Split(input, ",") {
		if trimmed := strings.TrimSpace(code); trimmed != "" {
			codes = append(codes, trimmed)
		}
	}
	return codes
}
