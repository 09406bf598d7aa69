package pyproject

import (
	"errors"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/flake518/flake518/internal/logging"
)

// ErrAlreadyConfigured is returned by WriteScaffold when the file already
// carries a [tool.flake8] or [tool.flake518] table.
var ErrAlreadyConfigured = errors.New("pyproject.toml already contains flake8 configuration")

// WriteScaffold adds a [tool.flake518] table with the given options to the
// pyproject.toml at path, creating the file if it does not exist. The
// table is appended as a new block so the rest of the file is left
// byte-for-byte untouched.
func WriteScaffold(path string, options Section) error {
	logger := logging.GetLogger("pyproject").With().Str("path", path).Logger()

	existing, err := ReadLinterConfig(path)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return ErrAlreadyConfigured
	}

	block, err := toml.Marshal(map[string]any{
		toolKey: map[string]any{"flake518": map[string]any(options)},
	})
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	content := block
	if info, err := file.Stat(); err == nil && info.Size() > 0 {
		content = append([]byte("\n"), block...)
	}

	if _, err := file.Write(content); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	logger.Debug().Int("options", len(options)).Msg("Wrote [tool.flake518] table")
	return nil
}
