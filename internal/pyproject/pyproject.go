// Package pyproject locates a project's pyproject.toml and extracts the
// flake8-related tool tables from it.
package pyproject

import (
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/flake518/flake518/internal/logging"
)

// FileName is the canonical configuration file name.
const FileName = "pyproject.toml"

// toolKey is the top-level grouping all tool configuration lives under.
const toolKey = "tool"

// canonicalSection is the single section name the merged configuration is
// rewrapped under before serialization. flake8 only reads this section
// from its config files.
const canonicalSection = "flake8"

// sectionNames are the recognized tool tables, in merge order. Keys in a
// later table override keys in an earlier one, so [tool.flake518] wins
// over [tool.flake8] on conflict.
var sectionNames = [...]string{"flake8", "flake518"}

// Section is a flat mapping of flake8 option names to values.
type Section map[string]any

// Document is the single-section shape the INI converter requires.
type Document map[string]Section

// Wrap restores the section header lost during merging. An empty Section
// wraps to an empty Document.
func (s Section) Wrap() Document {
	if len(s) == 0 {
		return Document{}
	}
	return Document{canonicalSection: s}
}

// Locate walks upward from start looking for pyproject.toml. The first
// match wins. It reports false when the filesystem root is reached
// without a match; a missing file is never an error.
func Locate(start string) (string, bool) {
	logger := logging.GetLogger("pyproject")

	dir := start
	for {
		candidate := filepath.Join(dir, FileName)
		logger.Debug().Str("dir", dir).Msgf("Searching for %s", FileName)

		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			logger.Debug().Str("path", candidate).Msg("Found pyproject.toml")
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Filesystem root reached.
			break
		}
		dir = parent
	}

	logger.Debug().Str("start", start).Msgf("No %s found", FileName)
	return "", false
}

// LocateFromWorkingDir resolves the current working directory, following
// symlinks, and searches upward from there.
func LocateFromWorkingDir() (string, bool, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", false, fmt.Errorf("failed to get working directory: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(cwd)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve working directory: %w", err)
	}

	path, ok := Locate(resolved)
	return path, ok, nil
}

// ReadLinterConfig parses the pyproject.toml at path and merges the
// recognized flake8 tool tables into a single flat Section. A missing
// file, a missing [tool] table, or empty tables all yield an empty
// Section; only a parse failure is an error.
func ReadLinterConfig(path string) (Section, error) {
	logger := logging.GetLogger("pyproject").With().Str("path", path).Logger()

	merged := Section{}

	if _, err := os.Stat(path); err != nil {
		logger.Debug().Msg("File does not exist")
		return merged, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	tool, ok := raw[toolKey].(map[string]any)
	if !ok {
		logger.Debug().Msgf("No [%s] table", toolKey)
		return merged, nil
	}

	for _, name := range sectionNames {
		section, ok := tool[name].(map[string]any)
		if !ok {
			logger.Debug().Str("section", name).Msg("Section not present")
			continue
		}
		logger.Debug().Str("section", name).Int("keys", len(section)).Msg("Merging section")
		for key, value := range section {
			merged[key] = value
		}
	}

	return merged, nil
}
