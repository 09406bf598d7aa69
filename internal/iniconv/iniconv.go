// Package iniconv serializes merged pyproject configuration into the INI
// key/value format flake8 reads from its --config files.
package iniconv

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"

	"github.com/flake518/flake518/internal/logging"
	"github.com/flake518/flake518/internal/pyproject"
)

// Write serializes doc into w, one [section] header per top-level key and
// one "key = value" line per option. All output is written before Write
// returns.
func Write(doc pyproject.Document, w io.Writer) error {
	logger := logging.GetLogger("iniconv")

	file := ini.Empty()

	for _, name := range sortedKeys(doc) {
		section, err := file.NewSection(name)
		if err != nil {
			return fmt.Errorf("failed to create section %q: %w", name, err)
		}

		options := doc[name]
		for _, key := range sortedKeys(options) {
			if _, err := section.NewKey(key, FormatValue(options[key])); err != nil {
				return fmt.Errorf("failed to write option %q: %w", key, err)
			}
		}
		logger.Debug().Str("section", name).Int("options", len(options)).Msg("Serialized section")
	}

	if _, err := file.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write ini output: %w", err)
	}
	return nil
}

// FormatValue renders a TOML value the way flake8 parses it back: scalars
// as plain text, lists joined with commas.
func FormatValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, FormatValue(item))
		}
		return strings.Join(parts, ",")
	default:
		return fmt.Sprintf("%v", v)
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
