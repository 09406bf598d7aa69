// Package adapter bridges pyproject.toml configuration to flake8.
//
// A run is a single linear pass: locate pyproject.toml, extract the merged
// flake8 configuration, serialize it to a temporary INI file, and invoke
// flake8 with that file injected via --config. Without configuration the
// arguments are handed to flake8 untouched.
package adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/flake518/flake518/internal/iniconv"
	"github.com/flake518/flake518/internal/logging"
	"github.com/flake518/flake518/internal/pyproject"
)

// configFlag is the flake8 option naming an additional config file.
const configFlag = "--config"

// Flake8 invokes the target tool with an argument vector and reports its
// exit code.
type Flake8 interface {
	Run(ctx context.Context, args []string) (int, error)
}

// Adapter runs flake8 with configuration injected from pyproject.toml.
type Adapter struct {
	// Flake8 is the target tool.
	Flake8 Flake8

	// WorkDir is the directory the upward search starts from. Empty
	// means the symlink-resolved current working directory.
	WorkDir string
}

// New creates an adapter around the given flake8 invoker.
func New(f Flake8) *Adapter {
	return &Adapter{Flake8: f}
}

// Run performs one adapter pass and returns flake8's exit code. The
// temporary config file, when one is created, is deleted on every exit
// path, including when the flake8 invocation fails. The discovered
// pyproject.toml is never modified.
func (a *Adapter) Run(ctx context.Context, argv []string) (int, error) {
	logger := logging.GetLogger("adapter")

	path, ok, err := a.locate()
	if err != nil {
		return -1, err
	}

	config := pyproject.Section{}
	if ok {
		config, err = pyproject.ReadLinterConfig(path)
		if err != nil {
			return -1, err
		}
	}

	if len(config) == 0 {
		logger.Debug().Msg("Running flake8 without modified configuration")
		return a.Flake8.Run(ctx, argv)
	}

	logger.Debug().Str("path", path).Int("options", len(config)).
		Msg("Found configuration, adding additional config file")

	configPath, err := a.writeConfigFile(config.Wrap())
	if err != nil {
		return -1, err
	}
	defer func() { _ = os.Remove(configPath) }()

	args := make([]string, 0, len(argv)+2)
	args = append(args, argv...)
	args = append(args, configFlag, configPath)

	logger.Debug().Str("config", configPath).Strs("args", args).
		Msg("Invoking flake8 with injected configuration")
	return a.Flake8.Run(ctx, args)
}

// locate finds the pyproject.toml governing the current run.
func (a *Adapter) locate() (string, bool, error) {
	if a.WorkDir != "" {
		path, ok := pyproject.Locate(a.WorkDir)
		return path, ok, nil
	}
	return pyproject.LocateFromWorkingDir()
}

// writeConfigFile serializes doc into a fresh temporary file and returns
// its path. The caller owns the file and is responsible for removing it.
func (a *Adapter) writeConfigFile(doc pyproject.Document) (string, error) {
	tmpFile, err := os.CreateTemp("", "flake518_*.cfg")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary config file: %w", err)
	}

	if err := iniconv.Write(doc, tmpFile); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpFile.Name())
		return "", err
	}

	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpFile.Name())
		return "", fmt.Errorf("failed to flush temporary config file: %w", err)
	}

	return tmpFile.Name(), nil
}
