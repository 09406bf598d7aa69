package adapter_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flake518/flake518/internal/adapter"
	"github.com/flake518/flake518/internal/pyproject"
)

// fakeFlake8 records the argument vector and inspects the injected config
// file while it is guaranteed to exist.
type fakeFlake8 struct {
	exitCode int
	err      error

	args          []string
	configPath    string
	configContent []byte
}

func (f *fakeFlake8) Run(ctx context.Context, args []string) (int, error) {
	f.args = args
	for i, arg := range args {
		if arg == "--config" && i+1 < len(args) {
			f.configPath = args[i+1]
			if data, err := os.ReadFile(args[i+1]); err == nil {
				f.configContent = data
			}
		}
	}
	return f.exitCode, f.err
}

func writePyproject(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, pyproject.FileName), []byte(content), 0644))
}

func TestRun_InjectsConfig(t *testing.T) {
	dir := t.TempDir()
	writePyproject(t, dir, "[tool.flake8]\nmax-line-length = 100\n")

	fake := &fakeFlake8{exitCode: 1}
	a := adapter.New(fake)
	a.WorkDir = dir

	code, err := a.Run(context.Background(), []string{"src/"})

	require.NoError(t, err)
	assert.Equal(t, 1, code)

	require.Len(t, fake.args, 3)
	assert.Equal(t, "src/", fake.args[0])
	assert.Equal(t, "--config", fake.args[1])
	assert.Equal(t, fake.configPath, fake.args[2])

	// The file existed while flake8 ran and carries the converted config.
	assert.Contains(t, string(fake.configContent), "[flake8]")
	assert.Contains(t, string(fake.configContent), "max-line-length")
}

func TestRun_TempFileRemovedAfterSuccess(t *testing.T) {
	dir := t.TempDir()
	writePyproject(t, dir, "[tool.flake518]\nmax-line-length = 120\n")

	fake := &fakeFlake8{}
	a := adapter.New(fake)
	a.WorkDir = dir

	_, err := a.Run(context.Background(), nil)
	require.NoError(t, err)

	require.NotEmpty(t, fake.configPath)
	assert.NoFileExists(t, fake.configPath)
}

func TestRun_TempFileRemovedAfterFailure(t *testing.T) {
	dir := t.TempDir()
	writePyproject(t, dir, "[tool.flake518]\nmax-line-length = 120\n")

	fake := &fakeFlake8{err: errors.New("boom")}
	a := adapter.New(fake)
	a.WorkDir = dir

	_, err := a.Run(context.Background(), nil)
	require.Error(t, err)

	require.NotEmpty(t, fake.configPath)
	assert.NoFileExists(t, fake.configPath)
}

func TestRun_NoConfigFile(t *testing.T) {
	fake := &fakeFlake8{}
	a := adapter.New(fake)
	a.WorkDir = t.TempDir()

	code, err := a.Run(context.Background(), []string{"--select", "E1", "src/"})

	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, []string{"--select", "E1", "src/"}, fake.args)
	assert.Empty(t, fake.configPath)
}

func TestRun_EmptySections(t *testing.T) {
	dir := t.TempDir()
	writePyproject(t, dir, "[project]\nname = \"demo\"\n")

	fake := &fakeFlake8{}
	a := adapter.New(fake)
	a.WorkDir = dir

	_, err := a.Run(context.Background(), []string{"src/"})

	require.NoError(t, err)
	assert.Equal(t, []string{"src/"}, fake.args)
	assert.Empty(t, fake.configPath)
}

func TestRun_MalformedPyproject(t *testing.T) {
	dir := t.TempDir()
	writePyproject(t, dir, "[tool.flake8\n")

	fake := &fakeFlake8{}
	a := adapter.New(fake)
	a.WorkDir = dir

	_, err := a.Run(context.Background(), nil)

	require.Error(t, err)
	assert.Nil(t, fake.args, "flake8 must not run on parse failure")
}
