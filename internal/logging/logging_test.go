package logging_test

import (
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/flake518/flake518/internal/logging"
)

func setup(t *testing.T, env map[string]string) {
	t.Helper()
	// Keep the debug log file out of the real state dir.
	t.Setenv("XDG_STATE_HOME", t.TempDir())
	xdg.Reload()

	logging.Setup(func(key string) string { return env[key] })
}

func TestSetup_DefaultLevelIsInfo(t *testing.T) {
	setup(t, nil)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestSetup_DebugEnvEnablesDebug(t *testing.T) {
	setup(t, map[string]string{logging.EnvDebug: "1"})
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestSetup_DebugCheckIsPresenceBased(t *testing.T) {
	// Any non-empty value enables debug, even "false" or "0".
	for _, value := range []string{"false", "0"} {
		setup(t, map[string]string{logging.EnvDebug: value})
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel(), "value %q", value)
	}
}

