package engine

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/xlsx-bridge/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xlbridge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := writeConfig(t, `
log_level: warn
log_file: /tmp/xlbridge.log
memory_limit_percent: 40
`)
	t.Setenv("XLBRIDGE_LOG_LEVEL", "debug")
	t.Setenv("XLBRIDGE_LOG_CONSOLE", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/xlbridge.log", cfg.LogFile)
	assert.Equal(t, 40, cfg.MemoryLimitPercent)
	assert.True(t, cfg.LogConsole)
	assert.Equal(t, 20, cfg.LogMaxSizeMB)
}

func TestLoadConfig_EmptyFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		body string
		kind errors.Kind
	}{
		{"unknown key", "log_colour: red\n", errors.KindInvalidInput},
		{"percent out of range", "memory_limit_percent: 150\n", errors.KindInvalidInput},
		{"bad level", "log_level: loud\n", errors.KindInvalidInput},
		{"not yaml", "log_level: [\n", errors.KindInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			require.Error(t, err)
			var be *errors.Error
			require.True(t, stderrors.As(err, &be))
			assert.Equal(t, errors.PhaseConfig, be.Phase)
			assert.Equal(t, tt.kind, be.Kind)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	var be *errors.Error
	require.True(t, stderrors.As(err, &be))
	assert.Equal(t, errors.KindNotFound, be.Kind)
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.5 KiB", humanBytes(1536))
	assert.Equal(t, "3.0 GiB", humanBytes(3<<30))
}

func TestInitLibrary_FirstCallbackWins(t *testing.T) {
	t.Setenv("XLBRIDGE_MEMORY_LIMIT_PERCENT", "0")
	t.Setenv(EnvConfigPath, "")
	t.Cleanup(func() { _ = stopLogging() })

	// A nil callback initializes the library but keeps the slot open.
	assert.False(t, Exports().InitLibrary(nil))
	require.True(t, IsInitialized())
	assert.False(t, Exports().Handler().Registered())

	first, second := &recorder{}, &recorder{}
	assert.True(t, Exports().InitLibrary(first.callback))
	assert.False(t, Exports().InitLibrary(second.callback))
	assert.True(t, Exports().Handler().Registered())

	Exports().RaiseForTest("FormatError", "first only")
	assert.Equal(t, 1, first.count())
	assert.Zero(t, second.count())
}
