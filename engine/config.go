package engine

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/xlsx-bridge/errors"
)

// EnvPrefix prefixes environment overrides, e.g. XLBRIDGE_LOG_LEVEL.
const EnvPrefix = "XLBRIDGE_"

// EnvConfigPath names the variable holding the config file path.
const EnvConfigPath = EnvPrefix + "CONFIG"

// Config controls library initialization.
type Config struct {
	LogLevel           string `mapstructure:"log_level" yaml:"log_level"`
	LogFile            string `mapstructure:"log_file" yaml:"log_file"`
	LogMaxSizeMB       int    `mapstructure:"log_max_size_mb" yaml:"log_max_size_mb"`
	LogMaxBackups      int    `mapstructure:"log_max_backups" yaml:"log_max_backups"`
	LogConsole         bool   `mapstructure:"log_console" yaml:"log_console"`
	MemoryLimitPercent int    `mapstructure:"memory_limit_percent" yaml:"memory_limit_percent"`
	FlushOnSignal      bool   `mapstructure:"flush_on_signal" yaml:"flush_on_signal"`
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		LogLevel:           "info",
		LogMaxSizeMB:       20,
		LogMaxBackups:      2,
		LogConsole:         false,
		MemoryLimitPercent: 25,
		FlushOnSignal:      false,
	}
}

// LoadConfig reads a YAML file, if path is not empty, then applies
// XLBRIDGE_* environment overrides on top of the defaults.
func LoadConfig(path string) (Config, error) {
	input := make(map[string]any)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindNotFound, err, "read "+path)
		}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&input); err != nil && err != io.EOF {
			return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse "+path)
		}
	}

	for _, kv := range os.Environ() {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, EnvPrefix) || key == EnvConfigPath {
			continue
		}
		input[strings.ToLower(strings.TrimPrefix(key, EnvPrefix))] = value
	}

	cfg := DefaultConfig()
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "build decoder")
	}
	if err := dec.Decode(input); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidInput, err, "decode config")
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromEnv loads the file named by XLBRIDGE_CONFIG, if any.
func ConfigFromEnv() (Config, error) {
	return LoadConfig(os.Getenv(EnvConfigPath))
}

func (c Config) validate() error {
	if c.MemoryLimitPercent < 0 || c.MemoryLimitPercent > 100 {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("memory_limit_percent").
			Value(c.MemoryLimitPercent).
			Detail("must be between 0 and 100").
			Build()
	}
	if c.LogMaxSizeMB < 0 || c.LogMaxBackups < 0 {
		return errors.InvalidInput(errors.PhaseConfig, "log rotation settings must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Path("log_level").
			Value(c.LogLevel).
			Cause(err).
			Build()
	}
	return nil
}
