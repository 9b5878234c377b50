package engine

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/wippyai/xlsx-bridge/resource"
)

var (
	initMu      sync.Mutex
	initialized bool
	logSinks    []func() error
	stopSignals func()
)

// InitLibrary prepares the engine for boundary calls. The first call
// configures logging, installs the shutdown flush hook and applies the
// memory limit. Every call then offers cb to the fault handler: the first
// non-nil callback is kept, so a call with nil leaves the slot open for a
// later one. It reports whether cb is the installed callback.
func InitLibrary(cb Callback) bool {
	initMu.Lock()
	defer initMu.Unlock()

	if !initialized {
		setupLocked()
		initialized = true
	} else {
		Logger().Info("library already initialized, registering callback only")
	}

	return Exports().handler.Register(cb)
}

func setupLocked() {
	prev := Logger()
	bootstrapLogging()

	cfg, err := ConfigFromEnv()
	if err != nil {
		Logger().Warn("config rejected, using defaults", zap.Error(err))
		cfg = DefaultConfig()
	}
	if !configureLogging(cfg) {
		SetLogger(prev)
	}

	installShutdownHook(cfg)
	applyMemoryLimit(cfg.MemoryLimitPercent)

	Logger().Info("library initialized",
		zap.String("log_level", cfg.LogLevel),
		zap.Int("memory_limit_percent", cfg.MemoryLimitPercent))
}

// IsInitialized reports whether InitLibrary has completed.
func IsInitialized() bool {
	initMu.Lock()
	defer initMu.Unlock()
	return initialized
}

// Shutdown stops the signal hook, flushes log sinks and closes the
// process-wide handle table. Live workbooks are released and later
// allocations fail. It is safe to call more than once.
func Shutdown() error {
	return Exports().shutdown()
}

func (e *Exporter) shutdown() error {
	err := stopLogging()
	return multierr.Append(err, e.closeTable())
}

// closeTable marks every live package closed, then drops all tokens.
func (e *Exporter) closeTable() error {
	var pkgs []*Package
	e.table.Each(func(_ resource.Handle, typeID uint32, v any) bool {
		if objectKind(typeID) == kindPackage {
			if p, ok := v.(*Package); ok {
				pkgs = append(pkgs, p)
			}
		}
		return true
	})
	for _, p := range pkgs {
		p.mu.Lock()
		p.closed = true
		p.mu.Unlock()
	}
	return e.table.Close()
}

// stopLogging stops the signal hook and flushes log sinks.
func stopLogging() error {
	initMu.Lock()
	defer initMu.Unlock()

	if stopSignals != nil {
		stopSignals()
		stopSignals = nil
	}
	return flushLocked()
}

func flushLocked() error {
	var err error
	if syncErr := Logger().Sync(); syncErr != nil && !isBenignSyncError(syncErr) {
		err = multierr.Append(err, syncErr)
	}
	for _, closeSink := range logSinks {
		err = multierr.Append(err, closeSink())
	}
	logSinks = nil
	return err
}

// Sync on stderr fails with EINVAL or ENOTTY on most terminals.
func isBenignSyncError(err error) bool {
	for _, e := range multierr.Errors(err) {
		if pe, ok := e.(*os.PathError); ok && (pe.Err == syscall.EINVAL || pe.Err == syscall.ENOTTY) {
			continue
		}
		return false
	}
	return true
}

func parseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	return zapcore.ParseLevel(s)
}

func encoderConfig() zapcore.EncoderConfig {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return encCfg
}

// bootstrapLogging installs a warn-level stderr logger used while the
// config is read.
func bootstrapLogging() {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(os.Stderr),
		zapcore.WarnLevel,
	)
	SetLogger(zap.New(core).Named("xlbridge"))
}

// configureLogging installs the logger described by cfg. It reports false
// when cfg enables no sink.
func configureLogging(cfg Config) bool {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}

	encCfg := encoderConfig()

	var cores []zapcore.Core
	if cfg.LogConsole {
		consoleCfg := encCfg
		if term.IsTerminal(int(os.Stderr.Fd())) {
			consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(os.Stderr),
			level,
		))
	}
	if cfg.LogFile != "" {
		rolling := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    cfg.LogMaxSizeMB,
			MaxBackups: cfg.LogMaxBackups,
		}
		logSinks = append(logSinks, rolling.Close)
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encCfg),
			zapcore.AddSync(rolling),
			level,
		))
	}
	if len(cores) == 0 {
		return false
	}

	SetLogger(zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named("xlbridge"))
	return true
}

// installShutdownHook flushes logs when the process is asked to stop.
// The signal is re-raised after flushing so the default action still applies.
func installShutdownHook(cfg Config) {
	if !cfg.FlushOnSignal {
		return
	}

	ch := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(ch, os.Interrupt, syscall.SIGTERM)

	Exports().handler.Go("ShutdownHook", func() error {
		select {
		case sig := <-ch:
			Logger().Info("shutdown signal received, flushing", zap.Stringer("signal", sig))
			initMu.Lock()
			err := flushLocked()
			initMu.Unlock()
			signal.Stop(ch)
			if p, findErr := os.FindProcess(os.Getpid()); findErr == nil {
				_ = p.Signal(sig)
			}
			return err
		case <-done:
			return nil
		}
	})

	stopSignals = func() {
		signal.Stop(ch)
		close(done)
	}
}
