package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/adamatova/community-api/pkg/logger/types"
)

// Log is the application-wide logger. Init must run before first use.
var Log *types.Logger

var (
	base    *zap.Logger
	hookMu  sync.RWMutex
	logHook types.LogHook
)

// Config controls logger construction.
type Config struct {
	Debug        bool
	TimeLocation string
	LogToFile    bool
	LogsDir      string
}

// Init builds the global logger: console output always, an additional JSON
// file sink when LogToFile is set.
func Init(cfg Config) error {
	loc := time.UTC
	if cfg.TimeLocation != "" {
		l, err := time.LoadLocation(cfg.TimeLocation)
		if err != nil {
			return fmt.Errorf("load log time location: %w", err)
		}
		loc = l
	}

	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.In(loc).Format("2006-01-02 15:04:05"))
	}
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stdout), level),
	}

	if cfg.LogToFile {
		if err := os.MkdirAll(cfg.LogsDir, 0o755); err != nil {
			return fmt.Errorf("create logs dir: %w", err)
		}
		name := filepath.Join(cfg.LogsDir, time.Now().In(loc).Format("2006-01-02")+".log")
		f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(f), level))
	}

	base = zap.New(zapcore.NewTee(cores...), zap.Hooks(func(e zapcore.Entry) error {
		hookMu.RLock()
		h := logHook
		hookMu.RUnlock()
		if h != nil {
			h(types.Log{Level: e.Level, Message: e.Message, Time: e.Time})
		}
		return nil
	}))

	Log = &types.Logger{SugaredLogger: base.Sugar()}
	return nil
}

// Named returns a child logger for one subsystem.
func Named(name string) (*types.Logger, error) {
	if base == nil {
		return nil, fmt.Errorf("logger is not initialized")
	}
	return &types.Logger{SugaredLogger: base.Named(name).Sugar()}, nil
}

// SetLogHook installs the hook that mirrors entries to an external channel.
func SetLogHook(h types.LogHook) {
	hookMu.Lock()
	logHook = h
	hookMu.Unlock()
}

// Cleanup flushes buffered entries. Called last during shutdown.
func Cleanup() error {
	if base == nil {
		return nil
	}
	return base.Sync()
}
