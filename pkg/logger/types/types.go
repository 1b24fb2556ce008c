package types

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the hook-facing view of one log entry.
type Log struct {
	Level   zapcore.Level
	Message string
	Time    time.Time
}

// LogHook receives every entry at or above the hook level. Used to mirror
// warnings into an external channel.
type LogHook func(log Log)

// Logger wraps the sugared zap logger so callers depend on one local type.
type Logger struct {
	*zap.SugaredLogger
}
