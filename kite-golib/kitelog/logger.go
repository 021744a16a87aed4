package kitelog

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Basic logs info and above to stderr
var Basic = New(os.Stderr, zapcore.InfoLevel)

// Nop discards everything
var Nop = &Logger{z: zap.NewNop()}

// New creates a logger writing human readable lines to w at or above lvl.
func New(w io.Writer, lvl zapcore.Level) *Logger {
	config := zap.NewDevelopmentEncoderConfig()
	config.EncodeTime = zapcore.RFC3339TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(config), zapcore.Lock(zapcore.AddSync(w)), lvl)
	return &Logger{z: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1))}
}

// FromZap wraps an existing zap logger
func FromZap(z *zap.Logger) *Logger {
	return &Logger{z: z.WithOptions(zap.AddCallerSkip(1))}
}

// Logger adapts a zap logger to the Printf style used across the code base
type Logger struct {
	z         *zap.Logger
	Durations Durations
}

// Interface encapsulates the relevant methods of log.Logger
type Interface interface {
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}

// Printf implements Interface, logging at info level
func (l *Logger) Printf(format string, v ...interface{}) {
	l.z.Info(fmt.Sprintf(format, v...))
}

// Println implements Interface, logging at info level
func (l *Logger) Println(v ...interface{}) {
	l.z.Info(fmt.Sprint(v...))
}

// Debugf logs at debug level
func (l *Logger) Debugf(format string, v ...interface{}) {
	if ce := l.z.Check(zapcore.DebugLevel, ""); ce != nil {
		ce.Message = fmt.Sprintf(format, v...)
		ce.Write()
	}
}

// Warnf logs at warn level
func (l *Logger) Warnf(format string, v ...interface{}) {
	l.z.Warn(fmt.Sprintf(format, v...))
}

// DebugEnabled is true if Debugf output is not discarded
func (l *Logger) DebugEnabled() bool {
	return l.z.Core().Enabled(zapcore.DebugLevel)
}

// With returns a logger that attaches the given key/value to every line
func (l *Logger) With(key string, value interface{}) *Logger {
	return &Logger{z: l.z.With(zap.Any(key, value))}
}

// Sync flushes buffered output
func (l *Logger) Sync() error {
	return l.z.Sync()
}
