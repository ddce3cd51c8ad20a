package log

import (
	"io"
)

// Logger is the logging surface used across the SDK. It is satisfied by a
// logrus entry.
type Logger interface {
	Level() Level

	WithField(key string, value interface{}) Logger
	WithFields(fields Fields) Logger
	WithError(err error) Logger
	WithPrefix(prefix string) Logger

	SetLevel(level Level)
	SetOutput(w io.Writer)

	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})

	Debug(args ...interface{})
	Info(args ...interface{})
	Warn(args ...interface{})
	Error(args ...interface{})
}
