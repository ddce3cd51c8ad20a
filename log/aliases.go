package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

type (
	Fields = logrus.Fields
	Level  = logrus.Level
)

const (
	ErrorLevel Level = logrus.ErrorLevel
	WarnLevel  Level = logrus.WarnLevel
	InfoLevel  Level = logrus.InfoLevel
	DebugLevel Level = logrus.DebugLevel
)

type logger struct {
	*logrus.Entry
}

func (l *logger) Level() Level {
	return l.Entry.Logger.Level
}

func (l *logger) WithPrefix(prefix string) Logger {
	return l.WithField("prefix", prefix)
}

func (l *logger) WithField(key string, value interface{}) Logger {
	return &logger{l.Entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{l.Entry.WithFields(fields)}
}

func (l *logger) WithError(err error) Logger {
	if err != nil {
		return &logger{l.Entry.WithError(err)}
	}
	return l
}

func (l *logger) SetLevel(level Level) {
	l.Entry.Logger.SetLevel(level)
}

func (l *logger) SetOutput(w io.Writer) {
	l.Entry.Logger.SetOutput(w)
}

var _ Logger = &logger{}

func newLogrusTextFormatter() *logrus.TextFormatter {
	return &logrus.TextFormatter{
		TimestampFormat: "Jan 02 15:04:05",
		FullTimestamp:   true,
		DisableColors:   true,
	}
}

func fromLogrusLogger(l *logrus.Logger) Logger {
	return &logger{logrus.NewEntry(l)}
}
