package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

// Logger is a thin prefix-carrying wrapper around a shared logrus logger.
// Every service component derives its own prefixed view with GetLogger,
// so one sink collects all component output.
type Logger struct {
	prefix string
	base   *logrus.Logger
}

// NewLogger returns the root logger for a service, writing to stderr.
func NewLogger(component string) *Logger {
	base := logrus.New()
	base.SetLevel(logrus.DebugLevel)
	base.SetOutput(os.Stderr)
	base.SetFormatter(&logFormatter{logrus.TextFormatter{
		FullTimestamp:          true,
		TimestampFormat:        "2006-01-02 15:04:05",
		DisableLevelTruncation: true,
	}})
	return &Logger{prefix: component + "$", base: base}
}

// GetLogger derives a logger with a different prefix sharing the parent's
// sink.
func GetLogger(prefix string, parent *Logger) *Logger {
	return &Logger{prefix: prefix + "$", base: parent.base}
}

// GetDiscardLogger returns a logger that drops everything; used in tests.
func GetDiscardLogger() *Logger {
	base := logrus.New()
	base.SetOutput(io.Discard)
	return &Logger{prefix: "", base: base}
}

func (l *Logger) Info(format string, args ...interface{}) {
	l.base.Infof(l.prefix+format, args...)
}

func (l *Logger) Debug(format string, args ...interface{}) {
	l.base.Debugf(l.prefix+format, args...)
}

func (l *Logger) Error(format string, args ...interface{}) {
	l.base.Errorf(l.prefix+format, args...)
}

func (l *Logger) Err(err error) {
	l.base.Error(l.prefix + err.Error())
}

// logFormatter renders the component prefix in brackets ahead of the
// message.
type logFormatter struct {
	logrus.TextFormatter
}

func (f *logFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	prefix, message, found := strings.Cut(entry.Message, "$")
	if !found {
		prefix, message = "", entry.Message
	}
	if len(prefix) > 0 {
		prefix = "[" + prefix + "] "
	}
	return []byte(fmt.Sprintf("[%s] %s %s%s\n",
		entry.Time.Format(f.TimestampFormat),
		strings.ToUpper(entry.Level.String()),
		prefix, message)), nil
}
