package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Loggers shared by every package. They are usable before InitLoggers runs
// (plain text on the console) so package tests never need to initialise them.
var (
	InfoLogger  = newLogger(os.Stdout, logrus.InfoLevel)
	WarnLogger  = newLogger(os.Stdout, logrus.WarnLevel)
	ErrorLogger = newLogger(os.Stderr, logrus.ErrorLevel)
	DebugLogger = newLogger(os.Stdout, logrus.InfoLevel)
)

var rotator *lumberjack.Logger

func newLogger(out io.Writer, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	return l
}

// InitLoggers configures all loggers from LOG_LEVEL, LOG_FORMAT and LOG_FILE.
// When LOG_FILE is set output is mirrored into a rotating file.
func InitLoggers() {
	level, err := logrus.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil {
		level = logrus.InfoLevel
	}

	var formatter logrus.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), "json") {
		formatter = &logrus.JSONFormatter{}
	}

	stdout, stderr := io.Writer(os.Stdout), io.Writer(os.Stderr)
	if path := os.Getenv("LOG_FILE"); path != "" {
		rotator = &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			LocalTime:  true,
		}
		stdout = io.MultiWriter(os.Stdout, rotator)
		stderr = io.MultiWriter(os.Stderr, rotator)
	}

	for _, l := range []*logrus.Logger{InfoLogger, WarnLogger, DebugLogger} {
		l.SetOutput(stdout)
		l.SetFormatter(formatter)
	}
	ErrorLogger.SetOutput(stderr)
	ErrorLogger.SetFormatter(formatter)

	for _, l := range []*logrus.Logger{InfoLogger, WarnLogger, ErrorLogger, DebugLogger} {
		l.SetLevel(level)
	}
}

// Close flushes the rotating log file, if any.
func Close() {
	if rotator != nil {
		_ = rotator.Close()
	}
}
