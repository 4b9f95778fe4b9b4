package logging

import (
	"context"
	"io"
	"log/slog"

	"github.com/runningwild/glop/glog"
)

type stdLogInterceptor interface {
	Printf(format string, v ...interface{})
}

type Logger interface {
	glog.Logger
	stdLogInterceptor
}

type isopickLogger struct {
	glog.Logger
}

func (log *isopickLogger) Printf(msg string, args ...interface{}) {
	log.Logger.Log(context.Background(), slog.LevelInfo, msg, args...)
}

var _ Logger = (*isopickLogger)(nil)

var debugLogger *isopickLogger
var infoLogger *isopickLogger
var warnLogger *isopickLogger
var errorLogger *isopickLogger

func init() {
	debugLogger = makeLogger(slog.LevelDebug)
	infoLogger = makeLogger(slog.LevelInfo)
	warnLogger = makeLogger(slog.LevelWarn)
	errorLogger = makeLogger(slog.LevelError)
}

func makeLogger(lvl slog.Level) *isopickLogger {
	return &isopickLogger{
		Logger: glog.New(&glog.Opts{
			Level: lvl,
		}),
	}
}

// The info logger; anything wanting a Printf can log through it.
func DefaultLogger() Logger {
	return infoLogger
}

func ErrorLogger() Logger {
	return errorLogger
}

func Debug(msg string, args ...interface{}) {
	debugLogger.Debug(msg, args...)
}

func Info(msg string, args ...interface{}) {
	infoLogger.Info(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	warnLogger.Warn(msg, args...)
}

func Error(msg string, args ...interface{}) {
	errorLogger.Error(msg, args...)
}

// Trace messages go through the default logger so that SetLogLevel and
// Bracket control whether they show up.
func Trace(msg string, args ...interface{}) {
	DefaultLogger().Log(context.Background(), glog.LevelTrace, msg, args...)
}

// Call this to redirect all logging output to the given io.Writer. A cleanup
// function that undoes the redirect is returned.
func Redirect(newOut io.Writer) func() {
	oldDebugLogger := debugLogger
	oldInfoLogger := infoLogger
	oldWarnLogger := warnLogger
	oldErrorLogger := errorLogger

	debugLogger = &isopickLogger{Logger: glog.WithRedirect(oldDebugLogger, newOut)}
	infoLogger = &isopickLogger{Logger: glog.WithRedirect(oldInfoLogger, newOut)}
	warnLogger = &isopickLogger{Logger: glog.WithRedirect(oldWarnLogger, newOut)}
	errorLogger = &isopickLogger{Logger: glog.WithRedirect(oldErrorLogger, newOut)}

	return func() {
		debugLogger = oldDebugLogger
		infoLogger = oldInfoLogger
		warnLogger = oldWarnLogger
		errorLogger = oldErrorLogger
	}
}

// Sends all logging output to logSink. Unlike Redirect, this is meant to be
// called once at startup and is not undone.
func SetupLogger(logSink io.Writer) {
	debugLogger.Logger = glog.WithRedirect(debugLogger.Logger, logSink)
	infoLogger.Logger = glog.WithRedirect(infoLogger.Logger, logSink)
	warnLogger.Logger = glog.WithRedirect(warnLogger.Logger, logSink)
	errorLogger.Logger = glog.WithRedirect(errorLogger.Logger, logSink)
}

// Tells the 'Default Logger' to changes its verbosity.
func SetLogLevel(lvl slog.Level) {
	infoLogger.Logger = glog.Relevel(infoLogger.Logger, lvl)
}

// Like SetLogLevel but returns a func that restores the previous level.
func SetLoggingLevel(lvl slog.Level) func() {
	old := infoLogger.Logger
	infoLogger.Logger = glog.Relevel(old, lvl)
	return func() {
		infoLogger.Logger = old
	}
}
