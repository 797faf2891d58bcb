package logger

import (
	"log"
)

// Logger is the minimal logging surface the registry and parse packages
// emit debug traces through.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Error(format string, args ...any)
}

var LoggerEnabled = true

type DefaultLogger struct {
	name string
}

func NewDefaultLogger(name string) *DefaultLogger {
	return &DefaultLogger{name: name}
}

func (d *DefaultLogger) Debug(format string, args ...any) {
	if LoggerEnabled {
		log.Printf("[DEBUG] "+d.name+" | "+format+"\n", args...)
	}
}

func (d *DefaultLogger) Info(format string, args ...any) {
	if LoggerEnabled {
		log.Printf("[INFO] "+d.name+" | "+format+"\n", args...)
	}
}

func (d *DefaultLogger) Error(format string, args ...any) {
	if LoggerEnabled {
		log.Printf("[ERROR] "+d.name+" | "+format+"\n", args...)
	}
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Noop returns a logger that drops everything. It is the registry
// default; opt into tracing with NewDefaultLogger.
func Noop() Logger {
	return noopLogger{}
}
