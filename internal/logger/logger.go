// Package logger is a small logging facade. Backends are registered once
// with Init; until then every call is a no-op, so library code and tests
// can log without setup.
package logger

import "sync/atomic"

// Instance is a logging backend.
type Instance interface {
	Debug(message string, keyvals ...any)
	Info(message string, keyvals ...any)
	Warn(message string, keyvals ...any)
	Error(message string, keyvals ...any)
}

// Logger fans log calls out to every registered backend.
type Logger struct {
	instances []Instance
}

var current atomic.Pointer[Logger]

// Init replaces the global logger with one dispatching to instances.
func Init(instances ...Instance) {
	current.Store(&Logger{instances: instances})
}

// Reset removes every backend.
func Reset() {
	current.Store(nil)
}

// Debug writes a message at DEBUG level to all configured backends.
func Debug(message string, keyvals ...any) {
	if l := current.Load(); l != nil {
		for _, in := range l.instances {
			in.Debug(message, keyvals...)
		}
	}
}

// Info writes a message at INFO level to all configured backends.
func Info(message string, keyvals ...any) {
	if l := current.Load(); l != nil {
		for _, in := range l.instances {
			in.Info(message, keyvals...)
		}
	}
}

// Warn writes a message at WARN level to all configured backends.
func Warn(message string, keyvals ...any) {
	if l := current.Load(); l != nil {
		for _, in := range l.instances {
			in.Warn(message, keyvals...)
		}
	}
}

// Error writes a message at ERROR level to all configured backends.
func Error(message string, keyvals ...any) {
	if l := current.Load(); l != nil {
		for _, in := range l.instances {
			in.Error(message, keyvals...)
		}
	}
}
