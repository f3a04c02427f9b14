// Package console is the terminal backend of the logger facade.
package console

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger writes structured, leveled lines with charmbracelet/log.
type Logger struct {
	logger *log.Logger
}

// Params configures a console Logger.
type Params struct {
	Debug bool

	// Writer defaults to os.Stderr.
	Writer io.Writer

	// Prefix is printed before every message.
	Prefix string
}

// New creates a console logger.
func New(params Params) *Logger {
	level := log.InfoLevel
	if params.Debug {
		level = log.DebugLevel
	}
	w := params.Writer
	if w == nil {
		w = os.Stderr
	}
	return &Logger{
		logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			Level:           level,
			Prefix:          params.Prefix,
		}),
	}
}

func (c *Logger) Debug(message string, keyvals ...any) { c.logger.Debug(message, keyvals...) }
func (c *Logger) Info(message string, keyvals ...any)  { c.logger.Info(message, keyvals...) }
func (c *Logger) Warn(message string, keyvals ...any)  { c.logger.Warn(message, keyvals...) }
func (c *Logger) Error(message string, keyvals ...any) { c.logger.Error(message, keyvals...) }
