// Package log implements the prefixed, colored console logger the rest of
// the service writes through.
package log

import (
	"errors"
	"io"
	"log"

	"github.com/beka-birhanu/vinom-solver/config"
	"github.com/beka-birhanu/vinom-solver/service/i"
)

// Logger writes leveled lines with a colored subsystem prefix.
type Logger struct {
	prefix string
	color  string
	out    *log.Logger
}

// New creates a logger for the named subsystem writing to w.
func New(prefix, color string, w io.Writer) (i.Logger, error) {
	if prefix == "" {
		return nil, errors.New("empty logger prefix")
	}
	if w == nil {
		return nil, errors.New("nil logger writer")
	}
	return &Logger{
		prefix: prefix,
		color:  color,
		out:    log.New(w, "", log.LstdFlags),
	}, nil
}

func (l *Logger) write(level, levelColor, msg string) {
	l.out.Printf("%s[%s]%s %s[%s]%s %s",
		l.color, l.prefix, config.ColorReset,
		levelColor, level, config.LogColorReset, msg)
}

// Info logs a routine operational message.
func (l *Logger) Info(msg string) {
	l.write("INFO", config.LogInfoColor, msg)
}

// Warning logs a recoverable anomaly.
func (l *Logger) Warning(msg string) {
	l.write("WARNING", config.ColorYellow, msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write("ERROR", config.LogErrorColor, msg)
}
