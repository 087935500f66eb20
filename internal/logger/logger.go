// Package logger configures the process logger. The same *log.Logger is
// installed as echo's logger so request and domain logs share one format.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/labstack/gommon/log"
)

const header = `{"time":"${time_rfc3339}","level":"${level}","prefix":"${prefix}","file":"${short_file}","line":"${line}"}`

var std = New("salesdash", "info", os.Stderr)

// New returns a JSON-header logger writing to w at the named level.
func New(prefix, level string, w io.Writer) *log.Logger {
	l := log.New(prefix)
	l.SetHeader(header)
	l.SetOutput(w)
	l.SetLevel(ParseLevel(level))
	return l
}

// ParseLevel maps "debug", "info", "warn", "error" and "off" to a level.
// Anything else is INFO.
func ParseLevel(s string) log.Lvl {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

// Set replaces the default logger. Call it before serving.
func Set(l *log.Logger) { std = l }

// Get returns the default logger.
func Get() *log.Logger { return std }
