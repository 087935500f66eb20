package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/labstack/gommon/log"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Lvl{
		"debug":   log.DEBUG,
		"INFO":    log.INFO,
		" warn ":  log.WARN,
		"warning": log.WARN,
		"error":   log.ERROR,
		"off":     log.OFF,
		"bogus":   log.INFO,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New("test", "warn", &buf)

	l.Info("hidden")
	l.Warnj(log.JSON{"event": "shown"})

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, `"event":"shown"`) || !strings.Contains(out, `"prefix":"test"`) {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestSetGet(t *testing.T) {
	prev := Get()
	defer Set(prev)

	l := New("other", "info", &bytes.Buffer{})
	Set(l)
	if Get() != l {
		t.Error("Get did not return the logger passed to Set")
	}
}
