package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"info", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"", log.WarnLevel},
		{"bogus", log.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"text", log.TextFormatter},
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"", log.TextFormatter},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormatter(tt.input); got != tt.want {
				t.Errorf("ParseFormatter(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestTestLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)

	logger.Info("adding task", "id", 3)

	out := buf.String()
	if !strings.Contains(out, "adding task") {
		t.Errorf("output %q missing message", out)
	}
	if !strings.Contains(out, "id=3") {
		t.Errorf("output %q missing id field", out)
	}
}

func TestLevelFiltersOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewTestLogger(&buf)
	logger.SetLevel(ParseLevel("error"))

	logger.Info("quiet")
	logger.Error("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("output %q should not contain info line", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("output %q missing error line", out)
	}
}
