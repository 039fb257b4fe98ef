package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestNew_LevelFiltering(t *testing.T) {
	tests := []struct {
		level     string
		logged    []string
		filtered  []string
	}{
		{"trace", []string{"trace message", "debug message", "info message"}, nil},
		{"debug", []string{"debug message", "info message"}, []string{"trace message"}},
		{"info", []string{"info message", "warn message"}, []string{"trace message", "debug message"}},
		{"warn", []string{"warn message", "error message"}, []string{"info message"}},
		{"error", []string{"error message"}, []string{"warn message", "info message"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{Level: tt.level, Pretty: false, Output: &buf})

			logger.Trace().Msg("trace message")
			logger.Debug().Msg("debug message")
			logger.Info().Msg("info message")
			logger.Warn().Msg("warn message")
			logger.Error().Msg("error message")

			output := buf.String()
			for _, want := range tt.logged {
				if !strings.Contains(output, want) {
					t.Errorf("expected %q to be logged at level %s", want, tt.level)
				}
			}
			for _, unwanted := range tt.filtered {
				if strings.Contains(output, unwanted) {
					t.Errorf("expected %q to be filtered at level %s", unwanted, tt.level)
				}
			}
		})
	}
}

func TestNew_UnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: "bogus", Output: &buf})

	logger.Debug().Msg("debug message")
	logger.Info().Msg("info message")

	output := buf.String()
	if strings.Contains(output, "debug message") {
		t.Error("expected debug message to be filtered at default level")
	}
	if !strings.Contains(output, "info message") {
		t.Error("expected info message to be logged at default level")
	}
}

func TestNewWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithComponent(Config{Level: "info", Output: &buf}, "profiler")

	logger.Info().Msg("hello")

	if !strings.Contains(buf.String(), `"component":"profiler"`) {
		t.Errorf("expected component field in output, got: %s", buf.String())
	}
}
