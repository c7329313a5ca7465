package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		level, format string
		enabled       zapcore.Level
		disabled      zapcore.Level
	}{
		{"debug", Console, zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"info", JSON, zapcore.InfoLevel, zapcore.DebugLevel},
		{"warn", Console, zapcore.WarnLevel, zapcore.InfoLevel},
	}

	for _, test := range tests {
		logger, err := New(test.level, test.format)
		if err != nil {
			t.Fatalf("new(%v, %v): %v", test.level, test.format, err)
		}
		core := logger.Core()
		if !core.Enabled(test.enabled) {
			t.Errorf("new(%v, %v): level %v disabled", test.level,
				test.format, test.enabled)
		}
		if core.Enabled(test.disabled) {
			t.Errorf("new(%v, %v): level %v enabled", test.level,
				test.format, test.disabled)
		}
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New("loud", Console); err == nil {
		t.Errorf("new: expected error for unknown level")
	}
	if _, err := New("info", "xml"); err == nil {
		t.Errorf("new: expected error for unknown format")
	}
}
