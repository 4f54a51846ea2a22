package logging

import "testing"

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name string
		want Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"", LevelInfo},
		{"bogus", LevelInfo},
	}

	for _, tt := range tests {
		t.Run("name_"+tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.name); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestInitLogger(t *testing.T) {
	InitLogger(LevelDebug, FormatJSON)
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil after InitLogger")
	}

	InitLogger(LevelInfo, FormatText)
	if GetLogger() == nil {
		t.Fatal("GetLogger returned nil after re-init")
	}

	// Helpers must not panic regardless of configured level.
	Debug("debug message", "k", "v")
	Info("info message")
	Warn("warn message")
	Error("error message", "err", "boom")
	TMEvent("export", "/tmp/tm.db", 3)
}
