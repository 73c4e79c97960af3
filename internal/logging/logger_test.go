package logging

import (
	"context"
	"log/slog"
	"testing"
)

func TestNewLogger_LevelFiltering(t *testing.T) {
	t.Parallel()

	cases := []struct {
		level       string
		debugLogged bool
		infoLogged  bool
	}{
		{"debug", true, true},
		{"info", false, true},
		{"INFO", false, true},
		{" warn ", false, false},
		{"warning", false, false},
		{"error", false, false},
		{"bogus", false, true},
		{"", false, true},
	}

	for _, tc := range cases {
		logger := NewLogger(tc.level)
		if logger == nil {
			t.Fatalf("level %q: expected a logger", tc.level)
		}

		ctx := context.Background()
		if got := logger.Enabled(ctx, slog.LevelDebug); got != tc.debugLogged {
			t.Errorf("level %q: debug enabled = %v, want %v", tc.level, got, tc.debugLogged)
		}
		if got := logger.Enabled(ctx, slog.LevelInfo); got != tc.infoLogged {
			t.Errorf("level %q: info enabled = %v, want %v", tc.level, got, tc.infoLogged)
		}
	}
}
