package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestHelpersTolerateNilLogger(t *testing.T) {
	Info(nil, "info")
	Warn(nil, "warn")
	Error(nil, "error", errors.New("boom"))
	Debug(nil, "debug")
}

func TestErrorAppendsErrorField(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	Error(logger, "fetch failed", errors.New("boom"), FieldOperation, "list_players")

	out := buf.String()
	if !strings.Contains(out, "error=boom") || !strings.Contains(out, "operation=list_players") {
		t.Fatalf("expected error and operation fields, got %q", out)
	}
}
