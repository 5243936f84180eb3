package testsupport

import (
	"bytes"
	"log/slog"
	"testing"

	"doc2dash/internal/logging"
)

// NewLogger returns a plain console logger at level writing into the
// returned buffer.
func NewLogger(t testing.TB, level string) (*slog.Logger, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	off := false
	logger, err := logging.New(logging.Options{Level: level, Writer: &buf, Color: &off})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return logger, &buf
}
