package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCappedFileWriterTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gate.log")
	w, err := newCappedFileWriter(path, 1)
	if err != nil {
		t.Fatalf("newCappedFileWriter: %v", err)
	}
	defer w.Close()
	w.maxBytes = 32

	if _, err := w.Write([]byte(strings.Repeat("a", 24))); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if _, err := w.Write([]byte(strings.Repeat("b", 24))); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if string(data) != strings.Repeat("b", 24) {
		t.Fatalf("log content = %q, want only second write", data)
	}
}

func TestCappedFileWriterReopensAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gate.log")
	w, err := newCappedFileWriter(path, 1)
	if err != nil {
		t.Fatalf("newCappedFileWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, err := w.Write([]byte("after close")); err != nil {
		t.Fatalf("write after close: %v", err)
	}
	defer w.Close()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "after close") {
		t.Fatalf("log content = %q", data)
	}
}
