package daemon

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListenUnix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joy.sock")

	l, err := listenUnix(path)
	if err != nil {
		t.Fatalf("listenUnix on a fresh path failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestListenUnixClearsStaleSocket(t *testing.T) {
	path := filepath.Join(t.TempDir(), "joy.sock")

	// A crashed daemon leaves its socket file behind; binding must still
	// succeed on restart.
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}

	l, err := listenUnix(path)
	if err != nil {
		t.Fatalf("listenUnix with a stale socket file failed: %v", err)
	}
	defer func() { _ = l.Close() }()
}
