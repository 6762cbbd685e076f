package fboxtest

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFixture writes data to name below dir on the local filesystem and
// returns the full path.
func WriteFixture(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(p, data, 0644); err != nil { //nolint:gosec // test fixture
		t.Fatalf("WriteFile %s: %v", p, err)
	}
	return p
}
