package rclone_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/rclone/rclone/backend/local"

	"github.com/nuln/fbox"
	"github.com/nuln/fbox/driver/rclone"
	"github.com/nuln/fbox/fboxtest"
)

func newLocalBackend(t *testing.T) (*rclone.Backend, string) {
	t.Helper()
	dir := t.TempDir()
	b, err := rclone.New(dir)
	if err != nil {
		t.Fatalf("Failed to open rclone backend: %v", err)
	}
	return b, dir
}

func TestRcloneBackend_Local(t *testing.T) {
	b, _ := newLocalBackend(t)
	fboxtest.BackendTestSuite(t, b, "")
}

func TestRcloneBackend_UploadOnSync(t *testing.T) {
	ctx := context.Background()
	b, dir := newLocalBackend(t)

	d, err := b.Open(ctx, "synced.txt", fbox.WriteOnly|fbox.Create)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = d.Close() }()

	if _, err := io.WriteString(d, "pending"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := d.Sync(); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "synced.txt"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "pending" {
		t.Errorf("remote content = %q, want %q", data, "pending")
	}
}

func TestRcloneBackend_ReadOnlyDoesNotUpload(t *testing.T) {
	ctx := context.Background()
	b, dir := newLocalBackend(t)
	fboxtest.WriteFixture(t, dir, "ro.txt", []byte("original"))

	d, err := b.Open(ctx, "ro.txt", fbox.ReadOnly)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := d.Write([]byte("x")); err == nil {
		t.Error("Write on ReadOnly: expected error, got nil")
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "ro.txt"))
	if string(data) != "original" {
		t.Errorf("remote content = %q, want %q", data, "original")
	}
}

func TestRcloneBackend_Statfs(t *testing.T) {
	b, _ := newLocalBackend(t)
	st, err := b.Statfs(context.Background(), "")
	if errors.Is(err, fbox.ErrNotSupported) {
		t.Skip("About not supported by this remote")
	}
	if err != nil {
		t.Fatalf("Statfs: %v", err)
	}
	if st.TotalBytes == 0 {
		t.Error("TotalBytes = 0, want > 0")
	}
	if st.TypeName == "" {
		t.Error("TypeName is empty")
	}
}

func TestRcloneBackend_Config(t *testing.T) {
	if _, err := fbox.New(&fbox.Config{Backend: rclone.Name}); err == nil {
		t.Error("New without remote: expected error, got nil")
	}

	fsys, err := fbox.New(&fbox.Config{
		Backend: rclone.Name,
		Options: map[string]any{"remote": t.TempDir()},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if fsys.Backend() != "rclone" {
		t.Errorf("Backend = %q, want %q", fsys.Backend(), "rclone")
	}
}
