//go:build unix

package mmap_test

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/nuln/fbox"
	"github.com/nuln/fbox/driver/mmap"
	"github.com/nuln/fbox/fboxtest"
)

func TestMmapBackend(t *testing.T) {
	fboxtest.ReadOnlyTestSuite(t, mmap.New(""), t.TempDir())
}

func TestMmapBackend_WriteModesNotSupported(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	p := fboxtest.WriteFixture(t, dir, "f.txt", []byte("abc"))
	b := mmap.New("")

	for _, mode := range []fbox.Mode{fbox.WriteOnly, fbox.ReadWrite, fbox.WriteOnly | fbox.Create} {
		_, err := b.Open(ctx, p, mode)
		if !errors.Is(err, fbox.ErrNotSupported) {
			t.Errorf("Open(%v): err = %v, want ErrNotSupported", mode, err)
		}
	}
}

func TestMmapBackend_SeekPastEnd(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fboxtest.WriteFixture(t, dir, "f.txt", []byte("abc"))

	d, err := mmap.New(dir).Open(ctx, "f.txt", fbox.ReadOnly)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = d.Close() }()

	if off, err := d.Seek(10, io.SeekStart); err != nil || off != 10 {
		t.Fatalf("Seek = %d, %v; want 10", off, err)
	}
	if _, err := d.Read(make([]byte, 1)); err != io.EOF {
		t.Errorf("Read past end: err = %v, want io.EOF", err)
	}
	if _, err := d.Seek(-1, io.SeekStart); err == nil {
		t.Error("Seek to negative offset: expected error, got nil")
	}
	if err := d.Sync(); err != nil {
		t.Errorf("Sync: %v", err)
	}
}

func TestMmapBackend_ResolveBelowRoot(t *testing.T) {
	root := t.TempDir()
	b := mmap.New(root)

	for path, want := range map[string]string{
		"a.bin":        filepath.Join(root, "a.bin"),
		"/abs/a.bin":   "/abs/a.bin",
		"sub/../b.bin": filepath.Join(root, "b.bin"),
	} {
		got, err := b.Resolve(path)
		if err != nil {
			t.Fatalf("Resolve(%q): %v", path, err)
		}
		if got != want {
			t.Errorf("Resolve(%q) = %q, want %q", path, got, want)
		}
	}
}
