package fboxtest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/fs"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/nuln/fbox"
)

// BackendTestSuite runs a comprehensive set of tests against a read-write
// Backend. Files are created below root. Call this in your driver tests
// to verify correctness:
//
//	func TestMyBackend(t *testing.T) {
//	    fboxtest.BackendTestSuite(t, mybackend.New(), t.TempDir())
//	}
func BackendTestSuite(t *testing.T, b fbox.Backend, root string) { //nolint:gocyclo
	t.Helper()
	ctx := context.Background()
	path := func(name string) string { return filepath.Join(root, name) }

	t.Run("Open_Close", func(t *testing.T) {
		p := path("open_close.txt")
		d, err := b.Open(ctx, p, fbox.WriteOnly|fbox.Create)
		if err != nil {
			t.Fatalf("Open create: %v", err)
		}
		if err := d.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		d, err = b.Open(ctx, p, fbox.ReadOnly)
		if err != nil {
			t.Fatalf("Open existing: %v", err)
		}
		if err := d.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
	})

	t.Run("Open_Missing", func(t *testing.T) {
		d, err := b.Open(ctx, path("does_not_exist.txt"), fbox.ReadOnly)
		if err == nil {
			_ = d.Close()
			t.Fatal("Open missing: expected error, got nil")
		}
		if d != nil {
			t.Error("Open missing: descriptor should be nil on failure")
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Open missing: err = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("Write_Seek_Read", func(t *testing.T) {
		p := path("roundtrip.bin")
		content := RandomBytes(8192, 1)

		d, err := b.Open(ctx, p, fbox.ReadWrite|fbox.Create|fbox.Truncate)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer func() { _ = d.Close() }()

		n, err := d.Write(content)
		if err != nil {
			t.Fatalf("Write: %v", err)
		}
		if n != len(content) {
			t.Fatalf("Write = %d, want %d", n, len(content))
		}

		off, err := d.Seek(0, io.SeekStart)
		if err != nil {
			t.Fatalf("Seek: %v", err)
		}
		if off != 0 {
			t.Errorf("Seek = %d, want 0", off)
		}

		got, err := io.ReadAll(d)
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Errorf("read back %d bytes, content mismatch", len(got))
		}
	})

	t.Run("Seek_Whence", func(t *testing.T) {
		p := path("whence.txt")
		writeFile(t, b, p, []byte("hello world"))

		d, err := b.Open(ctx, p, fbox.ReadOnly)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer func() { _ = d.Close() }()

		if off, err := d.Seek(-5, io.SeekEnd); err != nil || off != 6 {
			t.Fatalf("Seek end = %d, %v; want 6", off, err)
		}
		buf := make([]byte, 2)
		if _, err := io.ReadFull(d, buf); err != nil {
			t.Fatalf("Read: %v", err)
		}
		if string(buf) != "wo" {
			t.Errorf("after seek = %q, want %q", buf, "wo")
		}
		if off, err := d.Seek(1, io.SeekCurrent); err != nil || off != 9 {
			t.Fatalf("Seek current = %d, %v; want 9", off, err)
		}
		rest, _ := io.ReadAll(d)
		if string(rest) != "ld" {
			t.Errorf("rest = %q, want %q", rest, "ld")
		}
	})

	t.Run("Size_Sync", func(t *testing.T) {
		p := path("size.txt")
		d, err := b.Open(ctx, p, fbox.WriteOnly|fbox.Create|fbox.Truncate)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer func() { _ = d.Close() }()

		if _, err := io.WriteString(d, "12345"); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := d.Sync(); err != nil {
			t.Fatalf("Sync: %v", err)
		}
		size, err := d.Size()
		if err != nil {
			t.Fatalf("Size: %v", err)
		}
		if size != 5 {
			t.Errorf("Size = %d, want 5", size)
		}
	})

	t.Run("Append", func(t *testing.T) {
		p := path("append.txt")
		writeFile(t, b, p, []byte("hello"))

		d, err := b.Open(ctx, p, fbox.WriteOnly|fbox.Append)
		if err != nil {
			t.Fatalf("Open append: %v", err)
		}
		_, _ = io.WriteString(d, " world")
		if err := d.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		if got := readFile(t, b, p); string(got) != "hello world" {
			t.Errorf("after append = %q, want %q", got, "hello world")
		}
	})

	t.Run("Append_After_Seek", func(t *testing.T) {
		p := path("append_seek.txt")
		writeFile(t, b, p, []byte("hello"))

		d, err := b.Open(ctx, p, fbox.ReadWrite|fbox.Append)
		if err != nil {
			t.Fatalf("Open append: %v", err)
		}
		if _, err := d.Seek(0, io.SeekStart); err != nil {
			t.Fatalf("Seek: %v", err)
		}
		head := make([]byte, 2)
		if _, err := io.ReadFull(d, head); err != nil {
			t.Fatalf("Read: %v", err)
		}
		if _, err := io.WriteString(d, "X"); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if _, err := d.Seek(0, io.SeekStart); err != nil {
			t.Fatalf("Seek: %v", err)
		}
		if _, err := io.WriteString(d, "Y"); err != nil {
			t.Fatalf("Write: %v", err)
		}
		if err := d.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		if got := readFile(t, b, p); string(got) != "helloXY" {
			t.Errorf("after append = %q, want %q", got, "helloXY")
		}
	})

	t.Run("Truncate", func(t *testing.T) {
		p := path("truncate.txt")
		writeFile(t, b, p, []byte("a much longer original body"))
		writeFile(t, b, p, []byte("short"))

		if got := readFile(t, b, p); string(got) != "short" {
			t.Errorf("after truncate = %q, want %q", got, "short")
		}
	})

	t.Run("Double_Close", func(t *testing.T) {
		p := path("double_close.txt")
		d, err := b.Open(ctx, p, fbox.WriteOnly|fbox.Create)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := d.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}
		if err := d.Close(); err == nil {
			t.Error("second Close: expected error, got nil")
		}
	})

	if st, ok := b.(fbox.Stater); ok {
		t.Run("Stater", func(t *testing.T) {
			p := path("stat.txt")
			writeFile(t, b, p, []byte("stat me"))

			info, err := st.Stat(ctx, p)
			if err != nil {
				t.Fatalf("Stat: %v", err)
			}
			if info.Size != 7 {
				t.Errorf("Size = %d, want 7", info.Size)
			}
			if info.IsDir {
				t.Error("IsDir = true, want false")
			}
			if info.Name != "stat.txt" {
				t.Errorf("Name = %q, want %q", info.Name, "stat.txt")
			}
		})
	}
}

// ReadOnlyTestSuite runs the read-side tests against a Backend that cannot
// create files. Fixtures are written to root on the local filesystem.
func ReadOnlyTestSuite(t *testing.T, b fbox.Backend, root string) {
	t.Helper()
	ctx := context.Background()

	t.Run("Read_Seek", func(t *testing.T) {
		content := RandomBytes(4096, 2)
		p := WriteFixture(t, root, "fixture.bin", content)

		d, err := b.Open(ctx, p, fbox.ReadOnly)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer func() { _ = d.Close() }()

		size, err := d.Size()
		if err != nil {
			t.Fatalf("Size: %v", err)
		}
		if size != int64(len(content)) {
			t.Errorf("Size = %d, want %d", size, len(content))
		}

		got, err := io.ReadAll(d)
		if err != nil {
			t.Fatalf("ReadAll: %v", err)
		}
		if !bytes.Equal(got, content) {
			t.Error("content mismatch")
		}

		if _, err := d.Seek(100, io.SeekStart); err != nil {
			t.Fatalf("Seek: %v", err)
		}
		buf := make([]byte, 10)
		if _, err := io.ReadFull(d, buf); err != nil {
			t.Fatalf("Read after seek: %v", err)
		}
		if !bytes.Equal(buf, content[100:110]) {
			t.Error("content after seek mismatch")
		}
	})

	t.Run("Empty_File", func(t *testing.T) {
		p := WriteFixture(t, root, "empty.bin", nil)
		d, err := b.Open(ctx, p, fbox.ReadOnly)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer func() { _ = d.Close() }()

		n, err := d.Read(make([]byte, 16))
		if n != 0 || err != io.EOF {
			t.Errorf("Read = %d, %v; want 0, io.EOF", n, err)
		}
	})

	t.Run("Reject_Write", func(t *testing.T) {
		p := WriteFixture(t, root, "ro.txt", []byte("ro"))
		d, err := b.Open(ctx, p, fbox.ReadWrite)
		if err == nil {
			_ = d.Close()
			t.Fatal("Open ReadWrite: expected error, got nil")
		}
	})

	t.Run("Open_Missing", func(t *testing.T) {
		_, err := b.Open(ctx, filepath.Join(root, "missing.bin"), fbox.ReadOnly)
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Open missing: err = %v, want fs.ErrNotExist", err)
		}
	})
}

// RandomBytes returns n bytes of deterministic pseudo-random content.
func RandomBytes(n int, seed int64) []byte {
	buf := make([]byte, n)
	rand.New(rand.NewSource(seed)).Read(buf) //nolint:gosec // test content only
	return buf
}

func writeFile(t *testing.T, b fbox.Backend, p string, data []byte) {
	t.Helper()
	d, err := b.Open(context.Background(), p, fbox.WriteOnly|fbox.Create|fbox.Truncate)
	if err != nil {
		t.Fatalf("Open %s for write: %v", p, err)
	}
	if _, err := d.Write(data); err != nil {
		t.Fatalf("Write %s: %v", p, err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("Close %s: %v", p, err)
	}
}

func readFile(t *testing.T, b fbox.Backend, p string) []byte {
	t.Helper()
	d, err := b.Open(context.Background(), p, fbox.ReadOnly)
	if err != nil {
		t.Fatalf("Open %s for read: %v", p, err)
	}
	defer func() { _ = d.Close() }()
	data, err := io.ReadAll(d)
	if err != nil {
		t.Fatalf("ReadAll %s: %v", p, err)
	}
	return data
}
