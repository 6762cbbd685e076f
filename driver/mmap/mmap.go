//go:build unix

package mmap

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/nuln/fbox"
)

// Name is the registered backend name.
const Name = "mmap"

var errNegativeOffset = errors.New("mmap: negative offset")

// Auto-register the mmap backend.
func init() {
	fbox.Register(Name, func(cfg *fbox.Config) (fbox.Backend, error) {
		return New(cfg.BasePath), nil
	})
}

// Backend implements a read-only fbox.Backend over memory mappings.
type Backend struct {
	root string
}

// New creates an mmap Backend. Relative paths are resolved against root
// when it is non-empty.
func New(root string) *Backend {
	return &Backend{root: root}
}

func (b *Backend) Name() string { return Name }

func (b *Backend) resolve(path string) string {
	if b.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(b.root, path)
}

// === Extension: Resolver ===

func (b *Backend) Resolve(path string) (string, error) {
	return b.resolve(path), nil
}

func (b *Backend) Open(ctx context.Context, path string, mode fbox.Mode) (fbox.Descriptor, error) {
	name := b.resolve(path)
	if mode.CanWrite() {
		return nil, &os.PathError{Op: "open", Path: name, Err: fbox.ErrNotSupported}
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	fi, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if fi.IsDir() {
		_ = f.Close()
		return nil, &os.PathError{Op: "mmap", Path: name, Err: unix.EISDIR}
	}

	size := fi.Size()
	if size == 0 {
		return &mapping{f: f}, nil
	}
	if size < 0 || size > int64(math.MaxInt) {
		_ = f.Close()
		return nil, &os.PathError{Op: "mmap", Path: name, Err: fbox.ErrTooLarge}
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, &os.PathError{Op: "mmap", Path: name, Err: err}
	}
	return &mapping{data: data, f: f}, nil
}

// === Extension: Stater ===

func (b *Backend) Stat(ctx context.Context, path string) (*fbox.FileInfo, error) {
	info, err := os.Stat(b.resolve(path))
	if err != nil {
		return nil, err
	}
	return &fbox.FileInfo{
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
		IsDir:   info.IsDir(),
		Path:    path,
	}, nil
}

// mapping is a read-only view of a mapped file. data is nil for an empty
// file; f is nil once closed.
type mapping struct {
	data []byte
	off  int64
	f    *os.File
}

func (m *mapping) Read(p []byte) (int, error) {
	if m.f == nil {
		return 0, os.ErrClosed
	}
	if m.off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[m.off:])
	m.off += int64(n)
	return n, nil
}

func (m *mapping) Write(p []byte) (int, error) {
	if m.f == nil {
		return 0, os.ErrClosed
	}
	return 0, &os.PathError{Op: "write", Path: m.f.Name(), Err: fbox.ErrNotSupported}
}

// Seek allows positions past the end of the mapping; reads there return
// io.EOF.
func (m *mapping) Seek(offset int64, whence int) (int64, error) {
	if m.f == nil {
		return 0, os.ErrClosed
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.off + offset
	case io.SeekEnd:
		abs = int64(len(m.data)) + offset
	default:
		return 0, &os.PathError{Op: "seek", Path: m.f.Name(), Err: unix.EINVAL}
	}
	if abs < 0 {
		return 0, &os.PathError{Op: "seek", Path: m.f.Name(), Err: errNegativeOffset}
	}
	m.off = abs
	return abs, nil
}

func (m *mapping) Size() (int64, error) {
	if m.f == nil {
		return 0, os.ErrClosed
	}
	return int64(len(m.data)), nil
}

func (m *mapping) Sync() error {
	if m.f == nil {
		return os.ErrClosed
	}
	return nil
}

// Close unmaps the memory and closes the underlying file.
func (m *mapping) Close() error {
	if m.f == nil {
		return os.ErrClosed
	}
	var err error
	if m.data != nil {
		err = unix.Munmap(m.data)
		m.data = nil
	}
	if closeErr := m.f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	m.f = nil
	return err
}

// Compile-time interface checks.
var (
	_ fbox.Backend    = (*Backend)(nil)
	_ fbox.Stater     = (*Backend)(nil)
	_ fbox.Resolver   = (*Backend)(nil)
	_ fbox.Descriptor = (*mapping)(nil)
)
