//go:build unix

package unixfd

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"

	"github.com/nuln/fbox"
)

// Name is the registered backend name.
const Name = "io"

// Auto-register the descriptor backend.
func init() {
	fbox.Register(Name, func(cfg *fbox.Config) (fbox.Backend, error) {
		return New(cfg.BasePath), nil
	})
}

// Backend implements fbox.Backend on raw file descriptors.
type Backend struct {
	root string
}

// New creates a descriptor backend. Relative paths are resolved against
// root when it is non-empty.
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
	fd, err := unix.Open(name, mode.Flag()|unix.O_CLOEXEC, fbox.DefaultPerm)
	if err != nil {
		return nil, &os.PathError{Op: "open", Path: name, Err: err}
	}
	return &descriptor{fd: fd, name: name}, nil
}

// === Extension: Stater ===

func (b *Backend) Stat(ctx context.Context, path string) (*fbox.FileInfo, error) {
	name := b.resolve(path)
	var st unix.Stat_t
	if err := unix.Stat(name, &st); err != nil {
		return nil, &os.PathError{Op: "stat", Path: name, Err: err}
	}
	return fileInfo(path, &st), nil
}

func fileInfo(path string, st *unix.Stat_t) *fbox.FileInfo {
	isDir := st.Mode&unix.S_IFMT == unix.S_IFDIR
	mode := os.FileMode(st.Mode & 0o777)
	if isDir {
		mode |= os.ModeDir
	}
	return &fbox.FileInfo{
		Name:    filepath.Base(path),
		Size:    st.Size,
		ModTime: modTime(st),
		Mode:    mode,
		IsDir:   isDir,
		Path:    path,
	}
}

// descriptor wraps a kernel file descriptor. fd is -1 once closed.
type descriptor struct {
	fd   int
	name string
}

func (d *descriptor) pathErr(op string, err error) error {
	return &os.PathError{Op: op, Path: d.name, Err: err}
}

func (d *descriptor) Read(p []byte) (int, error) {
	if d.fd < 0 {
		return 0, os.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	n, err := unix.Read(d.fd, p)
	if err != nil {
		return 0, d.pathErr("read", err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Write continues after a partial write until p is consumed or the kernel
// reports an error.
func (d *descriptor) Write(p []byte) (int, error) {
	if d.fd < 0 {
		return 0, os.ErrClosed
	}
	var written int
	for written < len(p) {
		n, err := unix.Write(d.fd, p[written:])
		if err != nil {
			return written, d.pathErr("write", err)
		}
		if n == 0 {
			return written, d.pathErr("write", io.ErrShortWrite)
		}
		written += n
	}
	return written, nil
}

func (d *descriptor) Seek(offset int64, whence int) (int64, error) {
	if d.fd < 0 {
		return 0, os.ErrClosed
	}
	off, err := unix.Seek(d.fd, offset, whence)
	if err != nil {
		return 0, d.pathErr("seek", err)
	}
	return off, nil
}

func (d *descriptor) Size() (int64, error) {
	if d.fd < 0 {
		return 0, os.ErrClosed
	}
	var st unix.Stat_t
	if err := unix.Fstat(d.fd, &st); err != nil {
		return 0, d.pathErr("fstat", err)
	}
	return st.Size, nil
}

func (d *descriptor) Sync() error {
	if d.fd < 0 {
		return os.ErrClosed
	}
	if err := unix.Fsync(d.fd); err != nil {
		return d.pathErr("fsync", err)
	}
	return nil
}

// Close releases the descriptor. Closing twice returns os.ErrClosed
// instead of closing a descriptor number that may have been reused.
func (d *descriptor) Close() error {
	if d.fd < 0 {
		return os.ErrClosed
	}
	fd := d.fd
	d.fd = -1
	if err := unix.Close(fd); err != nil {
		return d.pathErr("close", err)
	}
	return nil
}

// Compile-time interface checks.
var (
	_ fbox.Backend    = (*Backend)(nil)
	_ fbox.Stater     = (*Backend)(nil)
	_ fbox.Resolver   = (*Backend)(nil)
	_ fbox.Descriptor = (*descriptor)(nil)
)
