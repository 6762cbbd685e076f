// Package buffered implements the "fio" backend: buffered-stream I/O over
// an afero filesystem, in the spirit of stdio FILE streams.
//
// Open modes map onto os.OpenFile flags (see fbox.Mode.Flag). Reads are
// served from a read-ahead buffer and writes are collected in a write
// buffer; pending writes are flushed before any read, seek, size, sync or
// close, and read-ahead is discarded before a write or seek, so the stream
// always behaves as if it were unbuffered. With Append every write lands
// at the end of the file, whatever the afero.Fs. A handle opened ReadOnly
// rejects writes, and one opened WriteOnly rejects reads.
package buffered

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/nuln/fbox"
)

// Name is the registered backend name.
const Name = "fio"

// DefaultBufferSize is the size of the read and write buffers.
const DefaultBufferSize = 32 * 1024

// Auto-register the buffered backend.
func init() {
	fbox.Register(Name, func(cfg *fbox.Config) (fbox.Backend, error) {
		size := cfg.IntOption("bufferSize", DefaultBufferSize)
		if cfg.BasePath == "" {
			return NewWithFs(afero.NewOsFs(), size), nil
		}
		return New(cfg.BasePath, size)
	})
}

// Backend implements fbox.Backend with buffered streams.
type Backend struct {
	fs      afero.Fs
	bufSize int
}

// New creates a buffered Backend whose paths are scoped to root.
func New(root string, bufSize int) (*Backend, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(absRoot, 0750); err != nil {
		return nil, err
	}
	return NewWithFs(afero.NewBasePathFs(afero.NewOsFs(), absRoot), bufSize), nil
}

// NewWithFs creates a buffered Backend on a custom afero.Fs.
// This is useful for testing with afero.MemMapFs.
func NewWithFs(fs afero.Fs, bufSize int) *Backend {
	if bufSize <= 0 {
		bufSize = DefaultBufferSize
	}
	return &Backend{fs: fs, bufSize: bufSize}
}

func (b *Backend) Name() string { return Name }

func (b *Backend) Open(ctx context.Context, path string, mode fbox.Mode) (fbox.Descriptor, error) {
	f, err := b.fs.OpenFile(path, mode.Flag(), fbox.DefaultPerm)
	if err != nil {
		return nil, err
	}
	return newStream(f, mode, b.bufSize), nil
}

// === Extension: Resolver ===

// Resolve maps path below the BasePath root when the backend has one.
// Paths on other afero filesystems are returned unchanged.
func (b *Backend) Resolve(path string) (string, error) {
	if bfs, ok := b.fs.(*afero.BasePathFs); ok {
		return bfs.RealPath(path)
	}
	return path, nil
}

// === Extension: Stater ===

func (b *Backend) Stat(ctx context.Context, path string) (*fbox.FileInfo, error) {
	info, err := b.fs.Stat(path)
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

// Compile-time interface checks.
var (
	_ fbox.Backend  = (*Backend)(nil)
	_ fbox.Stater   = (*Backend)(nil)
	_ fbox.Resolver = (*Backend)(nil)
)
