package fbox

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// FS binds a backend to the handles opened through it. Backend choice is
// fixed for the lifetime of an FS, so it is safe to share across
// goroutines; the handles it returns are not.
type FS struct {
	base    Backend
	backend Backend
	log     zerolog.Logger
}

// Option configures an FS.
type Option func(*FS)

// WithLogger sets the logger used for diagnostics.
func WithLogger(log zerolog.Logger) Option {
	return func(f *FS) { f.log = log }
}

// WithMetrics instruments every descriptor operation. A nil m is ignored.
func WithMetrics(m *Metrics) Option {
	return func(f *FS) {
		if m != nil {
			f.backend = Instrument(f.base, m)
		}
	}
}

// NewFS returns an FS that opens every handle through b.
func NewFS(b Backend, opts ...Option) *FS {
	f := &FS{
		base:    b,
		backend: b,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.log = f.log.With().Str("backend", b.Name()).Logger()
	return f
}

// Backend returns the name of the bound backend.
func (f *FS) Backend() string {
	return f.base.Name()
}

// Open opens path with mode and returns a handle bound to this FS's
// backend. On failure the handle is nil.
func (f *FS) Open(ctx context.Context, path string, mode Mode) (*File, error) {
	if path == "" {
		return nil, ErrInvalid
	}
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	d, err := f.backend.Open(ctx, path, mode)
	if err != nil {
		f.log.Warn().Err(err).Str("path", path).Stringer("mode", mode).Msg("open failed")
		return nil, err
	}
	f.log.Debug().Str("path", path).Stringer("mode", mode).Msg("opened")

	return &File{
		name:    path,
		backend: f.backend,
		desc:    d,
		log:     f.log,
	}, nil
}

// Create creates or truncates path and opens it for reading and writing.
func (f *FS) Create(ctx context.Context, path string) (*File, error) {
	return f.Open(ctx, path, ReadWrite|Create|Truncate)
}

// Resolve returns the host path the bound backend opens for path. Backends
// that do not implement [Resolver] use path as given.
func (f *FS) Resolve(path string) (string, error) {
	if path == "" {
		return "", ErrInvalid
	}
	if r, ok := f.base.(Resolver); ok {
		return r.Resolve(path)
	}
	return path, nil
}

// Stat returns metadata for path without opening it. Backends that do not
// implement [Stater] are answered from the local filesystem.
func (f *FS) Stat(ctx context.Context, path string) (*FileInfo, error) {
	if path == "" {
		return nil, ErrInvalid
	}
	if st, ok := f.base.(Stater); ok {
		return st.Stat(ctx, path)
	}
	name, err := f.Resolve(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	return &FileInfo{
		Name:    filepath.Base(path),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
		IsDir:   info.IsDir(),
		Path:    path,
	}, nil
}

// Statfs reports the capacity of the storage holding path. Backends that
// implement [FSStater] answer for themselves; otherwise the operating
// system is queried through [Statfs].
func (f *FS) Statfs(ctx context.Context, path string) (*FilesystemStats, error) {
	if path == "" {
		return nil, ErrInvalid
	}

	var (
		st  *FilesystemStats
		err error
	)
	if fst, ok := f.base.(FSStater); ok {
		st, err = fst.Statfs(ctx, path)
	} else {
		var name string
		if name, err = f.Resolve(path); err == nil {
			st, err = Statfs(ctx, name)
		}
	}
	if err != nil {
		f.log.Warn().Err(err).Str("path", path).Msg("statfs failed")
		return nil, err
	}
	if st.TypeName == "" {
		f.log.Debug().Str("path", path).Uint32("magic", st.Magic).Msg("unknown filesystem type")
	}
	return st, nil
}
