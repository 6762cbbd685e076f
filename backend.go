package fbox

import (
	"context"
	"io"
)

// DefaultPerm is the permission used when a backend creates a file.
const DefaultPerm = 0644

// Backend is the capability contract every file backend must satisfy.
// Open returns a backend-specific Descriptor which carries the remaining
// operations. A failed Open returns a nil Descriptor and a non-nil error.
type Backend interface {
	// Name returns the registered name of the backend, e.g. "io".
	Name() string

	// Open opens path with the given mode.
	Open(ctx context.Context, path string, mode Mode) (Descriptor, error)
}

// Descriptor is an open backend-level file resource. All operations are
// synchronous and none of them retries internally.
type Descriptor interface {
	io.Reader
	io.Writer
	io.Seeker
	io.Closer

	// Size returns the current length of the file in bytes.
	Size() (int64, error)

	// Sync commits the file contents to stable storage.
	Sync() error
}
