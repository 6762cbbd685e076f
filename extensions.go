package fbox

import "context"

// Stater is implemented by backends that can report file metadata without
// opening a descriptor. Use type assertion to check:
//
//	if st, ok := backend.(fbox.Stater); ok { ... }
type Stater interface {
	Stat(ctx context.Context, path string) (*FileInfo, error)
}

// FSStater is implemented by backends whose storage capacity is not the
// local filesystem's, such as remote object stores.
type FSStater interface {
	Statfs(ctx context.Context, path string) (*FilesystemStats, error)
}

// Resolver is implemented by backends that scope paths below a root. It
// maps a caller path to the host path the backend would open, so that
// metadata and capacity queries agree with Open.
type Resolver interface {
	Resolve(path string) (string, error)
}
