// Package fbox provides a small handle-based file access layer for Go.
//
// Every handle is bound to a [Backend], a named implementation of the
// open/read/write/seek/size/sync/close contract. Backends live in driver
// packages and register themselves when imported.
//
// # Supported Backends
//
//   - io     — raw descriptors via golang.org/x/sys/unix (import _ "github.com/nuln/fbox/driver/unixfd")
//   - fio    — buffered streams over afero (import _ "github.com/nuln/fbox/driver/buffered")
//   - mmap   — read-only memory mapping (import _ "github.com/nuln/fbox/driver/mmap")
//   - rclone — any rclone-supported remote (import _ "github.com/nuln/fbox/driver/rclone")
//
// # Quick Start
//
//	import (
//	    "github.com/nuln/fbox"
//	    _ "github.com/nuln/fbox/driver/unixfd"
//	)
//
//	fsys, err := fbox.New(&fbox.Config{Backend: "io"})
//	f, err := fsys.Open(ctx, "/var/log/syslog", fbox.ReadOnly)
//	defer f.Close()
//
// The package-level [Open], [GetSize] and [Dump] use the process-wide
// backend chosen with [SetBackend] ("io" by default). Changing it never
// affects handles that are already open.
//
// # Filesystem Statistics
//
// [Statfs] reports total, available and free bytes of the filesystem
// holding a path and names its type from the statfs magic number, see
// [LookupFSType].
//
// # Import All Backends
//
//	import _ "github.com/nuln/fbox/drivers"
package fbox
