// Package mmap implements the read-only "mmap" backend. Open maps the
// whole file with mmap(2) and serves Read, Seek and Size from the mapping
// without further system calls.
//
// Only fbox.ReadOnly is accepted; any mode with write access (and thereby
// Create, Append or Truncate) fails with fbox.ErrNotSupported. Sync is a
// no-op. The mapping reflects the file length at open time.
//
// The backend is only available on unix platforms.
package mmap
