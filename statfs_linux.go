//go:build linux

package fbox

import (
	"context"
	"os"

	"golang.org/x/sys/unix"
)

func statfs(_ context.Context, path string) (*FilesystemStats, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return nil, &os.PathError{Op: "statfs", Path: path, Err: err}
	}
	//nolint:gosec // block size and magic are reported as signed on some arches
	return newFilesystemStats(path, uint64(st.Bsize), st.Blocks, st.Bavail, st.Bfree, uint32(st.Type)), nil
}
