package fbox

import (
	"context"
	"math"
	"math/bits"
)

// Statfs queries the operating system for the capacity of the filesystem
// holding path and classifies its type through the registry. An empty
// path fails with ErrInvalid before any system call is made.
func Statfs(ctx context.Context, path string) (*FilesystemStats, error) {
	if path == "" {
		return nil, ErrInvalid
	}
	return statfs(ctx, path)
}

// newFilesystemStats builds a stats record from raw statfs block counts.
func newFilesystemStats(path string, bsize, blocks, bavail, bfree uint64, magic uint32) *FilesystemStats {
	st := &FilesystemStats{
		Path:           path,
		BlockSize:      bsize,
		TotalBytes:     mulBlocks(bsize, blocks),
		AvailableBytes: mulBlocks(bsize, bavail),
		FreeBytes:      mulBlocks(bsize, bfree),
		Magic:          magic,
	}
	if t, ok := LookupFSType(magic); ok {
		st.TypeName = t.Name
		st.TypeCandidates = t.Candidates()
	}
	return st
}

// mulBlocks multiplies a block size by a block count, saturating at
// math.MaxUint64 instead of wrapping.
func mulBlocks(bsize, count uint64) uint64 {
	hi, lo := bits.Mul64(bsize, count)
	if hi != 0 {
		return math.MaxUint64
	}
	return lo
}
