//go:build !linux

package fbox

import (
	"context"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v4/disk"
)

// statfs falls back to gopsutil where the kernel does not report a
// filesystem magic number. Magic stays 0 and the type name is taken
// from the mount table.
func statfs(ctx context.Context, path string) (*FilesystemStats, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return nil, &os.PathError{Op: "statfs", Path: path, Err: err}
	}
	st := &FilesystemStats{
		Path:           path,
		TotalBytes:     u.Total,
		AvailableBytes: u.Free,
	}
	if u.Used <= u.Total {
		st.FreeBytes = u.Total - u.Used
	}
	if u.Fstype != "" {
		st.TypeName = strings.ToUpper(u.Fstype)
		st.TypeCandidates = []string{st.TypeName}
	}
	return st, nil
}
