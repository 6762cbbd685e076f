// Package rclone implements the "rclone" backend on top of any remote
// supported by rclone (local, webdav, s3, ...).
//
// Remote objects cannot be modified in place, so every descriptor is
// staged in a local temporary file: Open downloads the object unless
// Truncate is set, reads and writes operate on the staged copy, and Sync
// and Close upload it again when it has changed. Open fails with
// fbox.ErrNotFound for a missing object unless Create is set. With Append
// every write goes to the end of the staged copy. A handle opened
// ReadOnly rejects writes, and one opened WriteOnly rejects reads.
package rclone

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/rclone/rclone/fs"

	"github.com/nuln/fbox"
)

// Name is the registered backend name.
const Name = "rclone"

// Auto-register the rclone backend.
func init() {
	fbox.Register(Name, func(cfg *fbox.Config) (fbox.Backend, error) {
		remote := cfg.StringOption("remote", cfg.BasePath)
		if remote == "" {
			return nil, fmt.Errorf("fbox/rclone: remote path is required (set Options[\"remote\"] or BasePath)")
		}
		return New(remote)
	})
}

// Backend implements fbox.Backend using rclone's fs.Fs.
type Backend struct {
	remote fs.Fs
}

// New creates a new rclone Backend from a remote path (e.g., "gdrive:backup").
func New(remotePath string) (*Backend, error) {
	remote, err := fs.NewFs(context.Background(), remotePath)
	if err != nil {
		return nil, err
	}
	return &Backend{remote: remote}, nil
}

func (b *Backend) Name() string { return Name }

func (b *Backend) Open(ctx context.Context, p string, mode fbox.Mode) (fbox.Descriptor, error) {
	obj, err := b.remote.NewObject(ctx, p)
	if err != nil && !errors.Is(err, fs.ErrorObjectNotFound) {
		return nil, &os.PathError{Op: "open", Path: p, Err: convertError(err)}
	}
	exists := err == nil
	if !exists && mode&fbox.Create == 0 {
		return nil, &os.PathError{Op: "open", Path: p, Err: fbox.ErrNotFound}
	}

	tmp, err := os.CreateTemp("", "fbox-rclone-*")
	if err != nil {
		return nil, err
	}

	if exists && mode&fbox.Truncate == 0 {
		if err := download(ctx, obj, tmp); err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
			return nil, &os.PathError{Op: "open", Path: p, Err: err}
		}
	}

	return &staged{
		ctx:     ctx,
		backend: b,
		path:    p,
		tmp:     tmp,
		mode:    mode,
		dirty:   !exists || mode&fbox.Truncate != 0,
	}, nil
}

func download(ctx context.Context, obj fs.Object, dst *os.File) error {
	rc, err := obj.Open(ctx)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, rc); err != nil {
		_ = rc.Close()
		return err
	}
	if err := rc.Close(); err != nil {
		return err
	}
	_, err = dst.Seek(0, io.SeekStart)
	return err
}

// === Extension: Stater ===

func (b *Backend) Stat(ctx context.Context, p string) (*fbox.FileInfo, error) {
	obj, err := b.remote.NewObject(ctx, p)
	if err != nil {
		return nil, &os.PathError{Op: "stat", Path: p, Err: convertError(err)}
	}
	return &fbox.FileInfo{
		Name:    path.Base(obj.Remote()),
		Size:    obj.Size(),
		ModTime: obj.ModTime(ctx),
		Path:    p,
	}, nil
}

// === Extension: FSStater ===

// Statfs reports the quota of the remote as a whole. Remotes without
// About support fail with fbox.ErrNotSupported.
func (b *Backend) Statfs(ctx context.Context, p string) (*fbox.FilesystemStats, error) {
	about := b.remote.Features().About
	if about == nil {
		return nil, fbox.ErrNotSupported
	}
	u, err := about(ctx)
	if err != nil {
		return nil, &os.PathError{Op: "statfs", Path: p, Err: err}
	}

	st := &fbox.FilesystemStats{
		Path:     p,
		TypeName: strings.ToUpper(b.remote.Name()),
	}
	st.TypeCandidates = []string{st.TypeName}
	if u.Free != nil && *u.Free > 0 {
		st.FreeBytes = uint64(*u.Free)
		st.AvailableBytes = st.FreeBytes
	}
	switch {
	case u.Total != nil && *u.Total > 0:
		st.TotalBytes = uint64(*u.Total)
	case u.Used != nil && *u.Used > 0:
		st.TotalBytes = uint64(*u.Used) + st.FreeBytes
	}
	return st, nil
}

// Helpers

func convertError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrorObjectNotFound) || errors.Is(err, fs.ErrorDirNotFound) {
		return os.ErrNotExist
	}
	return err
}

// Compile-time interface checks.
var (
	_ fbox.Backend  = (*Backend)(nil)
	_ fbox.Stater   = (*Backend)(nil)
	_ fbox.FSStater = (*Backend)(nil)
)
