package rclone

import (
	"context"
	"io"
	"os"
	"syscall"
	"time"

	"github.com/rclone/rclone/fs/operations"

	"github.com/nuln/fbox"
)

// staged implements fbox.Descriptor over a local copy of a remote object.
type staged struct {
	ctx     context.Context
	backend *Backend
	path    string
	tmp     *os.File
	mode    fbox.Mode
	dirty   bool
	closed  bool
}

func (s *staged) Read(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	if !s.mode.CanRead() {
		return 0, &os.PathError{Op: "read", Path: s.path, Err: syscall.EBADF}
	}
	return s.tmp.Read(p)
}

func (s *staged) Write(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	if !s.mode.CanWrite() {
		return 0, &os.PathError{Op: "write", Path: s.path, Err: syscall.EBADF}
	}
	if s.mode&fbox.Append != 0 {
		if _, err := s.tmp.Seek(0, io.SeekEnd); err != nil {
			return 0, err
		}
	}
	n, err := s.tmp.Write(p)
	if n > 0 {
		s.dirty = true
	}
	return n, err
}

func (s *staged) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	return s.tmp.Seek(offset, whence)
}

func (s *staged) Size() (int64, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	info, err := s.tmp.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// Sync uploads the staged copy when it differs from the remote object.
func (s *staged) Sync() error {
	if s.closed {
		return os.ErrClosed
	}
	return s.upload()
}

func (s *staged) upload() error {
	if !s.dirty {
		return nil
	}
	info, err := s.tmp.Stat()
	if err != nil {
		return err
	}
	rc := io.NopCloser(io.NewSectionReader(s.tmp, 0, info.Size()))
	if _, err := operations.Rcat(s.ctx, s.backend.remote, s.path, rc, time.Now(), nil); err != nil {
		return &os.PathError{Op: "upload", Path: s.path, Err: err}
	}
	s.dirty = false
	return nil
}

// Close uploads pending changes and removes the staged copy.
func (s *staged) Close() error {
	if s.closed {
		return os.ErrClosed
	}
	s.closed = true

	err := s.upload()
	name := s.tmp.Name()
	if closeErr := s.tmp.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	_ = os.Remove(name)
	return err
}

var _ fbox.Descriptor = (*staged)(nil)
