package buffered

import (
	"bufio"
	"io"
	"os"
	"syscall"

	"github.com/spf13/afero"

	"github.com/nuln/fbox"
)

// stream implements fbox.Descriptor on top of an afero.File. At most one
// of r and w holds pending data at any time.
type stream struct {
	f      afero.File
	mode   fbox.Mode
	r      *bufio.Reader
	w      *bufio.Writer
	closed bool
}

func newStream(f afero.File, mode fbox.Mode, size int) *stream {
	s := &stream{f: f, mode: mode}
	if mode.CanRead() {
		s.r = bufio.NewReaderSize(f, size)
	}
	if mode.CanWrite() {
		s.w = bufio.NewWriterSize(f, size)
	}
	return s
}

func (s *stream) pathErr(op string, err error) error {
	return &os.PathError{Op: op, Path: s.f.Name(), Err: err}
}

func (s *stream) flush() error {
	if s.w == nil || s.w.Buffered() == 0 {
		return nil
	}
	return s.w.Flush()
}

// dropReadAhead moves the file offset back to the logical position of the
// stream and empties the read buffer.
func (s *stream) dropReadAhead() error {
	if s.r == nil {
		return nil
	}
	if n := s.r.Buffered(); n > 0 {
		if _, err := s.f.Seek(int64(-n), io.SeekCurrent); err != nil {
			return err
		}
	}
	s.r.Reset(s.f)
	return nil
}

func (s *stream) Read(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	if s.r == nil {
		return 0, s.pathErr("read", syscall.EBADF)
	}
	if err := s.flush(); err != nil {
		return 0, err
	}
	return s.r.Read(p)
}

func (s *stream) Write(p []byte) (int, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	if s.w == nil {
		return 0, s.pathErr("write", syscall.EBADF)
	}
	if err := s.dropReadAhead(); err != nil {
		return 0, err
	}
	// MemMapFs applies O_APPEND only at open.
	if s.mode&fbox.Append != 0 && s.w.Buffered() == 0 {
		if _, err := s.f.Seek(0, io.SeekEnd); err != nil {
			return 0, err
		}
	}
	return s.w.Write(p)
}

func (s *stream) Seek(offset int64, whence int) (int64, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	if err := s.flush(); err != nil {
		return 0, err
	}
	if s.r != nil && whence == io.SeekCurrent {
		offset -= int64(s.r.Buffered())
	}
	off, err := s.f.Seek(offset, whence)
	if err != nil {
		return 0, err
	}
	if s.r != nil {
		s.r.Reset(s.f)
	}
	return off, nil
}

func (s *stream) Size() (int64, error) {
	if s.closed {
		return 0, os.ErrClosed
	}
	if err := s.flush(); err != nil {
		return 0, err
	}
	info, err := s.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (s *stream) Sync() error {
	if s.closed {
		return os.ErrClosed
	}
	if err := s.flush(); err != nil {
		return err
	}
	return s.f.Sync()
}

// Close flushes pending writes and closes the file. The file is closed
// even when the flush fails.
func (s *stream) Close() error {
	if s.closed {
		return os.ErrClosed
	}
	s.closed = true
	err := s.flush()
	if closeErr := s.f.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

var _ fbox.Descriptor = (*stream)(nil)
