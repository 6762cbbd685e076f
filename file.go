package fbox

import (
	"github.com/rs/zerolog"
)

// File is an open file bound to the backend that opened it. A File is
// not safe for concurrent use. Once closed, every method returns
// [ErrClosed].
type File struct {
	name    string
	backend Backend
	desc    Descriptor
	log     zerolog.Logger
	closed  bool
}

// Name returns the path the file was opened with.
func (f *File) Name() string { return f.name }

// Backend returns the name of the backend the file is bound to.
func (f *File) Backend() string { return f.backend.Name() }

func (f *File) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	return f.desc.Read(p)
}

func (f *File) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	return f.desc.Write(p)
}

// Seek sets the offset for the next Read or Write; whence is one of
// io.SeekStart, io.SeekCurrent or io.SeekEnd.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	return f.desc.Seek(offset, whence)
}

// Size returns the current length of the file.
func (f *File) Size() (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	return f.desc.Size()
}

// Sync commits the contents of the file to stable storage.
func (f *File) Sync() error {
	if f.closed {
		return ErrClosed
	}
	return f.desc.Sync()
}

// Close releases the underlying descriptor. The handle is unusable
// afterwards even if the backend reports an error.
func (f *File) Close() error {
	if f.closed {
		return ErrClosed
	}
	f.closed = true

	err := f.desc.Close()
	if err != nil {
		f.log.Warn().Err(err).Str("path", f.name).Msg("close failed")
		return err
	}
	f.log.Debug().Str("path", f.name).Msg("closed")
	return nil
}
