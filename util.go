package fbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
)

// GetSize returns the size of path in bytes from its metadata, without
// opening it. A failed lookup is reported as an error, never as 0.
func (f *FS) GetSize(ctx context.Context, path string) (int64, error) {
	info, err := f.Stat(ctx, path)
	if err != nil {
		f.log.Warn().Err(err).Str("path", path).Msg("stat failed")
		return 0, err
	}
	return info.Size, nil
}

// Dump reads the whole of path into a freshly allocated buffer sized from
// the file's metadata. An empty file fails with [ErrEmptyFile], and a file
// that yields fewer bytes than its reported size fails with
// [ErrShortRead]. The handle is closed on every path.
func (f *FS) Dump(ctx context.Context, path string) (*Buffer, error) {
	size, err := f.GetSize(ctx, path)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}
	if size < 0 || size > int64(math.MaxInt) {
		return nil, fmt.Errorf("%w: %s is %d bytes", ErrTooLarge, path, size)
	}

	data := make([]byte, size)

	file, err := f.Open(ctx, path, ReadOnly)
	if err != nil {
		return nil, err
	}

	n, err := io.ReadFull(file, data)
	closeErr := file.Close()

	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			f.log.Warn().Str("path", path).Int("read", n).Int64("size", size).Msg("short read")
			return nil, fmt.Errorf("%w: %s: read %d of %d bytes", ErrShortRead, path, n, size)
		}
		return nil, err
	}
	if closeErr != nil {
		return nil, closeErr
	}
	return &Buffer{Data: data}, nil
}
