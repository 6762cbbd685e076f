package fbox

import (
	"errors"
	"os"
)

// Common errors. Where possible, these alias os package errors
// for compatibility with errors.Is(err, fs.ErrNotExist) and friends.
var (
	ErrNotFound       = os.ErrNotExist
	ErrExist          = os.ErrExist
	ErrPermission     = os.ErrPermission
	ErrInvalid        = os.ErrInvalid
	ErrClosed         = os.ErrClosed
	ErrInvalidMode    = errors.New("fbox: invalid open mode")
	ErrEmptyFile      = errors.New("fbox: file is empty")
	ErrShortRead      = errors.New("fbox: short read")
	ErrTooLarge       = errors.New("fbox: file too large to buffer")
	ErrNotSupported   = errors.New("fbox: operation not supported by this backend")
	ErrUnknownBackend = errors.New("fbox: unknown backend")
)
