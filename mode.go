package fbox

import (
	"os"
	"strings"
)

// Mode selects how a file is opened. Access bits may be combined with
// the Create, Append, and Truncate modifiers, e.g. WriteOnly|Create|Append.
type Mode uint8

const (
	ReadOnly Mode = 1 << iota
	WriteOnly
	Create
	Append
	Truncate

	ReadWrite = ReadOnly | WriteOnly
)

// CanRead reports whether the mode grants read access.
func (m Mode) CanRead() bool { return m&ReadOnly != 0 }

// CanWrite reports whether the mode grants write access.
func (m Mode) CanWrite() bool { return m&WriteOnly != 0 }

// Validate checks that the mode requests some access and that the
// modifiers are only used together with write access.
func (m Mode) Validate() error {
	if m&^(ReadWrite|Create|Append|Truncate) != 0 {
		return ErrInvalidMode
	}
	if !m.CanRead() && !m.CanWrite() {
		return ErrInvalidMode
	}
	if m&(Create|Append|Truncate) != 0 && !m.CanWrite() {
		return ErrInvalidMode
	}
	return nil
}

// Flag translates the mode into os.OpenFile flags.
func (m Mode) Flag() int {
	var flag int
	switch {
	case m.CanRead() && m.CanWrite():
		flag = os.O_RDWR
	case m.CanWrite():
		flag = os.O_WRONLY
	default:
		flag = os.O_RDONLY
	}
	if m&Create != 0 {
		flag |= os.O_CREATE
	}
	if m&Append != 0 {
		flag |= os.O_APPEND
	}
	if m&Truncate != 0 {
		flag |= os.O_TRUNC
	}
	return flag
}

func (m Mode) String() string {
	var parts []string
	switch {
	case m.CanRead() && m.CanWrite():
		parts = append(parts, "rw")
	case m.CanWrite():
		parts = append(parts, "w")
	case m.CanRead():
		parts = append(parts, "r")
	}
	if m&Create != 0 {
		parts = append(parts, "create")
	}
	if m&Append != 0 {
		parts = append(parts, "append")
	}
	if m&Truncate != 0 {
		parts = append(parts, "trunc")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}
