package fbox

import (
	"fmt"
	"os"
	"time"
)

// FileInfo describes a file as reported by a backend's Stater.
type FileInfo struct {
	Name    string      `json:"name"`
	Size    int64       `json:"size"`
	ModTime time.Time   `json:"modTime"`
	Mode    os.FileMode `json:"mode"`
	IsDir   bool        `json:"isDir"`
	Path    string      `json:"path"`
}

// ToFileInfo converts FileInfo to a standard os.FileInfo.
func (i *FileInfo) ToFileInfo() os.FileInfo {
	return &fileInfoWrap{i}
}

type fileInfoWrap struct {
	i *FileInfo
}

func (w *fileInfoWrap) Name() string       { return w.i.Name }
func (w *fileInfoWrap) Size() int64        { return w.i.Size }
func (w *fileInfoWrap) Mode() os.FileMode  { return w.i.Mode }
func (w *fileInfoWrap) ModTime() time.Time { return w.i.ModTime }
func (w *fileInfoWrap) IsDir() bool        { return w.i.IsDir }
func (w *fileInfoWrap) Sys() interface{}   { return nil }

// Buffer holds the full contents of a file returned by Dump.
// The caller owns Data.
type Buffer struct {
	Data []byte
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Data)
}

// Bytes returns the buffer contents.
func (b *Buffer) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.Data
}

// FilesystemStats is a snapshot of the capacity of the filesystem holding
// a path. TypeName is empty when the filesystem type is not registered.
type FilesystemStats struct {
	Path           string   `json:"path"`
	BlockSize      uint64   `json:"blockSize"`
	TotalBytes     uint64   `json:"totalBytes"`
	AvailableBytes uint64   `json:"availableBytes"`
	FreeBytes      uint64   `json:"freeBytes"`
	Magic          uint32   `json:"magic"`
	TypeName       string   `json:"typeName,omitempty"`
	TypeCandidates []string `json:"typeCandidates,omitempty"`
}

// PaddedTypeName returns TypeName right-padded to the fixed label width
// used by the type registry. An unknown type yields an empty string.
func (s *FilesystemStats) PaddedTypeName() string {
	if s.TypeName == "" {
		return ""
	}
	return fmt.Sprintf("%-*s", fsTypeNameWidth, s.TypeName)
}
