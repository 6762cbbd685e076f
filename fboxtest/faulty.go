package fboxtest

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/nuln/fbox"
)

// ErrInjected is returned by FaultyBackend when a fault carries no error
// of its own.
var ErrInjected = errors.New("fboxtest: injected fault")

// Fault defines specific failure behavior.
type Fault struct {
	FailOnOpen  bool
	ReadLimit   int64 // Report io.EOF after this many bytes were read. 0 disables.
	FailOnSync  bool
	FailOnClose bool
	Err         error
}

func (f Fault) err() error {
	if f.Err != nil {
		return f.Err
	}
	return ErrInjected
}

// FaultyBackend is a Backend wrapper that can inject errors, e.g. to
// exercise cleanup paths.
type FaultyBackend struct {
	fbox.Backend

	mu    sync.Mutex
	rules map[string]Fault // Path substring -> Fault
	opens int
}

// NewFaultyBackend wraps b. Without rules it behaves exactly like b.
func NewFaultyBackend(b fbox.Backend) *FaultyBackend {
	return &FaultyBackend{Backend: b, rules: make(map[string]Fault)}
}

// AddRule injects fault into every open of a path containing pattern.
func (f *FaultyBackend) AddRule(pattern string, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rules[pattern] = fault
}

// Opens returns the number of descriptors opened and not yet closed.
func (f *FaultyBackend) Opens() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.opens
}

func (f *FaultyBackend) Open(ctx context.Context, path string, mode fbox.Mode) (fbox.Descriptor, error) {
	f.mu.Lock()
	var fault Fault
	for pattern, rule := range f.rules {
		if strings.Contains(path, pattern) {
			fault = rule
		}
	}
	f.mu.Unlock()

	if fault.FailOnOpen {
		return nil, fault.err()
	}
	d, err := f.Backend.Open(ctx, path, mode)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.opens++
	f.mu.Unlock()
	return &faultyDescriptor{Descriptor: d, fs: f, fault: fault}, nil
}

type faultyDescriptor struct {
	fbox.Descriptor
	fs     *FaultyBackend
	fault  Fault
	read   int64
	closed bool
}

func (d *faultyDescriptor) Read(p []byte) (int, error) {
	if d.fault.ReadLimit > 0 {
		remaining := d.fault.ReadLimit - d.read
		if remaining <= 0 {
			return 0, io.EOF
		}
		if int64(len(p)) > remaining {
			p = p[:remaining]
		}
	}
	n, err := d.Descriptor.Read(p)
	d.read += int64(n)
	return n, err
}

func (d *faultyDescriptor) Sync() error {
	if d.fault.FailOnSync {
		return d.fault.err()
	}
	return d.Descriptor.Sync()
}

func (d *faultyDescriptor) Close() error {
	err := d.Descriptor.Close()
	if !d.closed {
		d.closed = true
		d.fs.mu.Lock()
		d.fs.opens--
		d.fs.mu.Unlock()
	}
	if d.fault.FailOnClose {
		return d.fault.err()
	}
	return err
}
