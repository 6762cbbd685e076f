package fbox

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// DefaultBackend is the backend selected at process start.
const DefaultBackend = "io"

// Factory is a function that creates a [Backend] from a [Config].
type Factory func(cfg *Config) (Backend, error)

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	selected  = DefaultBackend

	defaultsMu sync.Mutex
	defaults   = make(map[string]*FS)
)

// Register makes a backend available by the provided name.
// This is typically called from the driver package's init() function.
// It panics if called twice with the same name.
func Register(name string, factory Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[name]; exists {
		panic(fmt.Sprintf("fbox: backend %q already registered", name))
	}
	factories[name] = factory
}

// Backends returns a sorted list of all registered backend names.
func Backends() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetBackend changes the backend that [Default] and the package-level
// helpers bind new handles to. Handles that are already open keep their
// backend. The name must be registered.
func SetBackend(name string) error {
	mu.Lock()
	defer mu.Unlock()

	if _, ok := factories[name]; !ok {
		return fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}
	selected = name
	return nil
}

// CurrentBackend returns the name of the currently selected backend.
func CurrentBackend() string {
	mu.RLock()
	defer mu.RUnlock()
	return selected
}

// New creates an [FS] using the backend named in cfg.Backend.
func New(cfg *Config) (*FS, error) {
	if cfg == nil {
		return nil, fmt.Errorf("fbox: config must not be nil")
	}

	name := cfg.Backend
	if name == "" {
		name = CurrentBackend()
	}

	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}

	log, err := cfg.logger()
	if err != nil {
		return nil, err
	}

	backend, err := factory(cfg)
	if err != nil {
		return nil, err
	}

	return NewFS(backend, WithLogger(log), WithMetrics(cfg.Metrics)), nil
}

// MustNew is like [New] but panics on error.
func MustNew(cfg *Config) *FS {
	fsys, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return fsys
}

// Default returns the FS of the currently selected backend. It is built
// on first use and reused afterwards.
func Default() (*FS, error) {
	name := CurrentBackend()

	defaultsMu.Lock()
	defer defaultsMu.Unlock()

	if fsys, ok := defaults[name]; ok {
		return fsys, nil
	}
	fsys, err := New(&Config{Backend: name})
	if err != nil {
		return nil, err
	}
	defaults[name] = fsys
	return fsys, nil
}

// Open opens path through the currently selected backend.
func Open(ctx context.Context, path string, mode Mode) (*File, error) {
	fsys, err := Default()
	if err != nil {
		return nil, err
	}
	return fsys.Open(ctx, path, mode)
}

// GetSize returns the size of path using the currently selected backend.
func GetSize(ctx context.Context, path string) (int64, error) {
	fsys, err := Default()
	if err != nil {
		return 0, err
	}
	return fsys.GetSize(ctx, path)
}

// Dump reads the whole of path using the currently selected backend.
func Dump(ctx context.Context, path string) (*Buffer, error) {
	fsys, err := Default()
	if err != nil {
		return nil, err
	}
	return fsys.Dump(ctx, path)
}
