package recording

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
)

var (
	// ErrUnknownFormat is returned for an output format no backend
	// package has registered.
	ErrUnknownFormat = errors.New("recording: unknown output format")

	// ErrNotWriter is returned by NewWriterBackend for a backend that
	// only draws and cannot serialize its result.
	ErrNotWriter = errors.New("recording: backend does not write output")
)

// BackendFactory creates a new backend instance.
type BackendFactory func() Backend

// formats maps an output format name ("png", "svg") to its backend.
var (
	formatsMu sync.RWMutex
	formats   = make(map[string]BackendFactory)
)

// Register adds the backend for output format name. Backend packages call
// it from init, so importing a backend for side effects enables its format:
//
//	import _ "github.com/gogpu/chart/recording/backends/svg"
//
// Register panics on a nil factory or a format registered twice.
func Register(name string, factory BackendFactory) {
	if factory == nil {
		panic("recording: nil factory for format " + name)
	}
	formatsMu.Lock()
	defer formatsMu.Unlock()
	if _, dup := formats[name]; dup {
		panic("recording: format " + name + " registered twice")
	}
	formats[name] = factory
}

// Unregister removes format name. Removing an absent format is a no-op.
func Unregister(name string) {
	formatsMu.Lock()
	delete(formats, name)
	formatsMu.Unlock()
}

// NewBackend returns a fresh backend for format name.
func NewBackend(name string) (Backend, error) {
	formatsMu.RLock()
	factory, ok := formats[name]
	formatsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownFormat, name, Backends())
	}
	return factory(), nil
}

// NewWriterBackend is NewBackend restricted to backends that serialize
// their output, the only kind Chart.Encode can use.
func NewWriterBackend(name string) (WriterBackend, error) {
	b, err := NewBackend(name)
	if err != nil {
		return nil, err
	}
	wb, ok := b.(WriterBackend)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotWriter, name)
	}
	return wb, nil
}

// Backends returns the registered format names in sorted order.
func Backends() []string {
	formatsMu.RLock()
	defer formatsMu.RUnlock()
	return slices.Sorted(maps.Keys(formats))
}

// IsRegistered reports whether format name has a backend.
func IsRegistered(name string) bool {
	formatsMu.RLock()
	_, ok := formats[name]
	formatsMu.RUnlock()
	return ok
}
