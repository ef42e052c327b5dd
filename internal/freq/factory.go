// This file implements the scanner registry. Strategies register under a
// stable name; the CLI, server and calibration all resolve scanners
// through a factory instead of constructing them directly.

package freq

import (
	"sort"
	"sync"

	apperrors "github.com/agbru/dupscan/internal/errors"
)

// ScannerFactory resolves scan strategies by name.
type ScannerFactory interface {
	// Get returns the scanner registered under name, or a ConfigError if
	// no such strategy exists.
	Get(name string) (Scanner, error)
	// MustGet returns the scanner registered under name and panics if it
	// is absent. Reserved for names known at compile time.
	MustGet(name string) Scanner
	// List returns the registered strategy names in sorted order.
	List() []string
	// GetAll returns all registered scanners, ordered by List.
	GetAll() []Scanner
}

// scannerFactory is the map-backed ScannerFactory implementation.
type scannerFactory struct {
	mu      sync.RWMutex
	entries map[string]Scanner
}

// NewDefaultFactory returns a factory with every built-in strategy
// registered: sequential, chunked and sharded.
func NewDefaultFactory() ScannerFactory {
	f := &scannerFactory{entries: make(map[string]Scanner)}
	f.register(SequentialScanner{})
	f.register(ChunkedScanner{})
	f.register(ShardedScanner{})
	return f
}

var (
	globalFactory     ScannerFactory
	globalFactoryOnce sync.Once
)

// GlobalFactory returns the process-wide default factory, constructed on
// first use.
func GlobalFactory() ScannerFactory {
	globalFactoryOnce.Do(func() {
		globalFactory = NewDefaultFactory()
	})
	return globalFactory
}

// register adds s under its Name. Later registrations replace earlier ones.
func (f *scannerFactory) register(s Scanner) {
	f.mu.Lock()
	f.entries[s.Name()] = s
	f.mu.Unlock()
}

// Get returns the scanner registered under name.
func (f *scannerFactory) Get(name string) (Scanner, error) {
	f.mu.RLock()
	s, ok := f.entries[name]
	f.mu.RUnlock()
	if !ok {
		return nil, apperrors.NewConfigError("unknown strategy %q", name)
	}
	return s, nil
}

// MustGet returns the scanner registered under name, panicking if absent.
func (f *scannerFactory) MustGet(name string) Scanner {
	s, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return s
}

// List returns the registered strategy names in sorted order.
func (f *scannerFactory) List() []string {
	f.mu.RLock()
	names := make([]string, 0, len(f.entries))
	for name := range f.entries {
		names = append(names, name)
	}
	f.mu.RUnlock()
	sort.Strings(names)
	return names
}

// GetAll returns all registered scanners in List order.
func (f *scannerFactory) GetAll() []Scanner {
	names := f.List()
	f.mu.RLock()
	defer f.mu.RUnlock()
	scanners := make([]Scanner, 0, len(names))
	for _, name := range names {
		scanners = append(scanners, f.entries[name])
	}
	return scanners
}
