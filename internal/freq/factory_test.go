package freq

import (
	"errors"
	"testing"

	apperrors "github.com/agbru/dupscan/internal/errors"
)

// TestDefaultFactoryContents verifies that the default factory exposes all
// built-in strategies under their documented names.
func TestDefaultFactoryContents(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	names := factory.List()
	want := []string{"chunked", "sequential", "sharded"}
	if len(names) != len(want) {
		t.Fatalf("List() = %v, want %v", names, want)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("List()[%d] = %q, want %q", i, names[i], name)
		}
	}

	for _, name := range want {
		s, err := factory.Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if s.Name() != name {
			t.Errorf("Get(%q).Name() = %q", name, s.Name())
		}
	}
}

// TestFactoryGetUnknown verifies that unknown names yield a ConfigError so
// the CLI maps them to the configuration exit code.
func TestFactoryGetUnknown(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	_, err := factory.Get("quantum")
	if err == nil {
		t.Fatal("expected error for unknown strategy")
	}
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigError, got %T: %v", err, err)
	}
}

// TestFactoryMustGetPanics verifies the panic contract for unknown names.
func TestFactoryMustGetPanics(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	defer func() {
		if recover() == nil {
			t.Error("expected MustGet to panic for unknown strategy")
		}
	}()
	factory.MustGet("quantum")
}

// TestFactoryGetAllOrder verifies that GetAll matches List ordering.
func TestFactoryGetAllOrder(t *testing.T) {
	t.Parallel()
	factory := NewDefaultFactory()

	names := factory.List()
	scanners := factory.GetAll()
	if len(scanners) != len(names) {
		t.Fatalf("GetAll() returned %d scanners for %d names", len(scanners), len(names))
	}
	for i, s := range scanners {
		if s.Name() != names[i] {
			t.Errorf("GetAll()[%d].Name() = %q, want %q", i, s.Name(), names[i])
		}
	}
}

// TestGlobalFactorySingleton verifies that GlobalFactory returns the same
// instance on every call.
func TestGlobalFactorySingleton(t *testing.T) {
	t.Parallel()
	if GlobalFactory() != GlobalFactory() {
		t.Error("GlobalFactory() should return a stable instance")
	}
	if len(GlobalFactory().List()) == 0 {
		t.Error("GlobalFactory() should have built-in strategies registered")
	}
}
