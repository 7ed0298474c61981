// Package testutil provides shared helpers for registry and plugin tests:
// an isolated registry over a private bundle container, a trivial test
// system, and fabrication of plugin distributions on disk.
package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/bundle"
	"github.com/vk/oadframe/internal/registry"
	"github.com/vk/oadframe/internal/variables"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// NewRegistry returns a registry over a fresh, private bundle container so
// tests never share factory state.
func NewRegistry() *registry.Registry {
	return registry.New(bundle.NewIsolatedLoader())
}

// TestSystem is a trivial component that records the options it was built
// with and counts Compute calls.
type TestSystem struct {
	api.Base
	Options  api.Options
	Computed int
}

// Compute counts invocations and touches no variables.
func (s *TestSystem) Compute(ctx context.Context, vars *variables.VariableList) error {
	s.Computed++
	return nil
}

// NewTestSystem is an api.Builder producing TestSystem instances.
func NewTestSystem(name string, opts api.Options) (api.System, error) {
	return &TestSystem{Base: api.NewBase(name), Options: opts}, nil
}

// TestProvider returns a registry.Provider built on TestSystem.
func TestProvider() *registry.Provider {
	return &registry.Provider{
		New:         NewTestSystem,
		ProductType: reflect.TypeOf(TestSystem{}),
	}
}

// RegisterTestHandler publishes the TestSystem builder under a handler
// name, for bundle manifests to bind against.
func RegisterTestHandler(loader *bundle.Loader, name string) {
	loader.RegisterHandler(name, &bundle.Handler{
		New:         NewTestSystem,
		ProductType: reflect.TypeOf(TestSystem{}),
	})
}

// WriteFiles writes the given relative-path/content pairs under a fresh
// temporary root and returns the root. Subdirectory structure is created
// from the relative paths.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}
