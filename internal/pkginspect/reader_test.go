package pkginspect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader_BlankPath(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"", "   "} {
		r := NewReader(path)
		assert.False(t, r.IsPackage)
		assert.False(t, r.IsModule)
		assert.False(t, r.Exists)
		assert.False(t, r.HasError)
		assert.Empty(t, r.Contents)
	}
}

func TestNewReader_NonExistentPath(t *testing.T) {
	t.Parallel()

	r := NewReader(filepath.Join(t.TempDir(), "no", "such", "package"))
	assert.False(t, r.Exists)
	assert.False(t, r.HasError)
	assert.False(t, r.IsPackage)
	assert.False(t, r.IsModule)
}

func TestNewReader_Package(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "oswald.hcl"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(""), 0o644))

	r := NewReader(dir)
	assert.True(t, r.IsPackage)
	assert.True(t, r.Exists)
	assert.False(t, r.IsModule)
	// Only sub-packages and module files count as contents.
	assert.Equal(t, []string{"oswald.hcl", "sub"}, r.Contents)
}

func TestNewReader_Module(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "polar.hcl")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	r := NewReader(path)
	assert.True(t, r.IsModule)
	assert.True(t, r.Exists)
	assert.False(t, r.IsPackage)
	assert.False(t, r.HasError)
	assert.Empty(t, r.Contents)
}

func TestNewReader_ExtensionlessFile(t *testing.T) {
	t.Parallel()

	// A plain file without a module extension looks like a mistyped
	// sub-package: it must be flagged as an error, not a module.
	path := filepath.Join(t.TempDir(), "models")
	require.NoError(t, os.WriteFile(path, []byte("not a package"), 0o644))

	r := NewReader(path)
	assert.False(t, r.IsPackage)
	assert.False(t, r.IsModule)
	assert.True(t, r.HasError)
}
