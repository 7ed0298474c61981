package vardesc

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The description table is process-wide, so these tests share state and do
// not run in parallel.

func writeDescriptions(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))
	return dir
}

func TestLoadDir(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	dir := writeDescriptions(t, `
# wing geometry
data:geometry:wing:area || Wing reference area.
data:geometry:wing:aspect_ratio||Wing aspect ratio.
malformed line without separator
`)

	require.NoError(t, LoadDir(context.Background(), dir))

	assert.Equal(t, 2, Count())
	assert.Equal(t, "Wing reference area.", Describe("data:geometry:wing:area"))
	assert.Equal(t, "Wing aspect ratio.", Describe("data:geometry:wing:aspect_ratio"))
	assert.Empty(t, Describe("data:weight:mtow"))
}

func TestLoadDir_OncePerDirectory(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	dir := writeDescriptions(t, "a||first\n")
	ctx := context.Background()
	require.NoError(t, LoadDir(ctx, dir))

	// Rewriting the file has no effect: the directory was already read.
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("a||second\n"), 0o644))
	require.NoError(t, LoadDir(ctx, dir))

	assert.Equal(t, "first", Describe("a"))
}

func TestLoadDir_RetriedAfterFailure(t *testing.T) {
	Reset()
	t.Cleanup(Reset)
	ctx := context.Background()

	// A directory squatting on the side-file name makes the read fail.
	dir := t.TempDir()
	squatter := filepath.Join(dir, FileName)
	require.NoError(t, os.Mkdir(squatter, 0o755))
	require.Error(t, LoadDir(ctx, dir))

	// Once the file is readable, the next call loads it: the failure did
	// not mark the directory as done.
	require.NoError(t, os.Remove(squatter))
	require.NoError(t, os.WriteFile(squatter, []byte("a||recovered\n"), 0o644))
	require.NoError(t, LoadDir(ctx, dir))
	assert.Equal(t, "recovered", Describe("a"))
}

func TestLoadDir_MissingFile(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	require.NoError(t, LoadDir(context.Background(), t.TempDir()))
	assert.Zero(t, Count())
}
