package bundle_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/bundle"
	"github.com/vk/oadframe/internal/testutil"
)

// coefficientCapable is a contract the test system does not satisfy.
type coefficientCapable interface {
	Coefficient(aspectRatio float64) float64
}

const validManifest = `
provider "provider.declared.1" {
  service     = "service.declared"
  handler     = "handler.test"
  description = "Declared in a bundle manifest."
  domain      = "aerodynamics"

  options {
    k_factor = 0.95
    method   = "raymer"
  }
}
`

func TestExploreFolder_InstallsManifests(t *testing.T) {
	t.Parallel()
	loader := bundle.NewIsolatedLoader()
	testutil.RegisterTestHandler(loader, "handler.test")

	root := testutil.WriteFiles(t, map[string]string{
		"sub/oswald.hcl": validManifest,
	})

	installed, failed := loader.ExploreFolder(context.Background(), root, false)
	require.Len(t, installed, 1)
	assert.Empty(t, failed)

	factory, err := loader.GetFactory("provider.declared.1")
	require.NoError(t, err)
	assert.Equal(t, []string{"service.declared"}, factory.Services)
	assert.Equal(t, "handler.test", factory.HandlerName)
	assert.Equal(t, "aerodynamics", factory.Properties[bundle.PropDomain])

	opts := factory.Properties.DefaultOptions()
	assert.Equal(t, 0.95, opts.Float("k_factor", 0))
	assert.Equal(t, "raymer", opts.String("method", ""))
}

func TestExploreFolder_BrokenManifestDoesNotBlockOthers(t *testing.T) {
	t.Parallel()
	loader := bundle.NewIsolatedLoader()
	testutil.RegisterTestHandler(loader, "handler.test")

	root := testutil.WriteFiles(t, map[string]string{
		"good.hcl":   validManifest,
		"broken.hcl": `provider "unterminated {`,
	})

	installed, failed := loader.ExploreFolder(context.Background(), root, false)

	assert.Len(t, installed, 1)
	require.Len(t, failed, 1)
	assert.Contains(t, failed[0], "broken.hcl")

	_, err := loader.GetFactory("provider.declared.1")
	assert.NoError(t, err)
}

func TestExploreFolder_UnknownHandler(t *testing.T) {
	t.Parallel()
	loader := bundle.NewIsolatedLoader()

	root := testutil.WriteFiles(t, map[string]string{
		"orphan.hcl": `
provider "provider.orphan" {
  service = "service.x"
  handler = "handler.never.registered"
}
`,
	})

	installed, failed := loader.ExploreFolder(context.Background(), root, false)

	assert.Empty(t, installed)
	assert.Len(t, failed, 1)
	_, err := loader.GetFactory("provider.orphan")
	var unknownErr *bundle.UnknownFactoryError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestExploreFolder_AllOrNothingPerBundle(t *testing.T) {
	t.Parallel()
	loader := bundle.NewIsolatedLoader()
	testutil.RegisterTestHandler(loader, "handler.test")

	// The second provider references a missing handler, so the whole file
	// must be rejected, including the valid first provider.
	root := testutil.WriteFiles(t, map[string]string{
		"mixed.hcl": `
provider "provider.good" {
  service = "service.x"
  handler = "handler.test"
}

provider "provider.bad" {
  service = "service.x"
  handler = "handler.missing"
}
`,
	})

	installed, failed := loader.ExploreFolder(context.Background(), root, false)

	assert.Empty(t, installed)
	assert.Len(t, failed, 1)
	_, err := loader.GetFactory("provider.good")
	assert.Error(t, err)
}

func TestExploreFolder_PackageWalk(t *testing.T) {
	t.Parallel()
	loader := bundle.NewIsolatedLoader()
	testutil.RegisterTestHandler(loader, "handler.test")

	// Package walk follows sub-packages but ignores files that are not
	// modules, such as stray text files.
	root := testutil.WriteFiles(t, map[string]string{
		"models/aerodynamics/oswald.hcl": validManifest,
		"models/readme.txt":              "not a module",
	})

	installed, failed := loader.ExploreFolder(context.Background(), root, true)

	require.Len(t, installed, 1)
	assert.Empty(t, failed)
	_, err := loader.GetFactory("provider.declared.1")
	assert.NoError(t, err)
}

func TestExploreFolder_DuplicateProviderWithinManifest(t *testing.T) {
	t.Parallel()
	loader := bundle.NewIsolatedLoader()
	testutil.RegisterTestHandler(loader, "handler.test")
	ctx := context.Background()

	// Two provider blocks under one name within a single manifest: the
	// whole bundle is rejected and nothing leaks into the catalog.
	root := testutil.WriteFiles(t, map[string]string{
		"dup.hcl": `
provider "provider.dup" {
  service = "service.x"
  handler = "handler.test"
}

provider "provider.dup" {
  service = "service.y"
  handler = "handler.test"
}
`,
	})

	installed, failed := loader.ExploreFolder(ctx, root, false)

	assert.Empty(t, installed)
	assert.Len(t, failed, 1)
	_, err := loader.GetFactory("provider.dup")
	var unknownErr *bundle.UnknownFactoryError
	assert.ErrorAs(t, err, &unknownErr)

	// Nothing half-installed is left for cleanup to miss.
	loader.CleanMemory(ctx)
	_, err = loader.GetFactory("provider.dup")
	assert.ErrorAs(t, err, &unknownErr)
}

func TestExploreFolder_ContractCheckedAtInstall(t *testing.T) {
	t.Parallel()
	loader := bundle.NewIsolatedLoader()
	testutil.RegisterTestHandler(loader, "handler.test")
	loader.DeclareContract("service.declared", reflect.TypeOf((*coefficientCapable)(nil)).Elem())

	root := testutil.WriteFiles(t, map[string]string{
		"oswald.hcl": validManifest,
	})

	installed, failed := loader.ExploreFolder(context.Background(), root, false)

	assert.Empty(t, installed)
	assert.Len(t, failed, 1)
	_, err := loader.GetFactory("provider.declared.1")
	var unknownErr *bundle.UnknownFactoryError
	assert.ErrorAs(t, err, &unknownErr)
}

func TestExploreFolder_ContractSatisfied(t *testing.T) {
	t.Parallel()
	loader := bundle.NewIsolatedLoader()
	testutil.RegisterTestHandler(loader, "handler.test")
	loader.DeclareContract("service.declared", reflect.TypeOf((*api.System)(nil)).Elem())

	root := testutil.WriteFiles(t, map[string]string{
		"oswald.hcl": validManifest,
	})

	installed, failed := loader.ExploreFolder(context.Background(), root, false)

	assert.Len(t, installed, 1)
	assert.Empty(t, failed)
	_, err := loader.GetFactory("provider.declared.1")
	assert.NoError(t, err)
}

func TestExploreFolder_ManifestWithoutService(t *testing.T) {
	t.Parallel()
	loader := bundle.NewIsolatedLoader()
	testutil.RegisterTestHandler(loader, "handler.test")

	root := testutil.WriteFiles(t, map[string]string{
		"noservice.hcl": `
provider "provider.noservice" {
  handler = "handler.test"
}
`,
	})

	installed, failed := loader.ExploreFolder(context.Background(), root, false)
	assert.Empty(t, installed)
	assert.Len(t, failed, 1)
}

func TestInstantiate_ManifestDeclaredProvider(t *testing.T) {
	t.Parallel()
	loader := bundle.NewIsolatedLoader()
	testutil.RegisterTestHandler(loader, "handler.test")

	root := testutil.WriteFiles(t, map[string]string{
		"oswald.hcl": validManifest,
	})
	installed, failed := loader.ExploreFolder(context.Background(), root, false)
	require.Len(t, installed, 1)
	require.Empty(t, failed)

	system, err := loader.Instantiate(context.Background(), "provider.declared.1", api.Options{"k_factor": 1.0})
	require.NoError(t, err)

	ts, ok := system.(*testutil.TestSystem)
	require.True(t, ok)
	assert.Equal(t, 1.0, ts.Options.Float("k_factor", 0))
	assert.Equal(t, "raymer", ts.Options.String("method", ""))
}
