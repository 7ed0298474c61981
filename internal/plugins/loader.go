// Package plugins discovers installed plugin distributions and loads their
// model bundles.
//
// A distribution is a directory under a plugins root carrying a plugin.hcl
// manifest (the entry-point metadata of the packaging world). The manifest
// declares named plugins, each rooted at a package directory probed for the
// four fixed sub-packages: models, notebooks, configurations,
// source_data_files. Loading installs every bundle manifest found under the
// models sub-packages and picks up variable-description side files.
package plugins

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/oadframe/internal/bundle"
	"github.com/vk/oadframe/internal/ctxlog"
	"github.com/vk/oadframe/internal/pkginspect"
	"github.com/vk/oadframe/internal/vardesc"
)

// ManifestFileName is the per-distribution manifest probed in each
// directory under a plugins root.
const ManifestFileName = "plugin.hcl"

// Plugin group identifiers. The legacy group is still honored but logs a
// deprecation warning.
const (
	PluginGroup       = "oadframe.plugins"
	LegacyPluginGroup = "oadframe.models"
)

// manifestSchema is the root of a plugin.hcl file.
type manifestSchema struct {
	Distributions []*distributionBlock `hcl:"distribution,block"`
}

type distributionBlock struct {
	Name    string         `hcl:"name,label"`
	Plugins []*pluginBlock `hcl:"plugin,block"`
}

type pluginBlock struct {
	Name    string `hcl:"name,label"`
	Group   string `hcl:"group,optional"`
	Package string `hcl:"package"`
}

// Loader discovers plugin distributions under one or more roots and loads
// their models into a bundle loader. Entry-point scanning and model loading
// happen exactly once per Loader, no matter how many times Load is called.
type Loader struct {
	roots   []string
	bundles *bundle.Loader

	once    sync.Once
	loadErr error

	mu     sync.Mutex
	dists  map[string]*DistributionPluginDefinition
	failed []string
}

// NewLoader creates a plugin loader over the given bundle loader and
// plugins roots.
func NewLoader(bundles *bundle.Loader, roots ...string) *Loader {
	return &Loader{
		bundles: bundles,
		roots:   roots,
		dists:   make(map[string]*DistributionPluginDefinition),
	}
}

// Load scans entry points and installs all plugin model bundles. Safe to
// call repeatedly; only the first call does work.
func (l *Loader) Load(ctx context.Context) error {
	l.once.Do(func() {
		if err := l.readEntryPoints(ctx); err != nil {
			l.loadErr = err
			return
		}
		l.loadModels(ctx)
	})
	return l.loadErr
}

// readEntryPoints scans every root for distribution manifests and builds
// the plugin definitions, probing sub-packages on the way.
func (l *Loader) readEntryPoints(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	for _, root := range l.roots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				logger.Debug("Plugins root does not exist, skipping.", "root", root)
				continue
			}
			return fmt.Errorf("cannot read plugins root %s: %w", root, err)
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			distDir := filepath.Join(root, entry.Name())
			manifestPath := filepath.Join(distDir, ManifestFileName)
			if _, err := os.Stat(manifestPath); err != nil {
				continue
			}
			if err := l.readManifest(ctx, distDir, manifestPath); err != nil {
				return err
			}
		}
	}

	logger.Debug("Plugin entry points read.", "distributions", len(l.dists))
	return nil
}

func (l *Loader) readManifest(ctx context.Context, distDir, manifestPath string) error {
	logger := ctxlog.FromContext(ctx)

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCLFile(manifestPath)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse plugin manifest %s: %w", manifestPath, diags)
	}
	var schema manifestSchema
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &schema); diags.HasErrors() {
		return fmt.Errorf("failed to decode plugin manifest %s: %w", manifestPath, diags)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, distBlock := range schema.Distributions {
		key := normalizeName(distBlock.Name)
		dist, ok := l.dists[key]
		if !ok {
			dist = newDistributionDefinition(distBlock.Name)
			l.dists[key] = dist
		}

		for _, pluginBlock := range distBlock.Plugins {
			switch pluginBlock.Group {
			case "", PluginGroup:
				// current protocol
			case LegacyPluginGroup:
				logger.Warn("Plugin uses the deprecated plugin group; please declare the current one.",
					"plugin", pluginBlock.Name, "group", pluginBlock.Group, "current", PluginGroup)
			default:
				logger.Debug("Ignoring plugin with unrecognized group.",
					"plugin", pluginBlock.Name, "group", pluginBlock.Group)
				continue
			}

			def := &PluginDefinition{
				Name:         pluginBlock.Name,
				Distribution: distBlock.Name,
				PackagePath:  filepath.Join(distDir, pluginBlock.Package),
			}
			def.detectSubPackages()
			dist.addPlugin(def)
			logger.Debug("Discovered plugin.",
				"distribution", distBlock.Name, "plugin", pluginBlock.Name,
				"sub_packages", len(def.SubPackages))
		}
	}
	return nil
}

// loadModels installs all bundles found under every plugin's models
// sub-package. Broken bundles are accumulated, not fatal.
func (l *Loader) loadModels(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)

	for _, dist := range l.distributions() {
		for _, plugin := range dist.Plugins() {
			modelsDir, ok := plugin.SubPackages[SubPackageModels]
			if !ok {
				continue
			}
			installed, failed := l.bundles.ExploreFolder(ctx, modelsDir, true)
			l.mu.Lock()
			l.failed = append(l.failed, failed...)
			l.mu.Unlock()

			loadDescriptions(ctx, modelsDir)
			logger.Info("Plugin models loaded.",
				"distribution", dist.Name, "plugin", plugin.Name,
				"installed", len(installed), "failed", len(failed))
		}
	}
}

// loadDescriptions loads the variable-description side file of every
// package encountered under dir, mirroring the recursive bundle walk.
func loadDescriptions(ctx context.Context, dir string) {
	reader := pkginspect.NewReader(dir)
	if !reader.IsPackage {
		return
	}
	if err := vardesc.LoadDir(ctx, dir); err != nil {
		ctxlog.FromContext(ctx).Warn("Failed to load variable descriptions.", "dir", dir, "error", err)
	}
	for _, name := range reader.Contents {
		loadDescriptions(ctx, filepath.Join(dir, name))
	}
}

// FailedBundles returns the bundle files that could not be installed during
// loading.
func (l *Loader) FailedBundles() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.failed...)
}

// distributions returns all known distributions sorted by name.
func (l *Loader) distributions() []*DistributionPluginDefinition {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*DistributionPluginDefinition, 0, len(l.dists))
	for _, dist := range l.dists {
		out = append(out, dist)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// DistributionNames returns the names of all discovered plugin
// distributions, sorted.
func (l *Loader) DistributionNames() []string {
	dists := l.distributions()
	names := make([]string, len(dists))
	for i, dist := range dists {
		names[i] = dist.Name
	}
	return names
}

// Distribution resolves a distribution by name, case- and
// underscore/hyphen-insensitively. With an empty name, the single installed
// distribution is returned; zero or several installed distributions yield
// the corresponding distinct errors.
func (l *Loader) Distribution(name string) (*DistributionPluginDefinition, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if name == "" {
		switch len(l.dists) {
		case 0:
			return nil, &NoDistributionError{}
		case 1:
			for _, dist := range l.dists {
				return dist, nil
			}
		}
		return nil, &SeveralDistributionsError{Known: l.distributionNamesLocked()}
	}

	dist, ok := l.dists[normalizeName(name)]
	if !ok {
		return nil, &UnknownDistributionError{Name: name, Known: l.distributionNamesLocked()}
	}
	return dist, nil
}

func (l *Loader) distributionNamesLocked() []string {
	names := make([]string, 0, len(l.dists))
	for _, dist := range l.dists {
		names = append(names, dist.Name)
	}
	sort.Strings(names)
	return names
}
