package bundle

import (
	"context"
	"path/filepath"

	"github.com/vk/oadframe/internal/ctxlog"
	"github.com/vk/oadframe/internal/fsutil"
	"github.com/vk/oadframe/internal/pkginspect"
)

// ExploreFolder installs every bundle manifest found under path as an
// independent bundle. With isPackage set, sub-packages are walked through
// pkginspect readers instead of a raw directory walk, skipping entries that
// are neither packages nor modules.
//
// Failures are swallowed per manifest: a broken file is logged as a warning
// and added to the failed set so that one broken third-party bundle does
// not block loading of all others. Returns the installed bundle names and
// the failed file paths.
func (l *Loader) ExploreFolder(ctx context.Context, path string, isPackage bool) (installed, failed []string) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Exploring folder for bundle manifests.", "path", path, "is_package", isPackage)

	var manifests []string
	if isPackage {
		manifests = collectPackageModules(path)
	} else {
		found, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			logger.Warn("Failed to walk bundle folder.", "path", path, "error", err)
			return nil, []string{path}
		}
		manifests = found
	}

	for _, manifest := range manifests {
		if err := l.installBundle(manifest); err != nil {
			logger.Warn("Failed to install bundle.", "bundle", manifest, "error", err)
			failed = append(failed, manifest)
			continue
		}
		logger.Debug("Installed bundle.", "bundle", manifest)
		installed = append(installed, manifest)
	}

	logger.Debug("Folder exploration finished.",
		"path", path, "installed", len(installed), "failed", len(failed))
	return installed, failed
}

// collectPackageModules gathers module files by recursing through package
// contents, the way plugin model packages are declared.
func collectPackageModules(path string) []string {
	reader := pkginspect.NewReader(path)
	if !reader.IsPackage {
		if reader.IsModule {
			return []string{path}
		}
		return nil
	}

	var modules []string
	for _, name := range reader.Contents {
		modules = append(modules, collectPackageModules(filepath.Join(path, name))...)
	}
	return modules
}

// installBundle parses one manifest file, binds its declared providers to
// their handlers, and registers the resulting factories. The bundle is
// installed all-or-nothing: any unknown handler, duplicate factory, or
// parse failure leaves the catalog untouched.
func (l *Loader) installBundle(path string) error {
	factories, err := parseManifest(path)
	if err != nil {
		return err
	}

	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()

	// Validate everything before touching the catalog, including duplicate
	// names within the manifest itself.
	seen := make(map[string]struct{}, len(factories))
	for _, factory := range factories {
		if _, dup := seen[factory.Name]; dup {
			return &DuplicateFactoryError{FactoryName: factory.Name}
		}
		seen[factory.Name] = struct{}{}

		if _, exists := l.fw.factories[factory.Name]; exists {
			return &DuplicateFactoryError{FactoryName: factory.Name}
		}
		handler, ok := l.fw.handlers[factory.HandlerName]
		if !ok {
			return &UnknownHandlerError{HandlerName: factory.HandlerName, FactoryName: factory.Name}
		}
		for _, service := range factory.Services {
			iface, declared := l.fw.contracts[service]
			if !declared || handler.ProductType == nil {
				continue
			}
			if !Satisfies(handler.ProductType, iface) {
				return &IncompatibleProductError{
					ServiceID:   service,
					FactoryName: factory.Name,
					HandlerName: factory.HandlerName,
					Required:    iface,
				}
			}
		}
		factory.Build = handler.New
	}

	var names []string
	for _, factory := range factories {
		if err := l.installFactoryLocked(factory); err != nil {
			return err
		}
		names = append(names, factory.Name)
	}
	l.fw.bundles[path] = names
	return nil
}
