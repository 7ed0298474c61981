// Package bundle bridges compiled-in component factories and the bundle
// manifests discovered on disk.
//
// Go packages register named Handlers (builder functions) at startup; bundle
// manifests installed from plugin folders declare provider factories that
// bind a service identifier to one of those handlers, together with default
// options and descriptive properties. The same factory catalog also accepts
// direct code-side registrations from the service registry.
package bundle

import (
	"context"
	"fmt"
	"reflect"
	"runtime"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/ctxlog"
)

// Well-known property keys attached to factories.
const (
	PropDescription = "description"
	PropDomain      = "domain"
	PropOptions     = "options"
)

// Properties is the free-form metadata dict attached to a factory.
type Properties map[string]any

// DefaultOptions returns the registered default options, or an empty map.
func (p Properties) DefaultOptions() api.Options {
	if opts, ok := p[PropOptions].(api.Options); ok {
		return opts
	}
	return api.Options{}
}

// Handler is a compiled-in component builder registered by a Go package,
// addressable from bundle manifests by name.
type Handler struct {
	// New builds a fresh component instance from merged options.
	New api.Builder

	// ProductType is the concrete type New produces, checked against the
	// service's declared contract when a bundle binds this handler.
	ProductType reflect.Type
}

// Factory pairs a provider name with a builder and its properties. Factories
// live until the container is torn down or their bundle is uninstalled.
type Factory struct {
	Name       string
	Services   []string
	Build      api.Builder
	Properties Properties

	// SourceBundle is the manifest file that declared this factory, or ""
	// for code-side registrations.
	SourceBundle string

	// HandlerName is the compiled-in handler a manifest-declared factory
	// binds to; empty for code-side registrations.
	HandlerName string
}

// Loader is a handle on the module container. All Loader instances created
// with NewLoader share one process-wide container; NewIsolatedLoader gives
// tests a private one.
type Loader struct {
	fw *framework
}

// NewLoader returns a handle on the shared container.
func NewLoader() *Loader {
	return &Loader{fw: sharedFramework()}
}

// NewIsolatedLoader returns a handle on a fresh, private container.
func NewIsolatedLoader() *Loader {
	return &Loader{fw: newFramework()}
}

// RegisterHandler registers a compiled-in builder under a handler name.
// Registering two handlers under one name is a programmer error and panics.
func (l *Loader) RegisterHandler(name string, h *Handler) {
	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()
	if _, exists := l.fw.handlers[name]; exists {
		panic(fmt.Sprintf("handler with name '%s' already registered", name))
	}
	l.fw.handlers[name] = h
}

// Handler returns a registered handler by name.
func (l *Loader) Handler(name string) (*Handler, bool) {
	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()
	h, ok := l.fw.handlers[name]
	return h, ok
}

// DeclareContract records the interface every factory registered against a
// service must produce. Both code-side registrations and bundle installs
// are checked against it. Declaring a service twice is a programmer error
// and panics.
func (l *Loader) DeclareContract(serviceID string, iface reflect.Type) {
	if iface.Kind() != reflect.Interface {
		panic(fmt.Sprintf("service contract for '%s' must be an interface type, got %s", serviceID, iface))
	}
	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()
	if _, exists := l.fw.contracts[serviceID]; exists {
		panic(fmt.Sprintf("contract for service '%s' already declared", serviceID))
	}
	l.fw.contracts[serviceID] = iface
}

// Contract returns the interface declared for a service, if any.
func (l *Loader) Contract(serviceID string) (reflect.Type, bool) {
	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()
	iface, ok := l.fw.contracts[serviceID]
	return iface, ok
}

// Satisfies reports whether a concrete product type implements an
// interface, directly or through its pointer type.
func Satisfies(productType, iface reflect.Type) bool {
	return productType.Implements(iface) || reflect.PointerTo(productType).Implements(iface)
}

// RegisterFactory registers a provider factory against one or more service
// identifiers. A duplicate factory name fails with DuplicateFactoryError;
// the existing registration is kept.
func (l *Loader) RegisterFactory(factoryName string, serviceNames []string, build api.Builder, props Properties) error {
	if props == nil {
		props = Properties{}
	}
	factory := &Factory{
		Name:       factoryName,
		Services:   append([]string(nil), serviceNames...),
		Build:      build,
		Properties: props,
	}

	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()
	return l.installFactoryLocked(factory)
}

// installFactoryLocked inserts a factory into the catalog. Caller holds fw.mu.
func (l *Loader) installFactoryLocked(factory *Factory) error {
	if _, exists := l.fw.factories[factory.Name]; exists {
		return &DuplicateFactoryError{FactoryName: factory.Name}
	}
	l.fw.factories[factory.Name] = factory
	for _, service := range factory.Services {
		l.fw.byService[service] = append(l.fw.byService[service], factory.Name)
	}
	return nil
}

// GetFactoryNames returns the names of factories registered against a
// service, optionally filtered by property equality. Property values are
// compared as strings, case-insensitively unless caseSensitive is set.
func (l *Loader) GetFactoryNames(serviceName string, propFilter Properties, caseSensitive bool) []string {
	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()

	var names []string
	for _, name := range l.fw.byService[serviceName] {
		if factoryMatches(l.fw.factories[name], propFilter, caseSensitive) {
			names = append(names, name)
		}
	}
	return names
}

func factoryMatches(factory *Factory, propFilter Properties, caseSensitive bool) bool {
	for key, want := range propFilter {
		got, ok := factory.Properties[key]
		if !ok {
			return false
		}
		wantStr, gotStr := fmt.Sprint(want), fmt.Sprint(got)
		if caseSensitive {
			if wantStr != gotStr {
				return false
			}
		} else if !strings.EqualFold(wantStr, gotStr) {
			return false
		}
	}
	return true
}

// GetProperties returns the properties of a named factory.
func (l *Loader) GetProperties(factoryName string) (Properties, error) {
	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()
	factory, ok := l.fw.factories[factoryName]
	if !ok {
		return nil, &UnknownFactoryError{FactoryName: factoryName}
	}
	return factory.Properties, nil
}

// GetFactory returns a named factory.
func (l *Loader) GetFactory(factoryName string) (*Factory, error) {
	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()
	factory, ok := l.fw.factories[factoryName]
	if !ok {
		return nil, &UnknownFactoryError{FactoryName: factoryName}
	}
	return factory, nil
}

// ServiceNames returns all service identifiers with at least one registered
// factory, sorted.
func (l *Loader) ServiceNames() []string {
	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()
	names := make([]string, 0, len(l.fw.byService))
	for service := range l.fw.byService {
		names = append(names, service)
	}
	sort.Strings(names)
	return names
}

// Instantiate builds a fresh component from a named factory. Registered
// default options are merged with the caller's overrides (caller wins)
// before the builder runs; an undeclared override key fails with
// api.UnknownOptionError. Each instance gets a unique generated name.
func (l *Loader) Instantiate(ctx context.Context, factoryName string, opts api.Options) (api.System, error) {
	factory, err := l.GetFactory(factoryName)
	if err != nil {
		return nil, err
	}

	merged, err := api.MergeOptions(factoryName, factory.Properties.DefaultOptions(), opts)
	if err != nil {
		return nil, err
	}

	instanceName := factoryName + "-" + uuid.NewString()[:8]
	ctxlog.FromContext(ctx).Debug("Instantiating component.",
		"factory", factoryName, "instance", instanceName)

	system, err := factory.Build(instanceName, merged)
	if err != nil {
		return nil, fmt.Errorf("factory %q failed to build an instance: %w", factoryName, err)
	}
	if err := system.Setup(ctx); err != nil {
		return nil, fmt.Errorf("setup of %q failed: %w", instanceName, err)
	}
	return system, nil
}

// InstalledBundles returns the names of all installed bundles, sorted.
func (l *Loader) InstalledBundles() []string {
	l.fw.mu.Lock()
	defer l.fw.mu.Unlock()
	names := make([]string, 0, len(l.fw.bundles))
	for name := range l.fw.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CleanMemory uninstalls every bundle installed from disk, dropping the
// factories they contributed, then forces a garbage collection pass.
// Compiled-in handler and factory registrations survive. This is the
// cooperative escape hatch against container growth over repeated runs.
func (l *Loader) CleanMemory(ctx context.Context) {
	l.fw.mu.Lock()
	for bundleName, factoryNames := range l.fw.bundles {
		for _, name := range factoryNames {
			l.fw.removeFactory(name)
		}
		delete(l.fw.bundles, bundleName)
	}
	l.fw.mu.Unlock()

	runtime.GC()
	ctxlog.FromContext(ctx).Debug("Bundle container memory cleaned.")
}
