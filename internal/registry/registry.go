// Package registry provides the service registration surface that model
// packages use to publish their systems and submodels, and the resolution
// logic that orchestration code uses to turn a service identifier into a
// concrete component instance.
//
// Registrations land in the bundle factory catalog, so providers declared
// in code and providers installed from plugin bundle manifests are resolved
// through one mechanism.
package registry

import (
	"context"
	"reflect"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/bundle"
	"github.com/vk/oadframe/internal/ctxlog"
)

// Kind property values distinguishing plain systems from submodels in
// listings.
const (
	PropKind     = "kind"
	KindSystem   = "system"
	KindSubmodel = "submodel"
)

// Module is the interface model packages implement to register their
// providers into a Registry.
type Module interface {
	Register(r *Registry) error
}

// Provider holds the compiled Go parts of one service provider.
type Provider struct {
	// New builds a fresh component instance from merged options.
	New api.Builder

	// ProductType is the concrete type New produces, checked against the
	// service's declared interface at registration time.
	ProductType reflect.Type
}

// Registry wraps a bundle loader with the service/submodel registration and
// resolution protocol.
type Registry struct {
	loader *bundle.Loader
}

// New creates a Registry over the given bundle loader.
func New(loader *bundle.Loader) *Registry {
	return &Registry{loader: loader}
}

// Loader exposes the underlying bundle loader.
func (r *Registry) Loader() *bundle.Loader {
	return r.loader
}

// DeclareService declares the interface every provider of a service must
// implement. The contract lives in the bundle container, so providers
// installed from bundle manifests are checked against it too. Declaring a
// service twice is a programmer error and panics.
func (r *Registry) DeclareService(serviceID string, iface reflect.Type) {
	r.loader.DeclareContract(serviceID, iface)
}

// Option customizes one registration.
type Option func(*registration)

type registration struct {
	description string
	domain      Domain
	defaults    api.Options
}

// WithDescription attaches a human description to the provider.
func WithDescription(desc string) Option {
	return func(reg *registration) { reg.description = desc }
}

// WithDomain tags the provider with a domain.
func WithDomain(domain Domain) Option {
	return func(reg *registration) { reg.domain = domain }
}

// WithDefaults declares the provider's option names and default values.
// Callers may only override options declared here.
func WithDefaults(defaults api.Options) Option {
	return func(reg *registration) { reg.defaults = defaults }
}

// RegisterSystem registers a provider of a top-level system service.
func (r *Registry) RegisterSystem(serviceID, providerID string, p *Provider, opts ...Option) error {
	return r.register(serviceID, providerID, KindSystem, p, opts...)
}

// RegisterSubmodel registers a provider of a submodel service.
func (r *Registry) RegisterSubmodel(serviceID, providerID string, p *Provider, opts ...Option) error {
	return r.register(serviceID, providerID, KindSubmodel, p, opts...)
}

func (r *Registry) register(serviceID, providerID, kind string, p *Provider, opts ...Option) error {
	reg := registration{domain: DomainUnspecified, defaults: api.Options{}}
	for _, opt := range opts {
		opt(&reg)
	}

	if err := r.checkContract(serviceID, providerID, p.ProductType); err != nil {
		return err
	}

	props := bundle.Properties{
		bundle.PropDescription: reg.description,
		bundle.PropDomain:      string(reg.domain),
		bundle.PropOptions:     reg.defaults,
		PropKind:               kind,
	}
	if err := r.loader.RegisterFactory(providerID, []string{serviceID}, p.New, props); err != nil {
		return err
	}

	// Manifest-declared providers may rebind the same builder under a
	// different provider id, so publish it as a handler too.
	r.loader.RegisterHandler(providerID, &bundle.Handler{New: p.New, ProductType: p.ProductType})
	return nil
}

// checkContract verifies the provider's product type against the service's
// declared interface, if any.
func (r *Registry) checkContract(serviceID, providerID string, productType reflect.Type) error {
	iface, declared := r.loader.Contract(serviceID)
	if !declared || productType == nil {
		return nil
	}
	if bundle.Satisfies(productType, iface) {
		return nil
	}
	return &IncompatibleServiceClassError{
		ServiceID:  serviceID,
		ProviderID: providerID,
		Required:   iface,
	}
}

// GetProviderIDs returns the provider identifiers registered against a
// service, in registration order.
func (r *Registry) GetProviderIDs(serviceID string) []string {
	return r.loader.GetFactoryNames(serviceID, nil, false)
}

// GetProvider instantiates a provider directly by its identifier.
func (r *Registry) GetProvider(ctx context.Context, providerID string, opts api.Options) (api.System, error) {
	return r.loader.Instantiate(ctx, providerID, opts)
}

// GetSystem instantiates a system service provider by provider identifier.
// It is GetProvider under the name orchestration code uses.
func (r *Registry) GetSystem(ctx context.Context, providerID string, opts api.Options) (api.System, error) {
	system, err := r.GetProvider(ctx, providerID, opts)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("System instantiated.", "provider", providerID, "instance", system.Name())
	return system, nil
}
