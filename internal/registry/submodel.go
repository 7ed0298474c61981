package registry

import (
	"context"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/ctxlog"
)

// ResolutionContext holds the submodel overrides for one orchestration run:
// a mapping from service identifier to a forced provider choice, or to an
// explicit deactivation. It replaces ambient global state; every GetSubmodel
// call receives the context it should resolve against.
//
// Resolution runs single-threaded, so ResolutionContext performs no locking
// of its own.
type ResolutionContext struct {
	// overrides maps service id to provider id; an empty string marks the
	// service as deactivated.
	overrides map[string]string
}

// NewResolutionContext creates an empty context (no overrides).
func NewResolutionContext() *ResolutionContext {
	return &ResolutionContext{overrides: make(map[string]string)}
}

// Activate forces the given provider for a service. An empty providerID is
// equivalent to Deactivate.
func (c *ResolutionContext) Activate(serviceID, providerID string) {
	c.overrides[serviceID] = providerID
}

// Deactivate marks a service as deactivated: resolution yields an inert
// no-op submodel instead of failing or choosing.
func (c *ResolutionContext) Deactivate(serviceID string) {
	c.overrides[serviceID] = ""
}

// Override returns the override recorded for a service, and whether one
// exists at all.
func (c *ResolutionContext) Override(serviceID string) (providerID string, ok bool) {
	providerID, ok = c.overrides[serviceID]
	return providerID, ok
}

// CancelDeactivations removes every deactivation entry, restoring normal
// resolution for the affected services. Explicit provider choices are kept.
func (c *ResolutionContext) CancelDeactivations() {
	for serviceID, providerID := range c.overrides {
		if providerID == "" {
			delete(c.overrides, serviceID)
		}
	}
}

// GetSubmodel resolves a service identifier to an instantiated provider.
//
// Resolution is fail-closed and never guesses:
//   - no registered candidate: NoSubmodelFoundError
//   - exactly one candidate, no override: that candidate
//   - several candidates, no override: TooManySubmodelsError
//   - override naming a registered candidate: that candidate
//   - override naming anything else: UnknownSubmodelError
//   - override explicitly empty: an inert no-op submodel
//
// A nil ResolutionContext resolves with no overrides. Every call returns a
// fresh instance; resolved submodels are never cached.
func (r *Registry) GetSubmodel(ctx context.Context, rc *ResolutionContext, serviceID string, opts api.Options) (api.System, error) {
	logger := ctxlog.FromContext(ctx)
	candidates := r.GetProviderIDs(serviceID)

	var override string
	var overridden bool
	if rc != nil {
		override, overridden = rc.Override(serviceID)
	}

	if overridden && override == "" {
		logger.Info("Submodel is deactivated, using no-op component.", "service", serviceID)
		return newNoopSubmodel(serviceID), nil
	}

	if len(candidates) == 0 {
		return nil, &NoSubmodelFoundError{ServiceID: serviceID}
	}

	providerID := ""
	switch {
	case overridden:
		for _, candidate := range candidates {
			if candidate == override {
				providerID = candidate
				break
			}
		}
		if providerID == "" {
			return nil, &UnknownSubmodelError{
				ServiceID:  serviceID,
				ProviderID: override,
				Candidates: candidates,
			}
		}
	case len(candidates) == 1:
		providerID = candidates[0]
	default:
		return nil, &TooManySubmodelsError{ServiceID: serviceID, Candidates: candidates}
	}

	logger.Debug("Submodel resolved.", "service", serviceID, "provider", providerID)
	return r.loader.Instantiate(ctx, providerID, opts)
}
