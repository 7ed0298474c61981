// Package weight registers the mass-breakdown systems: payload, operating
// empty weight, and the takeoff-weight closure.
package weight

import (
	"reflect"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/registry"
)

// Service identifiers provided by this package.
const (
	PayloadService       = "service.weight.payload"
	MassBreakdownService = "service.weight.mass_breakdown"
)

// Provider identifiers.
const (
	PayloadProvider       = "oadframe.submodel.weight.payload.from_requirements"
	MassBreakdownProvider = "oadframe.system.weight.mass_breakdown"
)

// Module registers this package's providers.
type Module struct{}

// Register registers the weight providers.
func (m *Module) Register(r *registry.Registry) error {
	if err := r.RegisterSubmodel(PayloadService, PayloadProvider,
		&registry.Provider{
			New:         newPayload,
			ProductType: reflect.TypeOf(Payload{}),
		},
		registry.WithDomain(registry.DomainWeight),
		registry.WithDescription("Design payload taken from top-level requirements."),
		registry.WithDefaults(api.Options{"default_payload_kg": 15000.0}),
	); err != nil {
		return err
	}

	return r.RegisterSystem(MassBreakdownService, MassBreakdownProvider,
		&registry.Provider{
			New:         newMassBreakdown,
			ProductType: reflect.TypeOf(MassBreakdown{}),
		},
		registry.WithDomain(registry.DomainWeight),
		registry.WithDescription("Operating empty weight fraction and takeoff weight closure."),
		registry.WithDefaults(api.Options{"empty_weight_fraction": 0.55}),
	)
}
