// Package aerodynamics registers the aerodynamic systems and submodels:
// Oswald efficiency estimation, parasite drag, and the drag polar.
package aerodynamics

import (
	"reflect"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/registry"
)

// Service identifiers provided by this package.
const (
	OswaldService = "service.aerodynamics.oswald_coefficient"
	CD0Service    = "service.aerodynamics.cd0"
	PolarService  = "service.aerodynamics.polar"
)

// Provider identifiers.
const (
	OswaldRaymerProvider  = "oadframe.submodel.aerodynamics.oswald_coefficient.raymer"
	OswaldShevellProvider = "oadframe.submodel.aerodynamics.oswald_coefficient.shevell"
	CD0Provider           = "oadframe.submodel.aerodynamics.cd0.legacy"
	PolarProvider         = "oadframe.system.aerodynamics.polar"
)

// OswaldProvider is the contract every Oswald-coefficient submodel must
// satisfy, in addition to being a System.
type OswaldProvider interface {
	api.System

	// Coefficient estimates the Oswald span efficiency for a wing aspect
	// ratio.
	Coefficient(aspectRatio float64) float64
}

// Module registers this package's providers.
type Module struct{}

// Register declares the Oswald service contract and registers all
// aerodynamic providers.
func (m *Module) Register(r *registry.Registry) error {
	r.DeclareService(OswaldService, reflect.TypeOf((*OswaldProvider)(nil)).Elem())

	if err := r.RegisterSubmodel(OswaldService, OswaldRaymerProvider,
		&registry.Provider{
			New:         newOswaldRaymer,
			ProductType: reflect.TypeOf(OswaldRaymer{}),
		},
		registry.WithDomain(registry.DomainAerodynamics),
		registry.WithDescription("Oswald coefficient from Raymer's straight-wing statistical fit."),
		registry.WithDefaults(api.Options{"k_factor": 1.0}),
	); err != nil {
		return err
	}

	if err := r.RegisterSubmodel(OswaldService, OswaldShevellProvider,
		&registry.Provider{
			New:         newOswaldShevell,
			ProductType: reflect.TypeOf(OswaldShevell{}),
		},
		registry.WithDomain(registry.DomainAerodynamics),
		registry.WithDescription("Oswald coefficient from Shevell's induced-drag correlation."),
		registry.WithDefaults(api.Options{"k_factor": 1.0}),
	); err != nil {
		return err
	}

	if err := r.RegisterSubmodel(CD0Service, CD0Provider,
		&registry.Provider{
			New:         newCD0,
			ProductType: reflect.TypeOf(CD0{}),
		},
		registry.WithDomain(registry.DomainAerodynamics),
		registry.WithDescription("Parasite drag from the wetted-area method."),
		registry.WithDefaults(api.Options{
			"friction_coefficient": 0.003,
			"wetted_area_ratio":    6.0,
		}),
	); err != nil {
		return err
	}

	return r.RegisterSystem(PolarService, PolarProvider,
		&registry.Provider{
			New:         newPolar,
			ProductType: reflect.TypeOf(Polar{}),
		},
		registry.WithDomain(registry.DomainAerodynamics),
		registry.WithDescription("Drag polar and cruise lift-to-drag ratio."),
		registry.WithDefaults(api.Options{"cruise_cl": 0.5}),
	)
}
