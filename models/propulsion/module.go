// Package propulsion registers the mission fuel system based on the
// Breguet range equation.
package propulsion

import (
	"reflect"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/registry"
)

// FuelService identifies the mission-fuel computation service.
const FuelService = "service.propulsion.mission_fuel"

// FuelBreguetProvider identifies the Breguet-equation provider.
const FuelBreguetProvider = "oadframe.system.propulsion.mission_fuel.breguet"

// Module registers this package's providers.
type Module struct{}

// Register registers the propulsion providers.
func (m *Module) Register(r *registry.Registry) error {
	return r.RegisterSystem(FuelService, FuelBreguetProvider,
		&registry.Provider{
			New:         newFuelBreguet,
			ProductType: reflect.TypeOf(FuelBreguet{}),
		},
		registry.WithDomain(registry.DomainPropulsion),
		registry.WithDescription("Mission fuel from the Breguet range equation."),
		registry.WithDefaults(api.Options{
			"cruise_speed_ms": 230.0,
			"sfc_per_hour":    0.6,
		}),
	)
}
