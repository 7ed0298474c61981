package propulsion

import (
	"context"
	"math"

	"github.com/vk/oadframe/internal/api"
	"github.com/vk/oadframe/internal/variables"

	"github.com/vk/oadframe/models/aerodynamics"
	"github.com/vk/oadframe/models/weight"
)

// Variable names read and written by the propulsion systems.
const (
	RangeVar = "data:TLAR:range"
)

// FuelBreguet computes mission fuel with the Breguet range equation: the
// fuel fraction follows from range, specific fuel consumption, cruise speed
// and lift-to-drag ratio.
type FuelBreguet struct {
	api.Base
	cruiseSpeed float64 // m/s
	sfcPerHour  float64 // kg fuel per kg thrust-equivalent per hour
}

func newFuelBreguet(name string, opts api.Options) (api.System, error) {
	return &FuelBreguet{
		Base:        api.NewBase(name),
		cruiseSpeed: opts.Float("cruise_speed_ms", 230.0),
		sfcPerHour:  opts.Float("sfc_per_hour", 0.6),
	}, nil
}

func (s *FuelBreguet) Compute(ctx context.Context, vars *variables.VariableList) error {
	rangeKm, err := vars.Require(RangeVar)
	if err != nil {
		return err
	}
	lOverD, err := vars.Require(aerodynamics.LOverDVar)
	if err != nil {
		return err
	}
	mtow := vars.Float(weight.MTOWVar, 50000.0)

	// Jet-cruise Breguet: thrust balances W/(L/D), so weight decays as
	// exp(-TSFC * t / (L/D)) over the cruise time t.
	rangeM := rangeKm * 1000.0
	cruiseHours := rangeM / s.cruiseSpeed / 3600.0
	fuelFraction := 1.0 - math.Exp(-s.sfcPerHour*cruiseHours/lOverD)

	vars.Set(variables.New(weight.FuelVar, mtow*fuelFraction, "kg"))
	return nil
}
